package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wetshaving/sotdarc/internal/model"
)

// sampleHardware is a minimal but complete hardware report document.
const sampleHardware = `# Hardware Report - August 2025

* **Total Shaves:** 2,155
* **Unique Shavers:** 110
* **Average Shaves per User:** 19.6
* **Median Shaves per User:** 17

## Observations

* [Observations will be filled in over the coming days]

## Notes & Caveats

* Blades recorded as just "GEM" are counted as Personna GEM PTFE.
* Unattributed shaves are excluded from user rankings.

## Razors

| Rank | Razor | Shaves | Unique Users | Δ vs Jul 2025 | Δ vs Aug 2024 | Δ vs Aug 2020 |
|------|-------|--------|--------------|---------------|---------------|---------------|
| 1    | GEM Micromatic Open Comb | 299 | 15 | = | ↑3 | n/a |
| 2    | RazoRock Game Changer | 120 | 22 | ↑1 | ↓1 | ↑5 |
| 3=   | Blackland Blackbird | 97 | 18 | ↓1 | = | n/a |
| 3=   | Karve Christopher Bradley | 97 | 12 | ↑2 | ↑4 | ↓2 |

## Blades

| Rank | Blade | Shaves | Unique Users | Δ vs Jul 2025 |
|------|-------|--------|--------------|---------------|
| 1 | Personna GEM PTFE | 310 | 18 | = |
| 2 | Astra Superior Platinum | 95 | 12 | ↑1 |
`

// TestParseHardwareReport tests a full parse of a well-formed document.
func TestParseHardwareReport(t *testing.T) {
	t.Parallel()

	report, err := New().Parse(strings.NewReader(sampleHardware), "2025-08-hardware.md")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if report.Category != model.CategoryHardware {
		t.Errorf("category = %q, want hardware", report.Category)
	}
	if want := (model.Month{Year: 2025, Month: time.August}); report.Month != want {
		t.Errorf("month = %v, want %v", report.Month, want)
	}
	if report.Summary.TotalShaves != 2155 {
		t.Errorf("total shaves = %d, want 2155", report.Summary.TotalShaves)
	}
	if report.Summary.UniqueShavers != 110 {
		t.Errorf("unique shavers = %d, want 110", report.Summary.UniqueShavers)
	}
	if report.Summary.AvgShavesPerUser != 19.6 {
		t.Errorf("avg shaves = %v, want 19.6", report.Summary.AvgShavesPerUser)
	}
	if report.Summary.MedianShavesPerUser != 17 {
		t.Errorf("median shaves = %v, want 17", report.Summary.MedianShavesPerUser)
	}
	if report.ObservationsFilled {
		t.Error("expected placeholder Observations section")
	}
	if len(report.Notes) != 2 {
		t.Errorf("got %d notes, want 2", len(report.Notes))
	}

	if len(report.Tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(report.Tables))
	}

	razors := report.Table("Razors")
	if razors == nil {
		t.Fatal("missing Razors table")
	}
	if len(razors.Rows) != 4 {
		t.Fatalf("got %d razor rows, want 4", len(razors.Rows))
	}
	if len(razors.DeltaPeriods) != 3 {
		t.Fatalf("got %d delta periods, want 3", len(razors.DeltaPeriods))
	}
	if want := (model.Month{Year: 2024, Month: time.August}); razors.DeltaPeriods[1] != want {
		t.Errorf("second delta period = %v, want %v", razors.DeltaPeriods[1], want)
	}

	top := razors.Rows[0]
	if top.Name != "GEM Micromatic Open Comb" || top.Shaves != 299 || top.UniqueUsers != 15 {
		t.Errorf("unexpected top row: %+v", top)
	}
	if top.Deltas[0].Kind != model.DeltaUnchanged {
		t.Errorf("expected unchanged first delta, got %v", top.Deltas[0])
	}
	if top.Deltas[2].Kind != model.DeltaNotPresent {
		t.Errorf("expected n/a five-year delta, got %v", top.Deltas[2])
	}

	tied := razors.Rows[2]
	if !tied.Rank.Tied || tied.Rank.Position != 3 {
		t.Errorf("expected tied rank 3=, got %v", tied.Rank)
	}
}

// TestParseFile tests parsing from disk.
func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.md")
	if err := os.WriteFile(path, []byte(sampleHardware), 0600); err != nil {
		t.Fatal(err)
	}

	report, err := New().ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.SourcePath != path {
		t.Errorf("source path = %q, want %q", report.SourcePath, path)
	}
}

// TestParseAliases tests case-insensitive alias rewriting during parsing.
func TestParseAliases(t *testing.T) {
	t.Parallel()

	doc := strings.ReplaceAll(sampleHardware, "Personna GEM PTFE", "gem")

	p := New(WithAliases(map[string]map[string]string{
		"Blades": {"GEM": "Personna GEM PTFE"},
	}))
	report, err := p.Parse(strings.NewReader(doc), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blades := report.Table("Blades")
	if blades.Find("Personna GEM PTFE") == nil {
		t.Error("expected alias to rewrite to canonical name")
	}
	if blades.Find("gem") != nil {
		t.Error("recorded alias should not survive parsing")
	}
}

// TestParseObservationsFilled tests detection of a populated section.
func TestParseObservationsFilled(t *testing.T) {
	t.Parallel()

	doc := strings.Replace(sampleHardware,
		"* [Observations will be filled in over the coming days]",
		"* The GEM surge continued for a third straight month.", 1)

	report, err := New().Parse(strings.NewReader(doc), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.ObservationsFilled {
		t.Error("expected Observations to count as filled")
	}
}

// TestParseSoftwareTitle tests the Lather Log title mapping.
func TestParseSoftwareTitle(t *testing.T) {
	t.Parallel()

	doc := strings.Replace(sampleHardware, "# Hardware Report - August 2025",
		"# Lather Log Report - August 2025", 1)

	report, err := New().Parse(strings.NewReader(doc), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Category != model.CategorySoftware {
		t.Errorf("category = %q, want software", report.Category)
	}
}

// TestParseErrors tests documents that must be rejected.
func TestParseErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(string) string
		sentinel error
	}{
		{
			name:     "missing title",
			mutate:   func(s string) string { return strings.Replace(s, "# Hardware Report - August 2025", "# Notes", 1) },
			sentinel: ErrMissingTitle,
		},
		{
			name:     "missing total shaves",
			mutate:   func(s string) string { return strings.Replace(s, "* **Total Shaves:** 2,155\n", "", 1) },
			sentinel: ErrMissingSummary,
		},
		{
			name: "no tables",
			mutate: func(s string) string {
				idx := strings.Index(s, "## Razors")
				return s[:idx]
			},
			sentinel: ErrNoTables,
		},
		{
			name:     "bad delta cell",
			mutate:   func(s string) string { return strings.Replace(s, "| = | ↑3 | n/a |", "| = | +3 | n/a |", 1) },
			sentinel: model.ErrInvalidDelta,
		},
		{
			name:     "bad rank cell",
			mutate:   func(s string) string { return strings.Replace(s, "| 3=   | Blackland", "| 3rd  | Blackland", 1) },
			sentinel: model.ErrInvalidRank,
		},
		{
			name:     "unknown category",
			mutate:   func(s string) string { return strings.Replace(s, "Hardware Report", "Firmware Report", 1) },
			sentinel: model.ErrUnknownCategory,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New().Parse(strings.NewReader(tc.mutate(sampleHardware)), "test.md")
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !errors.Is(err, tc.sentinel) {
				t.Errorf("expected %v in chain, got %v", tc.sentinel, err)
			}
		})
	}
}

// TestParseErrorLocation tests that row-level errors carry file and line.
func TestParseErrorLocation(t *testing.T) {
	t.Parallel()

	doc := strings.Replace(sampleHardware, "| 299 | 15 |", "| lots | 15 |", 1)

	_, err := New().Parse(strings.NewReader(doc), "broken.md")
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Path != "broken.md" {
		t.Errorf("path = %q, want broken.md", perr.Path)
	}
	if perr.Line == 0 {
		t.Error("expected a line number")
	}
	if !strings.Contains(perr.Error(), "broken.md:") {
		t.Errorf("error text should name the file: %q", perr.Error())
	}
}

// TestParseHeadingWithoutTable tests that a bare heading yields an empty
// table for the validator to flag.
func TestParseHeadingWithoutTable(t *testing.T) {
	t.Parallel()

	doc := sampleHardware + "\n## Straight Widths\n\nNo data this month.\n"

	report, err := New().Parse(strings.NewReader(doc), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := report.Table("Straight Widths")
	if empty == nil {
		t.Fatal("expected the empty table to be kept")
	}
	if len(empty.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(empty.Rows))
	}
}
