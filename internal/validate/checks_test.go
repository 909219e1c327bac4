package validate

import (
	"context"
	"testing"
	"time"

	"github.com/wetshaving/sotdarc/internal/model"
)

// cleanReport builds a report that passes every check.
func cleanReport() *model.Report {
	return &model.Report{
		Month:              model.Month{Year: 2025, Month: time.August},
		Category:           model.CategoryHardware,
		ObservationsFilled: true,
		Summary: model.Summary{
			TotalShaves:   500,
			UniqueShavers: 40,
		},
		Tables: []model.RankingTable{
			{
				Name: "Razors",
				Rows: []model.Row{
					{Rank: model.Rank{Position: 1}, Name: "GEM Micromatic Open Comb", Shaves: 299, UniqueUsers: 15},
					{Rank: model.Rank{Position: 2, Tied: true}, Name: "RazoRock Game Changer", Shaves: 97, UniqueUsers: 22},
					{Rank: model.Rank{Position: 2, Tied: true}, Name: "Blackland Blackbird", Shaves: 97, UniqueUsers: 18},
					{Rank: model.Rank{Position: 4}, Name: "Karve Christopher Bradley", Shaves: 60, UniqueUsers: 12},
				},
			},
		},
	}
}

// run runs all default checks against the report.
func run(t *testing.T, report *model.Report) *model.ValidationReport {
	t.Helper()
	return NewRunner().Run(context.Background(), report)
}

// findingTypes extracts the finding type identifiers in order.
func findingTypes(v *model.ValidationReport) []string {
	types := make([]string, 0, len(v.Findings))
	for _, f := range v.Findings {
		types = append(types, f.Type)
	}
	return types
}

// TestCleanReportHasNoFindings tests the baseline: a conforming report.
func TestCleanReportHasNoFindings(t *testing.T) {
	t.Parallel()

	result := run(t, cleanReport())

	if result.HasFindings() {
		t.Errorf("expected no findings, got %v", findingTypes(result))
	}
	if result.TablesChecked != 1 || result.RowsChecked != 4 {
		t.Errorf("unexpected coverage: tables=%d rows=%d", result.TablesChecked, result.RowsChecked)
	}
}

// TestShavesDescendingCheck tests detection of out-of-order shave counts.
func TestShavesDescendingCheck(t *testing.T) {
	t.Parallel()

	report := cleanReport()
	report.Tables[0].Rows[3].Shaves = 150 // jumps above the tie group

	result := run(t, report)

	if !hasType(result, "shaves_not_descending") {
		t.Errorf("expected shaves_not_descending, got %v", findingTypes(result))
	}
	if !result.HasErrors() {
		t.Error("expected error severity")
	}
}

// TestUniqueVsShavesCheck tests the unique-users upper bound.
func TestUniqueVsShavesCheck(t *testing.T) {
	t.Parallel()

	report := cleanReport()
	report.Tables[0].Rows[0].UniqueUsers = 300 // 300 users, 299 shaves

	result := run(t, report)

	if !hasType(result, "unique_exceeds_shaves") {
		t.Errorf("expected unique_exceeds_shaves, got %v", findingTypes(result))
	}
}

// TestTieConsistencyCheck tests all three tie-notation findings.
func TestTieConsistencyCheck(t *testing.T) {
	t.Parallel()

	t.Run("mismatched shave counts in tie group", func(t *testing.T) {
		t.Parallel()
		report := cleanReport()
		report.Tables[0].Rows[2].Shaves = 96

		result := run(t, report)
		if !hasType(result, "tie_shave_mismatch") {
			t.Errorf("expected tie_shave_mismatch, got %v", findingTypes(result))
		}
	})

	t.Run("missing tie marker", func(t *testing.T) {
		t.Parallel()
		report := cleanReport()
		report.Tables[0].Rows[2].Rank.Tied = false

		result := run(t, report)
		if !hasType(result, "tie_marker_missing") {
			t.Errorf("expected tie_marker_missing, got %v", findingTypes(result))
		}
	})

	t.Run("spurious tie marker", func(t *testing.T) {
		t.Parallel()
		report := cleanReport()
		report.Tables[0].Rows[0].Rank.Tied = true

		result := run(t, report)
		if !hasType(result, "tie_marker_spurious") {
			t.Errorf("expected tie_marker_spurious, got %v", findingTypes(result))
		}
	})
}

// TestRankContinuityCheck tests competition-ranking gap detection.
func TestRankContinuityCheck(t *testing.T) {
	t.Parallel()

	report := cleanReport()
	report.Tables[0].Rows[3].Rank.Position = 5 // tie of 2 at rank 2 must resume at 4

	result := run(t, report)

	if !hasType(result, "rank_not_contiguous") {
		t.Errorf("expected rank_not_contiguous, got %v", findingTypes(result))
	}
	if result.ErrorCount != 0 {
		t.Errorf("rank gaps are warnings, got %d errors", result.ErrorCount)
	}
	if result.WarningCount != 1 {
		t.Errorf("expected exactly one warning, got %d", result.WarningCount)
	}
}

// TestSummaryConsistencyCheck tests rows bounded by the headline totals.
func TestSummaryConsistencyCheck(t *testing.T) {
	t.Parallel()

	report := cleanReport()
	report.Summary.TotalShaves = 100
	report.Summary.UniqueShavers = 14

	result := run(t, report)

	if !hasType(result, "row_exceeds_total_shaves") {
		t.Errorf("expected row_exceeds_total_shaves, got %v", findingTypes(result))
	}
	if !hasType(result, "row_exceeds_unique_shavers") {
		t.Errorf("expected row_exceeds_unique_shavers, got %v", findingTypes(result))
	}
}

// TestObservationsCheck tests placeholder detection.
func TestObservationsCheck(t *testing.T) {
	t.Parallel()

	report := cleanReport()
	report.ObservationsFilled = false

	result := run(t, report)

	if !hasType(result, "observations_placeholder") {
		t.Errorf("expected observations_placeholder, got %v", findingTypes(result))
	}
	if result.HasErrors() {
		t.Error("placeholder is informational, not an error")
	}
}

// TestEmptyTableCheck tests detection of row-less tables.
func TestEmptyTableCheck(t *testing.T) {
	t.Parallel()

	report := cleanReport()
	report.Tables = append(report.Tables, model.RankingTable{Name: "Straight Widths"})

	result := run(t, report)

	if !hasType(result, "empty_table") {
		t.Errorf("expected empty_table, got %v", findingTypes(result))
	}
}

// hasType reports whether the result contains a finding of the given type.
func hasType(v *model.ValidationReport, findingType string) bool {
	for _, f := range v.Findings {
		if f.Type == findingType {
			return true
		}
	}
	return false
}
