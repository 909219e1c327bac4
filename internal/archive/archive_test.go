package archive

import (
	"context"
	"testing"
	"time"

	"github.com/wetshaving/sotdarc/internal/model"
)

func testArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return a
}

func testReport(month model.Month) *model.Report {
	return &model.Report{
		Month:      month,
		Category:   model.CategoryHardware,
		Title:      "Hardware Report",
		SourcePath: "testdata/" + month.String() + "-hardware.md",
		Summary: model.Summary{
			TotalShaves:   1524,
			UniqueShavers: 109,
		},
		Tables: []model.RankingTable{
			{
				Name: "Razors",
				Rows: []model.Row{
					{Rank: model.Rank{Position: 1}, Name: "RazoRock Game Changer", Shaves: 119, UniqueUsers: 22},
					{Rank: model.Rank{Position: 2}, Name: "Blackland Blackbird", Shaves: 97, UniqueUsers: 18},
				},
			},
			{
				Name: "Blades",
				Rows: []model.Row{
					{Rank: model.Rank{Position: 1}, Name: "Astra Superior Platinum (Green)", Shaves: 201, UniqueUsers: 31},
					{Rank: model.Rank{Position: 2, Tied: true}, Name: "Personna GEM PTFE", Shaves: 143, UniqueUsers: 17},
					{Rank: model.Rank{Position: 2, Tied: true}, Name: "Gillette Silver Blue", Shaves: 143, UniqueUsers: 20},
				},
			},
		},
	}
}

func TestOpenWithoutCreate(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.CreateIfNotExists = false
	if _, err := Open(t.TempDir(), opts); err == nil {
		t.Error("Open() expected error for missing archive, got nil")
	}
}

func TestSaveAndGetReport(t *testing.T) {
	t.Parallel()

	a := testArchive(t)
	ctx := context.Background()
	month := model.Month{Year: 2025, Month: time.May}
	report := testReport(month)

	if err := a.SaveReport(ctx, report, map[string]int{"warning": 2}); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	got, err := a.GetReport(ctx, month, model.CategoryHardware)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetReport() = nil, want snapshot")
	}
	if got.Month != month {
		t.Errorf("Month = %v, want %v", got.Month, month)
	}
	if got.Summary.TotalShaves != 1524 {
		t.Errorf("TotalShaves = %d, want 1524", got.Summary.TotalShaves)
	}
	if len(got.Tables) != 2 {
		t.Fatalf("len(Tables) = %d, want 2", len(got.Tables))
	}
	if got.Tables[1].Rows[1].Rank.Tied != true {
		t.Error("tie marker not preserved through archive round trip")
	}
}

func TestGetReportAbsent(t *testing.T) {
	t.Parallel()

	a := testArchive(t)
	got, err := a.GetReport(context.Background(), model.Month{Year: 2020, Month: time.January}, model.CategorySoftware)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetReport() = %+v, want nil for absent snapshot", got)
	}
}

func TestSaveReportReplacesExisting(t *testing.T) {
	t.Parallel()

	a := testArchive(t)
	ctx := context.Background()
	month := model.Month{Year: 2025, Month: time.May}

	if err := a.SaveReport(ctx, testReport(month), nil); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	updated := testReport(month)
	updated.Summary.TotalShaves = 1600
	updated.Tables = updated.Tables[:1]
	if err := a.SaveReport(ctx, updated, nil); err != nil {
		t.Fatalf("SaveReport() second error = %v", err)
	}

	got, err := a.GetReport(ctx, month, model.CategoryHardware)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if got.Summary.TotalShaves != 1600 {
		t.Errorf("TotalShaves = %d, want replacement value 1600", got.Summary.TotalShaves)
	}

	snapshots, err := a.ListReports(ctx)
	if err != nil {
		t.Fatalf("ListReports() error = %v", err)
	}
	if len(snapshots) != 1 {
		t.Errorf("len(ListReports()) = %d, want 1 after replacement", len(snapshots))
	}

	// The replaced snapshot's row index must be gone too.
	history, err := a.EntityHistory(ctx, "Blades", "Personna GEM PTFE")
	if err != nil {
		t.Fatalf("EntityHistory() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("len(EntityHistory()) = %d, want 0 after table dropped in replacement", len(history))
	}
}

func TestListReports(t *testing.T) {
	t.Parallel()

	a := testArchive(t)
	ctx := context.Background()

	// Insert out of chronological order.
	for _, m := range []model.Month{
		{Year: 2025, Month: time.June},
		{Year: 2025, Month: time.April},
		{Year: 2025, Month: time.May},
	} {
		if err := a.SaveReport(ctx, testReport(m), map[string]int{"error": 1}); err != nil {
			t.Fatalf("SaveReport(%v) error = %v", m, err)
		}
	}

	snapshots, err := a.ListReports(ctx)
	if err != nil {
		t.Fatalf("ListReports() error = %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("len(snapshots) = %d, want 3", len(snapshots))
	}

	wantOrder := []time.Month{time.April, time.May, time.June}
	for i, s := range snapshots {
		if s.Month.Month != wantOrder[i] {
			t.Errorf("snapshots[%d].Month = %v, want %v", i, s.Month.Month, wantOrder[i])
		}
		if s.Category != model.CategoryHardware {
			t.Errorf("snapshots[%d].Category = %v, want hardware", i, s.Category)
		}
		if s.FindingSummary["error"] != 1 {
			t.Errorf("snapshots[%d].FindingSummary = %v, want error count 1", i, s.FindingSummary)
		}
		if s.IngestedAt.IsZero() {
			t.Errorf("snapshots[%d].IngestedAt is zero", i)
		}
	}
}

func TestEntityHistory(t *testing.T) {
	t.Parallel()

	a := testArchive(t)
	ctx := context.Background()

	may := testReport(model.Month{Year: 2025, Month: time.May})
	june := testReport(model.Month{Year: 2025, Month: time.June})
	// The Blackbird climbs to first in June.
	june.Tables[0].Rows = []model.Row{
		{Rank: model.Rank{Position: 1}, Name: "Blackland Blackbird", Shaves: 130, UniqueUsers: 21},
		{Rank: model.Rank{Position: 2}, Name: "RazoRock Game Changer", Shaves: 101, UniqueUsers: 19},
	}

	for _, r := range []*model.Report{may, june} {
		if err := a.SaveReport(ctx, r, nil); err != nil {
			t.Fatalf("SaveReport() error = %v", err)
		}
	}

	history, err := a.EntityHistory(ctx, "Razors", "Blackland Blackbird")
	if err != nil {
		t.Fatalf("EntityHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if history[0].Rank.Position != 2 || history[1].Rank.Position != 1 {
		t.Errorf("rank trajectory = [%d, %d], want [2, 1]",
			history[0].Rank.Position, history[1].Rank.Position)
	}
	if history[1].Shaves != 130 {
		t.Errorf("history[1].Shaves = %d, want 130", history[1].Shaves)
	}

	none, err := a.EntityHistory(ctx, "Razors", "Unknown Razor")
	if err != nil {
		t.Fatalf("EntityHistory() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("len(history) = %d for unknown entity, want 0", len(none))
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		wantZero bool
	}{
		{"2025-05-01 12:30:45", false},
		{"2025-05-01T12:30:45Z", false},
		{"2025-05-01T12:30:45+09:00", false},
		{"not a timestamp", true},
		{"", true},
	}

	for _, tt := range tests {
		got := parseTimestamp(tt.input)
		if got.IsZero() != tt.wantZero {
			t.Errorf("parseTimestamp(%q).IsZero() = %v, want %v", tt.input, got.IsZero(), tt.wantZero)
		}
	}
}
