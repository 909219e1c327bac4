package model

import (
	"testing"
	"time"
)

// testReport builds a small hardware report for method tests.
func testReport() *Report {
	return &Report{
		Month:    Month{Year: 2025, Month: time.August},
		Category: CategoryHardware,
		Tables: []RankingTable{
			{
				Name: "Razors",
				Rows: []Row{
					{Rank: Rank{Position: 1}, Name: "GEM Micromatic Open Comb", Shaves: 299, UniqueUsers: 15},
					{Rank: Rank{Position: 2}, Name: "RazoRock Game Changer", Shaves: 120, UniqueUsers: 22},
				},
			},
			{
				Name: "Blades",
				Rows: []Row{
					{Rank: Rank{Position: 1}, Name: "Personna GEM PTFE", Shaves: 310, UniqueUsers: 18},
					{Rank: Rank{Position: 2, Tied: true}, Name: "Astra Superior Platinum", Shaves: 95, UniqueUsers: 12},
					{Rank: Rank{Position: 2, Tied: true}, Name: "Feather Hi-Stainless", Shaves: 95, UniqueUsers: 14},
					{Rank: Rank{Position: 4}, Name: "Gillette Silver Blue", Shaves: 60, UniqueUsers: 9},
				},
			},
		},
	}
}

// TestReportTable tests table lookup by name.
func TestReportTable(t *testing.T) {
	t.Parallel()

	r := testReport()

	if tbl := r.Table("Razors"); tbl == nil || tbl.Name != "Razors" {
		t.Fatalf("expected Razors table, got %v", tbl)
	}
	if tbl := r.Table("Soaps"); tbl != nil {
		t.Errorf("expected nil for missing table, got %v", tbl)
	}
}

// TestReportTableNames tests that names keep document order.
func TestReportTableNames(t *testing.T) {
	t.Parallel()

	names := testReport().TableNames()
	want := []string{"Razors", "Blades"}

	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

// TestReportRowCount tests the row total across tables.
func TestReportRowCount(t *testing.T) {
	t.Parallel()

	if got := testReport().RowCount(); got != 6 {
		t.Errorf("RowCount() = %d, want 6", got)
	}
}

// TestRankingTableFind tests entity lookup.
func TestRankingTableFind(t *testing.T) {
	t.Parallel()

	tbl := testReport().Table("Blades")

	row := tbl.Find("Personna GEM PTFE")
	if row == nil {
		t.Fatal("expected to find Personna GEM PTFE")
	}
	if row.Shaves != 310 {
		t.Errorf("unexpected shave count %d", row.Shaves)
	}

	if tbl.Find("Derby Extra") != nil {
		t.Error("expected nil for absent entity")
	}
}

// TestTieGroups tests partitioning of rows into shared-rank groups.
func TestTieGroups(t *testing.T) {
	t.Parallel()

	groups := testReport().Table("Blades").TieGroups()

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if len(groups[0]) != 1 || groups[0][0].Rank.Position != 1 {
		t.Errorf("unexpected first group: %+v", groups[0])
	}
	if len(groups[1]) != 2 || groups[1][0].Rank.Position != 2 {
		t.Errorf("unexpected tie group: %+v", groups[1])
	}
	if len(groups[2]) != 1 || groups[2][0].Rank.Position != 4 {
		t.Errorf("unexpected last group: %+v", groups[2])
	}
}

// TestValidationReportCounters tests severity counting and error detection.
func TestValidationReportCounters(t *testing.T) {
	t.Parallel()

	v := NewValidationReport(testReport())

	if v.TablesChecked != 2 || v.RowsChecked != 6 {
		t.Errorf("unexpected coverage: tables=%d rows=%d", v.TablesChecked, v.RowsChecked)
	}
	if v.HasFindings() || v.HasErrors() {
		t.Error("fresh report should have no findings")
	}

	v.Add(NewFinding("observations_placeholder", "observations not filled"))
	v.Add(NewFinding("rank_not_contiguous", "rank gap"))
	v.Add(NewFinding("unique_exceeds_shaves", "impossible count"))

	if v.InfoCount != 1 || v.WarningCount != 1 || v.ErrorCount != 1 {
		t.Errorf("unexpected counts: info=%d warn=%d err=%d", v.InfoCount, v.WarningCount, v.ErrorCount)
	}
	if v.TotalFindings() != 3 {
		t.Errorf("TotalFindings() = %d, want 3", v.TotalFindings())
	}
	if !v.HasErrors() {
		t.Error("expected HasErrors() after an error finding")
	}

	errs := v.GetFindingsBySeverity(SeverityError)
	if len(errs) != 1 || errs[0].Type != "unique_exceeds_shaves" {
		t.Errorf("unexpected error findings: %+v", errs)
	}
}
