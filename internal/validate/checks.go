package validate

import (
	"fmt"

	"github.com/wetshaving/sotdarc/internal/model"
)

// Check examines one aspect of a parsed report and records findings.
// Checks must be stateless: the same Check instance is reused across
// reports and goroutines.
type Check interface {
	// Do examines the report and adds any findings to result.
	Do(report *model.Report, result *model.ValidationReport)

	// Name returns the check's stable identifier, used for logging and for
	// the configuration file's disabled-checks list.
	Name() string
}

// DefaultChecks returns all built-in checks in execution order.
func DefaultChecks() []Check {
	return []Check{
		shavesDescendingCheck{},
		uniqueVsShavesCheck{},
		tieConsistencyCheck{},
		rankContinuityCheck{},
		summaryConsistencyCheck{},
		observationsCheck{},
		emptyTableCheck{},
	}
}

// shavesDescendingCheck verifies that within every table, shave counts
// never increase as rank position increases.
type shavesDescendingCheck struct{}

func (shavesDescendingCheck) Name() string { return "shaves_descending" }

func (shavesDescendingCheck) Do(report *model.Report, result *model.ValidationReport) {
	for _, table := range report.Tables {
		for i := 1; i < len(table.Rows); i++ {
			prev, cur := table.Rows[i-1], table.Rows[i]
			if cur.Shaves > prev.Shaves {
				f := model.NewFinding("shaves_not_descending",
					fmt.Sprintf("%q jumps from %d to %d shaves down the table", table.Name, prev.Shaves, cur.Shaves))
				f.Table = table.Name
				f.Entity = cur.Name
				f.Value = fmt.Sprintf("%d > %d", cur.Shaves, prev.Shaves)
				f.Line = cur.Line
				result.Add(f)
			}
		}
	}
}

// uniqueVsShavesCheck verifies that no row claims more unique users than
// shaves. Every shave belongs to exactly one user, so the bound is hard.
type uniqueVsShavesCheck struct{}

func (uniqueVsShavesCheck) Name() string { return "unique_vs_shaves" }

func (uniqueVsShavesCheck) Do(report *model.Report, result *model.ValidationReport) {
	for _, table := range report.Tables {
		for _, row := range table.Rows {
			if row.UniqueUsers > row.Shaves {
				f := model.NewFinding("unique_exceeds_shaves",
					fmt.Sprintf("%q has %d unique users but only %d shaves", row.Name, row.UniqueUsers, row.Shaves))
				f.Table = table.Name
				f.Entity = row.Name
				f.Value = fmt.Sprintf("%d > %d", row.UniqueUsers, row.Shaves)
				f.Line = row.Line
				result.Add(f)
			}
		}
	}
}

// tieConsistencyCheck verifies the tie notation: rows sharing a rank number
// all carry the "=" marker and identical shave counts, and no lone row
// carries the marker.
type tieConsistencyCheck struct{}

func (tieConsistencyCheck) Name() string { return "tie_consistency" }

func (tieConsistencyCheck) Do(report *model.Report, result *model.ValidationReport) {
	for _, table := range report.Tables {
		for _, group := range table.TieGroups() {
			if len(group) == 1 {
				row := group[0]
				if row.Rank.Tied {
					f := model.NewFinding("tie_marker_spurious",
						fmt.Sprintf("%q is marked %s but shares its rank with no other row", row.Name, row.Rank))
					f.Table = table.Name
					f.Entity = row.Name
					f.Value = row.Rank.String()
					f.Line = row.Line
					result.Add(f)
				}
				continue
			}

			for _, row := range group {
				if !row.Rank.Tied {
					f := model.NewFinding("tie_marker_missing",
						fmt.Sprintf("%q shares rank %d but lacks the tie marker", row.Name, row.Rank.Position))
					f.Table = table.Name
					f.Entity = row.Name
					f.Value = row.Rank.String()
					f.Line = row.Line
					result.Add(f)
				}
				if row.Shaves != group[0].Shaves {
					f := model.NewFinding("tie_shave_mismatch",
						fmt.Sprintf("%q records %d shaves inside a tie group that records %d", row.Name, row.Shaves, group[0].Shaves))
					f.Table = table.Name
					f.Entity = row.Name
					f.Value = fmt.Sprintf("%d != %d", row.Shaves, group[0].Shaves)
					f.Line = row.Line
					result.Add(f)
				}
			}
		}
	}
}

// rankContinuityCheck verifies competition ranking: the first group sits at
// rank 1 and a tie group of size k at rank r is followed by rank r+k. The
// corpus follows this everywhere but never promises it, so deviations are
// warnings.
type rankContinuityCheck struct{}

func (rankContinuityCheck) Name() string { return "rank_continuity" }

func (rankContinuityCheck) Do(report *model.Report, result *model.ValidationReport) {
	for _, table := range report.Tables {
		expected := 1
		for _, group := range table.TieGroups() {
			if got := group[0].Rank.Position; got != expected {
				f := model.NewFinding("rank_not_contiguous",
					fmt.Sprintf("%q table skips from competition rank %d to %d", table.Name, expected, got))
				f.Table = table.Name
				f.Entity = group[0].Name
				f.Value = fmt.Sprintf("want %d, got %d", expected, got)
				f.Line = group[0].Line
				result.Add(f)
				// Resynchronize so one gap yields one finding.
				expected = got
			}
			expected += len(group)
		}
	}
}

// summaryConsistencyCheck verifies that table rows stay within the
// report's headline totals.
type summaryConsistencyCheck struct{}

func (summaryConsistencyCheck) Name() string { return "summary_consistency" }

func (summaryConsistencyCheck) Do(report *model.Report, result *model.ValidationReport) {
	for _, table := range report.Tables {
		for _, row := range table.Rows {
			if row.Shaves > report.Summary.TotalShaves {
				f := model.NewFinding("row_exceeds_total_shaves",
					fmt.Sprintf("%q records %d shaves against a report total of %d", row.Name, row.Shaves, report.Summary.TotalShaves))
				f.Table = table.Name
				f.Entity = row.Name
				f.Value = fmt.Sprintf("%d > %d", row.Shaves, report.Summary.TotalShaves)
				f.Line = row.Line
				result.Add(f)
			}
			if row.UniqueUsers > report.Summary.UniqueShavers {
				f := model.NewFinding("row_exceeds_unique_shavers",
					fmt.Sprintf("%q records %d unique users against %d unique shavers", row.Name, row.UniqueUsers, report.Summary.UniqueShavers))
				f.Table = table.Name
				f.Entity = row.Name
				f.Value = fmt.Sprintf("%d > %d", row.UniqueUsers, report.Summary.UniqueShavers)
				f.Line = row.Line
				result.Add(f)
			}
		}
	}
}

// observationsCheck flags the unfilled editorial placeholder.
type observationsCheck struct{}

func (observationsCheck) Name() string { return "observations" }

func (observationsCheck) Do(report *model.Report, result *model.ValidationReport) {
	if !report.ObservationsFilled {
		result.Add(model.NewFinding("observations_placeholder",
			"Observations section is still the unfilled placeholder"))
	}
}

// emptyTableCheck flags table headings with no rows.
type emptyTableCheck struct{}

func (emptyTableCheck) Name() string { return "empty_table" }

func (emptyTableCheck) Do(report *model.Report, result *model.ValidationReport) {
	for _, table := range report.Tables {
		if len(table.Rows) == 0 {
			f := model.NewFinding("empty_table",
				fmt.Sprintf("table %q has a heading but no rows", table.Name))
			f.Table = table.Name
			result.Add(f)
		}
	}
}
