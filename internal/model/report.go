package model

import "time"

// Report is a parsed monthly report document.
// Each document is a self-contained snapshot: once published it is never
// mutated, so the archive treats (Month, Category) as the snapshot identity.
//
// Design decision: We keep the parsed document close to its source shape
// (named tables of rows, free-text notes) rather than flattening it into a
// relational form here. The archive derives its row index from this struct;
// writers and checks work directly on it.
type Report struct {
	// Month is the reporting period.
	Month Month `json:"month"`

	// Category is which of the two monthly reports this is.
	Category Category `json:"category"`

	// Title is the original title line text, kept for round-trip fidelity.
	Title string `json:"title"`

	// Summary holds the headline statistics from the top of the document.
	Summary Summary `json:"summary"`

	// Tables are the ranking tables in document order.
	Tables []RankingTable `json:"tables"`

	// Notes is the free text of the "Notes & Caveats" section.
	Notes []string `json:"notes,omitempty"`

	// ObservationsFilled is false when the "Observations" section is still
	// the unfilled placeholder. Every document in the existing corpus ships
	// with the placeholder; it is populated by a separate editorial pass.
	ObservationsFilled bool `json:"observations_filled"`

	// SourcePath is the file the report was parsed from, when known.
	SourcePath string `json:"source_path,omitempty"`

	// ParsedAt is when this snapshot was parsed.
	ParsedAt time.Time `json:"parsed_at"`
}

// Summary holds the headline statistics of a report.
// Averages are omitted from JSON when absent; older documents do not carry
// them.
type Summary struct {
	// TotalShaves is the number of logged shaves in the period.
	TotalShaves int `json:"total_shaves"`

	// UniqueShavers is the number of distinct users who logged at least one
	// shave in the period.
	UniqueShavers int `json:"unique_shavers"`

	// AvgShavesPerUser is the mean shaves per contributing user.
	AvgShavesPerUser float64 `json:"avg_shaves_per_user,omitempty"`

	// MedianShavesPerUser is the median shaves per contributing user.
	MedianShavesPerUser float64 `json:"median_shaves_per_user,omitempty"`
}

// RankingTable is one named table of ranked entities, e.g. "Razors",
// "Blades", "Knot Fibers" or "Top Shavers".
type RankingTable struct {
	// Name is the table heading.
	Name string `json:"name"`

	// DeltaPeriods are the comparison periods of the "Δ vs" columns, in
	// column order. Empty when the table carries no delta columns.
	DeltaPeriods []Month `json:"delta_periods,omitempty"`

	// Rows are the table rows in document order.
	Rows []Row `json:"rows"`
}

// Row is one ranked entity within a table.
type Row struct {
	// Rank is the entity's position, with tie marker.
	Rank Rank `json:"rank"`

	// Name is the entity name (product, brand, format or user).
	Name string `json:"name"`

	// Shaves is the number of shaves logged with this entity.
	Shaves int `json:"shaves"`

	// UniqueUsers is the number of distinct users who logged this entity.
	UniqueUsers int `json:"unique_users"`

	// Deltas are the "Δ vs" cells, aligned with the table's DeltaPeriods.
	Deltas []Delta `json:"deltas,omitempty"`

	// Line is the source line number of the row, for diagnostics.
	Line int `json:"-"`
}

// Table returns the table with the given name, or nil if the report has no
// such table.
func (r *Report) Table(name string) *RankingTable {
	for i := range r.Tables {
		if r.Tables[i].Name == name {
			return &r.Tables[i]
		}
	}
	return nil
}

// TableNames returns the table names in document order.
func (r *Report) TableNames() []string {
	names := make([]string, len(r.Tables))
	for i, t := range r.Tables {
		names[i] = t.Name
	}
	return names
}

// RowCount returns the total number of rows across all tables.
func (r *Report) RowCount() int {
	var n int
	for _, t := range r.Tables {
		n += len(t.Rows)
	}
	return n
}

// Find returns the row for the named entity, or nil if absent.
func (t *RankingTable) Find(name string) *Row {
	for i := range t.Rows {
		if t.Rows[i].Name == name {
			return &t.Rows[i]
		}
	}
	return nil
}

// TieGroups partitions the table's rows into groups sharing a rank
// position, preserving document order. Rows with unique ranks form groups
// of one.
func (t *RankingTable) TieGroups() [][]Row {
	var groups [][]Row
	for _, row := range t.Rows {
		if n := len(groups); n > 0 && groups[n-1][0].Rank.Position == row.Rank.Position {
			groups[n-1] = append(groups[n-1], row)
			continue
		}
		groups = append(groups, []Row{row})
	}
	return groups
}
