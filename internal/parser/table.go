package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wetshaving/sotdarc/internal/model"
)

// deltaHeaderPrefix introduces a rank-movement column; the remainder of the
// header names the comparison period, e.g. "Δ vs Jul 2025".
const deltaHeaderPrefix = "Δ vs "

// separatorCell matches one cell of a Markdown table separator row.
var separatorCell = regexp.MustCompile(`^:?-+:?$`)

// columnKind classifies a table column by its header.
type columnKind int

const (
	columnRank columnKind = iota
	columnName
	columnShaves
	columnUniqueUsers
	columnDelta
)

// tableLayout is the column classification of one ranking table.
type tableLayout struct {
	// kinds holds the classification of each column in order.
	kinds []columnKind

	// periods holds, per column, the comparison period of delta columns;
	// zero for all other columns.
	periods []model.Month
}

// parseTable parses the ranking table in a "##" section. heading is the
// table name; headingLine is its 1-based source line number.
func (p *Parser) parseTable(heading string, section []string, path string, headingLine int) (model.RankingTable, error) {
	table := model.RankingTable{Name: heading}

	// Locate the table: the first pipe row followed by a separator row.
	start := -1
	for i := 0; i < len(section)-1; i++ {
		if isPipeRow(section[i]) && isSeparatorRow(section[i+1]) {
			start = i
			break
		}
	}
	if start < 0 {
		// A heading without a table is kept as an empty table; the
		// validator reports it rather than the parser rejecting it.
		return table, nil
	}

	headerLine := headingLine + 1 + start
	layout, err := p.classifyColumns(splitCells(section[start]), path, headerLine)
	if err != nil {
		return model.RankingTable{}, err
	}
	table.DeltaPeriods = deltaPeriods(layout)

	for i := start + 2; i < len(section); i++ {
		if !isPipeRow(section[i]) {
			break
		}
		line := headingLine + 1 + i
		row, err := p.parseRow(heading, splitCells(section[i]), layout, path, line)
		if err != nil {
			return model.RankingTable{}, err
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// classifyColumns maps header cells to column kinds. The format requires a
// Rank column, exactly one entity-name column, Shaves and Unique Users
// columns, and zero or more delta columns.
func (p *Parser) classifyColumns(header []string, path string, line int) (tableLayout, error) {
	layout := tableLayout{
		kinds:   make([]columnKind, len(header)),
		periods: make([]model.Month, len(header)),
	}

	var haveRank, haveName, haveShaves, haveUnique bool
	for i, cell := range header {
		switch {
		case strings.EqualFold(cell, "Rank"):
			layout.kinds[i] = columnRank
			haveRank = true
		case strings.EqualFold(cell, "Shaves"):
			layout.kinds[i] = columnShaves
			haveShaves = true
		case strings.EqualFold(cell, "Unique Users"):
			layout.kinds[i] = columnUniqueUsers
			haveUnique = true
		case strings.HasPrefix(cell, deltaHeaderPrefix):
			period, err := model.ParseMonthName(strings.TrimPrefix(cell, deltaHeaderPrefix))
			if err != nil {
				return tableLayout{}, &ParseError{Path: path, Line: line,
					Msg: "bad delta column header " + strconv.Quote(cell), Err: err}
			}
			layout.kinds[i] = columnDelta
			layout.periods[i] = period
		case !haveName:
			layout.kinds[i] = columnName
			haveName = true
		default:
			return tableLayout{}, &ParseError{Path: path, Line: line,
				Msg: "unrecognized column " + strconv.Quote(cell)}
		}
	}

	if !haveRank || !haveName || !haveShaves || !haveUnique {
		return tableLayout{}, &ParseError{Path: path, Line: line,
			Msg: "table is missing a required column (Rank, name, Shaves, Unique Users)"}
	}
	return layout, nil
}

// parseRow parses one data row against the table layout.
func (p *Parser) parseRow(table string, cells []string, layout tableLayout, path string, line int) (model.Row, error) {
	if len(cells) != len(layout.kinds) {
		return model.Row{}, &ParseError{Path: path, Line: line,
			Msg: "row has " + strconv.Itoa(len(cells)) + " cells, header has " + strconv.Itoa(len(layout.kinds))}
	}

	row := model.Row{Line: line}
	for i, cell := range cells {
		switch layout.kinds[i] {
		case columnRank:
			rank, err := model.ParseRank(cell)
			if err != nil {
				return model.Row{}, &ParseError{Path: path, Line: line, Msg: "bad rank cell", Err: err}
			}
			row.Rank = rank
		case columnName:
			row.Name = p.canonicalName(table, cell)
		case columnShaves:
			n, err := parseCount(cell)
			if err != nil {
				return model.Row{}, &ParseError{Path: path, Line: line, Msg: "bad shave count", Err: err}
			}
			row.Shaves = n
		case columnUniqueUsers:
			n, err := parseCount(cell)
			if err != nil {
				return model.Row{}, &ParseError{Path: path, Line: line, Msg: "bad unique-user count", Err: err}
			}
			row.UniqueUsers = n
		case columnDelta:
			delta, err := model.ParseDelta(cell)
			if err != nil {
				return model.Row{}, &ParseError{Path: path, Line: line, Msg: "bad delta cell", Err: err}
			}
			row.Deltas = append(row.Deltas, delta)
		}
	}
	return row, nil
}

// deltaPeriods extracts the comparison periods of the delta columns in
// column order.
func deltaPeriods(layout tableLayout) []model.Month {
	var periods []model.Month
	for i, kind := range layout.kinds {
		if kind == columnDelta {
			periods = append(periods, layout.periods[i])
		}
	}
	return periods
}

// parseCount parses a non-negative integer cell that may use thousands
// separators, e.g. "1,234".
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// isPipeRow reports whether a line is a Markdown table row.
func isPipeRow(line string) bool {
	s := strings.TrimSpace(line)
	return strings.HasPrefix(s, "|") && strings.HasSuffix(s, "|") && len(s) > 1
}

// isSeparatorRow reports whether a line is a table separator row like
// "|------|:---:|".
func isSeparatorRow(line string) bool {
	if !isPipeRow(line) {
		return false
	}
	cells := splitCells(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorCell.MatchString(c) {
			return false
		}
	}
	return true
}

// splitCells splits a pipe row into trimmed cell values.
func splitCells(line string) []string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	parts := strings.Split(s, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
