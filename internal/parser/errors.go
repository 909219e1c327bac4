package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for documents that are not parseable reports at all.
// Row-level problems are reported as *ParseError instead, carrying the
// source location.
var (
	// ErrMissingTitle is returned when no report title line is found.
	ErrMissingTitle = errors.New("not a report: missing title line")

	// ErrMissingSummary is returned when the document lacks the required
	// "Total Shaves" or "Unique Shavers" statistics.
	ErrMissingSummary = errors.New("missing summary statistics")

	// ErrNoTables is returned when the document contains no ranking tables.
	ErrNoTables = errors.New("report contains no ranking tables")
)

// ParseError describes a malformed construct at a specific source line.
type ParseError struct {
	// Path is the source file, when known.
	Path string

	// Line is the 1-based source line number.
	Line int

	// Msg describes what is malformed.
	Msg string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	where := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", where, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", where, e.Msg)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}
