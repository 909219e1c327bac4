package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rank is a position in a ranking table. Entities with identical metric
// values share a rank number and carry a trailing "=" marker, e.g. "25=".
type Rank struct {
	// Position is the 1-based rank number.
	Position int `json:"position"`

	// Tied is true when the rank is shared with at least one other row.
	// Tied ranks render with a trailing "=".
	Tied bool `json:"tied,omitempty"`
}

// ErrInvalidRank is returned when a rank cell cannot be parsed.
var ErrInvalidRank = errors.New("invalid rank")

// ParseRank parses a rank cell: a positive integer with an optional
// trailing "=" tie marker. Any other form is an error; the tie notation is
// part of the report format contract and must not drift.
func ParseRank(s string) (Rank, error) {
	s = strings.TrimSpace(s)
	tied := strings.HasSuffix(s, "=")
	if tied {
		s = strings.TrimSuffix(s, "=")
	}

	pos, err := strconv.Atoi(s)
	if err != nil || pos < 1 {
		return Rank{}, fmt.Errorf("%w: %q", ErrInvalidRank, s)
	}
	return Rank{Position: pos, Tied: tied}, nil
}

// String renders the rank in report notation: "25" or "25=".
func (r Rank) String() string {
	if r.Tied {
		return strconv.Itoa(r.Position) + "="
	}
	return strconv.Itoa(r.Position)
}
