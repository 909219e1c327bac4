package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DeltaKind classifies a "Δ vs <period>" cell.
type DeltaKind int

const (
	// DeltaUnchanged means the entity holds the same rank as in the
	// comparison period. Rendered as "=".
	DeltaUnchanged DeltaKind = iota

	// DeltaUp means the entity moved up N positions. Rendered as "↑N".
	DeltaUp

	// DeltaDown means the entity moved down N positions. Rendered as "↓N".
	DeltaDown

	// DeltaNotPresent means the entity did not appear in the comparison
	// period. Rendered as "n/a".
	DeltaNotPresent
)

// Delta is one rank-movement cell: a comparison of an entity's rank against
// a prior reporting period.
//
// Design decision: We keep Kind and Positions separate rather than encoding
// movement as a signed integer because "unchanged" and "not present" are
// distinct states the signed form cannot carry, and the report format treats
// all four as first-class.
type Delta struct {
	// Kind is the movement classification.
	Kind DeltaKind `json:"kind"`

	// Positions is the number of positions moved. Only meaningful for
	// DeltaUp and DeltaDown, where it is at least 1.
	Positions int `json:"positions,omitempty"`
}

// ErrInvalidDelta is returned when a delta cell matches none of the four
// allowed forms.
var ErrInvalidDelta = errors.New("invalid delta cell")

// ParseDelta parses a delta cell. Exactly four forms are accepted, matching
// the conventions of the existing report corpus: "=", "↑N", "↓N", "n/a".
// Whitespace around the cell is ignored; everything else is an error.
func ParseDelta(s string) (Delta, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "=":
		return Delta{Kind: DeltaUnchanged}, nil
	case s == "n/a":
		return Delta{Kind: DeltaNotPresent}, nil
	case strings.HasPrefix(s, "↑"):
		n, err := parseMoveCount(strings.TrimPrefix(s, "↑"))
		if err != nil {
			return Delta{}, fmt.Errorf("%w: %q", ErrInvalidDelta, s)
		}
		return Delta{Kind: DeltaUp, Positions: n}, nil
	case strings.HasPrefix(s, "↓"):
		n, err := parseMoveCount(strings.TrimPrefix(s, "↓"))
		if err != nil {
			return Delta{}, fmt.Errorf("%w: %q", ErrInvalidDelta, s)
		}
		return Delta{Kind: DeltaDown, Positions: n}, nil
	default:
		return Delta{}, fmt.Errorf("%w: %q", ErrInvalidDelta, s)
	}
}

// parseMoveCount parses the digits after an arrow. Zero is rejected: an
// unmoved rank is "=", never "↑0".
func parseMoveCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("move count must be positive: %d", n)
	}
	return n, nil
}

// String renders the delta in report notation.
func (d Delta) String() string {
	switch d.Kind {
	case DeltaUnchanged:
		return "="
	case DeltaUp:
		return "↑" + strconv.Itoa(d.Positions)
	case DeltaDown:
		return "↓" + strconv.Itoa(d.Positions)
	case DeltaNotPresent:
		return "n/a"
	default:
		return "?"
	}
}

// DeltaBetween computes the expected delta for an entity ranked at current
// now and at previous in the comparison period. previous is nil when the
// entity was absent from the comparison period.
func DeltaBetween(current Rank, previous *Rank) Delta {
	if previous == nil {
		return Delta{Kind: DeltaNotPresent}
	}
	switch {
	case previous.Position > current.Position:
		return Delta{Kind: DeltaUp, Positions: previous.Position - current.Position}
	case previous.Position < current.Position:
		return Delta{Kind: DeltaDown, Positions: current.Position - previous.Position}
	default:
		return Delta{Kind: DeltaUnchanged}
	}
}
