package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies which of the two monthly reports a document is.
//
// Design decision: We use string-typed constants rather than iota because
// the value is stored in the database and serialized to JSON; a stable,
// self-describing representation beats a bare integer there.
type Category string

const (
	// CategoryHardware is the monthly hardware report (razors, blades,
	// brushes and their formats and fibers).
	CategoryHardware Category = "hardware"

	// CategorySoftware is the monthly software report, also published under
	// the name "Lather Log" (soaps, brands, scents).
	CategorySoftware Category = "software"
)

// ErrUnknownCategory is returned when a report title names neither report.
var ErrUnknownCategory = errors.New("unknown report category")

// ParseCategory maps a report title's subject to a Category.
// "Hardware" maps to hardware; "Software" and "Lather Log" map to software.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hardware":
		return CategoryHardware, nil
	case "software", "lather log", "software/lather log":
		return CategorySoftware, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// String returns the category identifier.
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryHardware || c == CategorySoftware
}
