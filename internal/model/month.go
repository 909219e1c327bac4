package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month identifies a reporting period: a calendar year and month.
// Reports are identified by (Month, Category), and delta columns name the
// Month they compare against.
type Month struct {
	// Year is the calendar year, e.g. 2025.
	Year int `json:"year"`

	// Month is the calendar month (1-12).
	Month time.Month `json:"month"`
}

// ErrInvalidMonth is returned when a month string cannot be parsed.
var ErrInvalidMonth = errors.New("invalid month")

// ParseMonth parses the canonical "YYYY-MM" form, e.g. "2025-08".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// ParseMonthName parses the human form used in report titles and delta
// column headers: "August 2025" or "Aug 2025".
func ParseMonthName(s string) (Month, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return Month{}, fmt.Errorf("%w: %q (want \"Month YYYY\")", ErrInvalidMonth, s)
	}

	year, err := strconv.Atoi(fields[1])
	if err != nil || year < 1000 || year > 9999 {
		return Month{}, fmt.Errorf("%w: %q (bad year)", ErrInvalidMonth, s)
	}

	for _, layout := range []string{"January", "Jan"} {
		if t, err := time.Parse(layout, fields[0]); err == nil {
			return Month{Year: year, Month: t.Month()}, nil
		}
	}
	return Month{}, fmt.Errorf("%w: %q (bad month name)", ErrInvalidMonth, s)
}

// String returns the canonical "YYYY-MM" form.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label returns the human form used in report titles, e.g. "August 2025".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month.String(), m.Year)
}

// ShortLabel returns the abbreviated human form used in delta column
// headers, e.g. "Aug 2025".
func (m Month) ShortLabel() string {
	return fmt.Sprintf("%s %d", m.Month.String()[:3], m.Year)
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// AddMonths returns the month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Before reports whether m is chronologically before other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}
