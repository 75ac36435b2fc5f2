// Package query selects subsets of the order collection by free text and
// calendar window, and aggregates the statistics shown by the management view.
package query

import (
	"fmt"
	"time"
)

// Month is an explicit year+month pair. The management view keeps one as its
// navigation state and passes it in; nothing in this package mutates it.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth reads the "2006-01" form used in query parameters.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("query: parse month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// Step moves the month by delta, rolling the year across December/January.
func (m Month) Step(delta int) Month {
	t := time.Date(m.Year, m.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return MonthOf(t)
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// String renders the "2006-01" form.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label renders the Japanese display form, e.g. "2025年9月".
func (m Month) Label() string {
	return fmt.Sprintf("%d年%d月", m.Year, int(m.Month))
}

// IsZero reports whether the month is unset.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}
