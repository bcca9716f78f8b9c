// Package schedule derives timeline views from a project's task plan: the
// date range and bar geometry behind a Gantt rendering, plus a simple
// near-critical heuristic.
package schedule

import (
	"time"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

// ParseDate reads a planned calendar date, falling back to the given default
// when the value is empty or malformed. The scheduling views never fail on a
// bad date; they degrade the same way the analytics core does.
func ParseDate(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	d, err := time.Parse(project.DateLayout, value)
	if err != nil {
		return fallback
	}
	return d
}

// AddDays shifts a calendar date by a number of whole days.
func AddDays(value string, days int) string {
	d, err := time.Parse(project.DateLayout, value)
	if err != nil {
		return value
	}
	return d.AddDate(0, 0, days).Format(project.DateLayout)
}

// DaysBetween returns the whole-day difference from a to b. Negative when b
// precedes a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
