package schedule

import (
	"math"
	"time"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

// Padding applied around the planned range so bars never touch the chart
// edges: two lead-in days, five trailing days.
const (
	leadInDays   = 2
	trailingDays = 5
)

// Timeline is the horizontal axis of a Gantt view.
type Timeline struct {
	MinDate   time.Time `json:"min_date"`
	MaxDate   time.Time `json:"max_date"`
	TotalDays int       `json:"total_days"`
}

// Bar is one task row: its horizontal geometry as percentages of the
// timeline, plus the flags the renderer needs.
type Bar struct {
	Task      project.Task `json:"task"`
	OffsetPct float64      `json:"offset_pct"`
	WidthPct  float64      `json:"width_pct"`
	Critical  bool         `json:"critical"`
}

// Gantt bundles the timeline with its bars.
type Gantt struct {
	Timeline Timeline `json:"timeline"`
	Bars     []Bar    `json:"bars"`
}

// NewTimeline computes the padded axis spanning all planned task dates.
// An empty task list yields a zero-length timeline anchored at "now".
func NewTimeline(tasks []project.Task, now time.Time) Timeline {
	if len(tasks) == 0 {
		return Timeline{MinDate: now, MaxDate: now}
	}

	minDate := time.Time{}
	maxDate := time.Time{}
	for i, t := range tasks {
		start := ParseDate(t.StartDate, now)
		end := ParseDate(t.FinishDate, now)
		if i == 0 || start.Before(minDate) {
			minDate = start
		}
		if i == 0 || end.After(maxDate) {
			maxDate = end
		}
	}

	minDate = minDate.AddDate(0, 0, -leadInDays)
	maxDate = maxDate.AddDate(0, 0, trailingDays)

	return Timeline{
		MinDate:   minDate,
		MaxDate:   maxDate,
		TotalDays: int(math.Ceil(maxDate.Sub(minDate).Hours() / 24)),
	}
}

// DateX converts a date to its horizontal position as a percentage of the
// timeline width.
func (tl Timeline) DateX(value string, now time.Time) float64 {
	if tl.TotalDays == 0 {
		return 0
	}
	d := ParseDate(value, now)
	diff := math.Ceil(d.Sub(tl.MinDate).Hours() / 24)
	return diff / float64(tl.TotalDays) * 100
}

// BuildGantt derives the full Gantt layout. A task is marked critical when
// its planned finish lands within a day of the latest finish in the project
// (or when the editor flagged it explicitly).
func BuildGantt(tasks []project.Task, now time.Time) Gantt {
	tl := NewTimeline(tasks, now)
	if len(tasks) == 0 {
		return Gantt{Timeline: tl}
	}

	maxEnd := time.Time{}
	for i, t := range tasks {
		end := ParseDate(t.FinishDate, now)
		if i == 0 || end.After(maxEnd) {
			maxEnd = end
		}
	}

	bars := make([]Bar, len(tasks))
	for i, t := range tasks {
		end := ParseDate(t.FinishDate, now)
		slackDays := maxEnd.Sub(end).Hours() / 24

		offset := tl.DateX(t.StartDate, now)
		width := tl.DateX(t.FinishDate, now) - offset
		if width < 0 {
			width = 0
		}

		bars[i] = Bar{
			Task:      t,
			OffsetPct: offset,
			WidthPct:  width,
			Critical:  t.Critical || slackDays < 1,
		}
	}

	return Gantt{Timeline: tl, Bars: bars}
}
