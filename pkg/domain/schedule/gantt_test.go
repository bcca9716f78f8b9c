package schedule

import (
	"testing"
	"time"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

func date(value string) time.Time {
	d, err := time.Parse(project.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewTimeline_Empty(t *testing.T) {
	now := date("2024-01-01")
	tl := NewTimeline(nil, now)

	if tl.TotalDays != 0 {
		t.Errorf("empty task list must yield a zero-length timeline, got %d days", tl.TotalDays)
	}
	if !tl.MinDate.Equal(now) || !tl.MaxDate.Equal(now) {
		t.Errorf("empty timeline must anchor at now, got %v..%v", tl.MinDate, tl.MaxDate)
	}
}

func TestNewTimeline_Padding(t *testing.T) {
	tasks := []project.Task{
		{ID: "a", StartDate: "2024-03-10", FinishDate: "2024-03-20"},
		{ID: "b", StartDate: "2024-03-01", FinishDate: "2024-03-15"},
	}

	tl := NewTimeline(tasks, date("2024-03-05"))

	if !tl.MinDate.Equal(date("2024-02-28")) {
		t.Errorf("expected min date 2024-02-28 (2-day lead-in), got %v", tl.MinDate)
	}
	if !tl.MaxDate.Equal(date("2024-03-25")) {
		t.Errorf("expected max date 2024-03-25 (5 trailing days), got %v", tl.MaxDate)
	}
	if tl.TotalDays != 26 {
		t.Errorf("expected 26 total days, got %d", tl.TotalDays)
	}
}

func TestBuildGantt_CriticalFlag(t *testing.T) {
	tasks := []project.Task{
		{ID: "finishes-last", StartDate: "2024-01-01", FinishDate: "2024-02-01"},
		{ID: "slack", StartDate: "2024-01-01", FinishDate: "2024-01-10"},
		{ID: "flagged", StartDate: "2024-01-01", FinishDate: "2024-01-05", Critical: true},
	}

	g := BuildGantt(tasks, date("2024-01-15"))

	byID := map[string]Bar{}
	for _, b := range g.Bars {
		byID[b.Task.ID] = b
	}

	if !byID["finishes-last"].Critical {
		t.Error("the latest-finishing task must be critical")
	}
	if byID["slack"].Critical {
		t.Error("a task with three weeks of slack must not be critical")
	}
	if !byID["flagged"].Critical {
		t.Error("an editor-flagged task stays critical regardless of slack")
	}
}

func TestBuildGantt_BarGeometry(t *testing.T) {
	tasks := []project.Task{
		{ID: "a", StartDate: "2024-01-03", FinishDate: "2024-01-13"},
	}
	now := date("2024-01-05")

	g := BuildGantt(tasks, now)

	bar := g.Bars[0]
	if bar.OffsetPct <= 0 || bar.OffsetPct >= 100 {
		t.Errorf("bar offset must fall inside the padded timeline, got %.2f%%", bar.OffsetPct)
	}
	if bar.WidthPct <= 0 {
		t.Errorf("bar width must be positive for a 10-day task, got %.2f%%", bar.WidthPct)
	}
	if end := bar.OffsetPct + bar.WidthPct; end > 100 {
		t.Errorf("bar must not overflow the timeline, ends at %.2f%%", end)
	}
}

func TestParseDate_Lenient(t *testing.T) {
	fallback := date("2024-06-01")

	if got := ParseDate("2024-01-15", fallback); !got.Equal(date("2024-01-15")) {
		t.Errorf("valid date mis-parsed: %v", got)
	}
	if got := ParseDate("", fallback); !got.Equal(fallback) {
		t.Errorf("empty date must fall back, got %v", got)
	}
	if got := ParseDate("15/01/2024", fallback); !got.Equal(fallback) {
		t.Errorf("malformed date must fall back, got %v", got)
	}
}

func TestAddDays(t *testing.T) {
	if got := AddDays("2024-01-28", 5); got != "2024-02-02" {
		t.Errorf("expected 2024-02-02, got %s", got)
	}
	if got := AddDays("garbage", 5); got != "garbage" {
		t.Errorf("malformed input must pass through unchanged, got %s", got)
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(date("2024-01-01"), date("2024-01-11")); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
	if got := DaysBetween(date("2024-01-11"), date("2024-01-01")); got != -10 {
		t.Errorf("expected -10, got %d", got)
	}
}
