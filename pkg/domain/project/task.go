package project

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
	StatusDelayed    TaskStatus = "DELAYED"
)

type TaskType string

const (
	TypeTask      TaskType = "task"
	TypeMilestone TaskType = "milestone"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Discipline string

const (
	DisciplineCivil         Discipline = "civil"
	DisciplineArchitectural Discipline = "architectural"
	DisciplineElectrical    Discipline = "electrical"
	DisciplineMechanical    Discipline = "mechanical"
	DisciplineGeneral       Discipline = "general"
)

type PredecessorType string

const (
	FinishToStart  PredecessorType = "FS"
	StartToStart   PredecessorType = "SS"
	FinishToFinish PredecessorType = "FF"
	StartToFinish  PredecessorType = "SF"
)

// Predecessor links a task to one it depends on.
type Predecessor struct {
	TaskID string          `json:"task_id" yaml:"task_id"`
	Type   PredecessorType `json:"type" yaml:"type"`
	Lag    int             `json:"lag" yaml:"lag"` // days
}

// DateLayout is the calendar-date format used for all planned and actual dates.
// Time-of-day is never tracked.
const DateLayout = "2006-01-02"

// Task is a scheduled unit of work.
type Task struct {
	ID          string   `json:"id" yaml:"id"`
	WBS         string   `json:"wbs" yaml:"wbs"` // display-only, not required unique
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Type        TaskType `json:"type" yaml:"type"`
	Phase       string   `json:"phase,omitempty" yaml:"phase,omitempty"`

	StartDate  string `json:"start_date" yaml:"start_date"`   // planned start, YYYY-MM-DD
	FinishDate string `json:"finish_date" yaml:"finish_date"` // planned finish, YYYY-MM-DD
	Duration   int    `json:"duration" yaml:"duration"`       // whole days; finish = start + duration

	Predecessors []Predecessor `json:"predecessors,omitempty" yaml:"predecessors,omitempty"`
	Status       TaskStatus    `json:"status" yaml:"status"`

	Responsible string     `json:"responsible,omitempty" yaml:"responsible,omitempty"`
	Discipline  Discipline `json:"discipline,omitempty" yaml:"discipline,omitempty"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Critical    bool       `json:"critical,omitempty" yaml:"critical,omitempty"`

	ActualStart     string  `json:"actual_start,omitempty" yaml:"actual_start,omitempty"`
	ActualFinish    string  `json:"actual_finish,omitempty" yaml:"actual_finish,omitempty"`
	PercentComplete float64 `json:"percent_complete" yaml:"percent_complete"` // 0-100, editor-clamped
	ActualCost      float64 `json:"actual_cost,omitempty" yaml:"actual_cost,omitempty"`
	DelayReason     string  `json:"delay_reason,omitempty" yaml:"delay_reason,omitempty"`

	Resources []ResourceAssignment `json:"resources,omitempty" yaml:"resources,omitempty"`
	// FixedCost overrides the resource-derived budget when set. A pointer so
	// an explicit zero budget is distinguishable from "no override".
	FixedCost *float64 `json:"fixed_cost,omitempty" yaml:"fixed_cost,omitempty"`
}

// NewTask creates a validated Task with the finish date derived from the
// start date and duration.
func NewTask(id, title, startDate string, duration int) (Task, error) {
	if id == "" {
		return Task{}, fmt.Errorf("task ID must not be empty")
	}
	if title == "" {
		return Task{}, fmt.Errorf("task title must not be empty")
	}
	if duration < 0 {
		return Task{}, fmt.Errorf("task duration must be >= 0")
	}
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return Task{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	return Task{
		ID:         id,
		Title:      title,
		Type:       TypeTask,
		StartDate:  startDate,
		FinishDate: start.AddDate(0, 0, duration).Format(DateLayout),
		Duration:   duration,
		Status:     StatusPending,
		Priority:   PriorityMedium,
	}, nil
}

// Reschedule moves the task to a new start date and duration, keeping the
// finish = start + duration invariant.
func (t *Task) Reschedule(startDate string, duration int) error {
	if duration < 0 {
		return fmt.Errorf("task duration must be >= 0")
	}
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	t.StartDate = startDate
	t.Duration = duration
	t.FinishDate = start.AddDate(0, 0, duration).Format(DateLayout)
	return nil
}

// SetProgress records percent complete, clamped to [0,100]. Clamping happens
// here at the editing boundary; the analytics core passes the stored value
// through untouched.
func (t *Task) SetProgress(percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	t.PercentComplete = percent
}

// HasFixedCost reports whether a manual budget override is set.
func (t *Task) HasFixedCost() bool {
	return t.FixedCost != nil
}
