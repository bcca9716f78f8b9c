package project

import "errors"

// Domain errors for project editing.
var (
	// ErrNoProject indicates no project document exists yet.
	ErrNoProject = errors.New("no project found")

	// ErrTaskNotFound indicates the task does not exist in the project.
	ErrTaskNotFound = errors.New("task not found in project")

	// ErrResourceNotFound indicates the resource does not exist in the project.
	ErrResourceNotFound = errors.New("resource not found in project")

	// ErrPredecessorsNotMet indicates predecessor tasks are not completed.
	ErrPredecessorsNotMet = errors.New("task predecessors not met")

	// ErrInvalidTransition indicates the requested status transition is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// NotFoundError reports a failed task or resource lookup.
type NotFoundError struct {
	Kind string // "task" or "resource"
	ID   string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " " + e.ID + " not found"
}

// Is allows errors.Is to work with NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	switch e.Kind {
	case "task":
		return target == ErrTaskNotFound
	case "resource":
		return target == ErrResourceNotFound
	}
	return false
}

// PredecessorError provides details about which predecessor is blocking.
type PredecessorError struct {
	TaskID        string
	PredecessorID string
	Status        string
}

func (e *PredecessorError) Error() string {
	return "task " + e.TaskID + " blocked by predecessor " + e.PredecessorID + " (status: " + e.Status + ")"
}

// Is allows errors.Is to work with PredecessorError.
func (e *PredecessorError) Is(target error) bool {
	return target == ErrPredecessorsNotMet
}

// TransitionError provides details about an invalid transition.
type TransitionError struct {
	TaskID     string
	TaskStatus TaskStatus
	Event      string
}

func (e *TransitionError) Error() string {
	return "cannot apply event " + e.Event + " to task " + e.TaskID + " in status " + string(e.TaskStatus)
}

// Is allows errors.Is to work with TransitionError.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
