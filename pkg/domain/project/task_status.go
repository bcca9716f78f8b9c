package project

import (
	"encoding/json"
	"fmt"
	"sort"
)

// validTransitions defines the allowed status transitions and their events.
// Map: currentStatus -> event -> targetStatus
var validTransitions = map[TaskStatus]map[string]TaskStatus{
	StatusPending: {
		"start": StatusInProgress,
	},
	StatusInProgress: {
		"complete": StatusCompleted,
		"delay":    StatusDelayed,
		"stop":     StatusPending,
	},
	StatusDelayed: {
		"resume":   StatusInProgress,
		"complete": StatusCompleted,
	},
	StatusCompleted: {
		"reopen": StatusInProgress,
	},
}

// AllTaskStatuses returns all valid task statuses.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		StatusPending,
		StatusInProgress,
		StatusCompleted,
		StatusDelayed,
	}
}

// IsValid returns true if the status is a valid task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusDelayed:
		return true
	default:
		return false
	}
}

func (s TaskStatus) String() string {
	return string(s)
}

// IsFinal returns true for statuses with no forward work remaining.
func (s TaskStatus) IsFinal() bool {
	return s == StatusCompleted
}

// CanTransitionWith returns true if the given event can trigger a transition
// from this status.
func (s TaskStatus) CanTransitionWith(event string) bool {
	transitions, ok := validTransitions[s]
	if !ok {
		return false
	}
	_, ok = transitions[event]
	return ok
}

// TransitionWith returns the status reached by applying the event.
func (s TaskStatus) TransitionWith(event string) (TaskStatus, error) {
	transitions, ok := validTransitions[s]
	if !ok {
		return s, fmt.Errorf("status %q has no valid transitions", s)
	}
	target, ok := transitions[event]
	if !ok {
		return s, &TransitionError{TaskStatus: s, Event: event}
	}
	return target, nil
}

// ValidEvents returns the events accepted in this status, sorted for
// deterministic output.
func (s TaskStatus) ValidEvents() []string {
	transitions, ok := validTransitions[s]
	if !ok {
		return nil
	}
	events := make([]string, 0, len(transitions))
	for e := range transitions {
		events = append(events, e)
	}
	sort.Strings(events)
	return events
}

// UnmarshalJSON validates the status on decode.
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status := TaskStatus(raw)
	if !status.IsValid() {
		return fmt.Errorf("invalid task status: %q", raw)
	}
	*s = status
	return nil
}
