package project

import (
	"encoding/json"
	"testing"
)

func TestTaskStatusTransitions(t *testing.T) {
	tests := []struct {
		from  TaskStatus
		event string
		to    TaskStatus
		ok    bool
	}{
		{StatusPending, "start", StatusInProgress, true},
		{StatusInProgress, "complete", StatusCompleted, true},
		{StatusInProgress, "delay", StatusDelayed, true},
		{StatusInProgress, "stop", StatusPending, true},
		{StatusDelayed, "resume", StatusInProgress, true},
		{StatusDelayed, "complete", StatusCompleted, true},
		{StatusCompleted, "reopen", StatusInProgress, true},
		{StatusPending, "complete", StatusPending, false},
		{StatusCompleted, "start", StatusCompleted, false},
		{StatusDelayed, "start", StatusDelayed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+tt.event, func(t *testing.T) {
			got, err := tt.from.TransitionWith(tt.event)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.to {
					t.Errorf("expected %s, got %s", tt.to, got)
				}
			} else {
				if err == nil {
					t.Fatal("expected error")
				}
			}
			if tt.from.CanTransitionWith(tt.event) != tt.ok {
				t.Errorf("CanTransitionWith disagrees with TransitionWith")
			}
		})
	}
}

func TestTaskStatusValidEvents(t *testing.T) {
	events := StatusInProgress.ValidEvents()
	want := []string{"complete", "delay", "stop"}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected sorted %v, got %v", want, events)
		}
	}
}

func TestTaskStatusIsFinal(t *testing.T) {
	if !StatusCompleted.IsFinal() {
		t.Error("COMPLETED should be final")
	}
	for _, s := range []TaskStatus{StatusPending, StatusInProgress, StatusDelayed} {
		if s.IsFinal() {
			t.Errorf("%s should not be final", s)
		}
	}
}

func TestTaskStatusUnmarshalJSON(t *testing.T) {
	var s TaskStatus
	if err := json.Unmarshal([]byte(`"IN_PROGRESS"`), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", s)
	}

	if err := json.Unmarshal([]byte(`"PAUSED"`), &s); err == nil {
		t.Error("expected error for unknown status")
	}
}
