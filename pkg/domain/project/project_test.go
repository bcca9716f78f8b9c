package project

import (
	"errors"
	"testing"
)

func TestProjectTaskByID(t *testing.T) {
	p := snapshotFixture()

	if got := p.TaskByID("t2"); got == nil || got.Title != "Foundation" {
		t.Errorf("unexpected lookup result: %v", got)
	}
	if p.TaskByID("nope") != nil {
		t.Error("expected nil for unknown ID")
	}

	// The pointer aliases the slice so edits stick.
	p.TaskByID("t2").PercentComplete = 55
	if p.Tasks[1].PercentComplete != 55 {
		t.Error("expected edit through the pointer to persist")
	}
}

func TestProjectRemoveTask(t *testing.T) {
	p := snapshotFixture()

	if err := p.RemoveTask("t1"); err != nil {
		t.Fatalf("RemoveTask failed: %v", err)
	}
	if p.TaskByID("t1") != nil {
		t.Error("t1 should be gone")
	}

	err := p.RemoveTask("t1")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestProjectRemoveResource(t *testing.T) {
	p := &Project{
		ID:        "p1",
		Name:      "Depot",
		Resources: []Resource{{ID: "r1", Name: "Concrete C30", CostRate: 120}},
	}

	if err := p.RemoveResource("r1"); err != nil {
		t.Fatalf("RemoveResource failed: %v", err)
	}
	err := p.RemoveResource("r1")
	if !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestNotFoundErrorIs(t *testing.T) {
	taskErr := &NotFoundError{Kind: "task", ID: "t1"}
	if !errors.Is(taskErr, ErrTaskNotFound) {
		t.Error("task NotFoundError should match ErrTaskNotFound")
	}
	if errors.Is(taskErr, ErrResourceNotFound) {
		t.Error("task NotFoundError should not match ErrResourceNotFound")
	}
}
