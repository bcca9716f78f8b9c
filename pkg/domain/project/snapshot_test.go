package project

import (
	"testing"
	"time"
)

func snapshotFixture() *Project {
	return &Project{
		ID:   "p1",
		Name: "Depot",
		Tasks: []Task{
			{ID: "t1", Title: "Excavation", Status: StatusCompleted, PercentComplete: 100,
				StartDate: "2026-01-01", FinishDate: "2026-01-10", Duration: 9},
			{ID: "t2", Title: "Foundation", Status: StatusPending,
				StartDate: "2026-01-11", FinishDate: "2026-01-31", Duration: 20,
				Predecessors: []Predecessor{{TaskID: "t1", Type: FinishToStart}}},
			{ID: "t3", Title: "Framing", Status: StatusPending,
				StartDate: "2026-02-01", FinishDate: "2026-02-20", Duration: 19,
				Predecessors: []Predecessor{{TaskID: "t2", Type: FinishToStart}}},
			{ID: "t4", Title: "Site office", Status: StatusInProgress, PercentComplete: 40,
				StartDate: "2026-01-01", FinishDate: "2026-01-20", Duration: 19},
		},
	}
}

func TestBuildSnapshot(t *testing.T) {
	p := snapshotFixture()
	s := BuildSnapshot(p, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	if s.Counts.Completed != 1 || s.Counts.Pending != 2 || s.Counts.InProgress != 1 {
		t.Errorf("unexpected counts: %+v", s.Counts)
	}
	// (100 + 0 + 0 + 40) / 4
	if s.Progress != 35 {
		t.Errorf("expected progress 35, got %v", s.Progress)
	}
	if len(s.ReadyTasks) != 1 || s.ReadyTasks[0] != "t2" {
		t.Errorf("expected t2 ready, got %v", s.ReadyTasks)
	}
	if len(s.BlockedTasks) != 1 || s.BlockedTasks[0] != "t3" {
		t.Errorf("expected t3 blocked, got %v", s.BlockedTasks)
	}
}

func TestBuildSnapshotEmpty(t *testing.T) {
	s := BuildSnapshot(&Project{ID: "p1", Name: "Empty"}, time.Now())
	if s.Progress != 0 {
		t.Errorf("expected zero progress, got %v", s.Progress)
	}
	if len(s.ReadyTasks) != 0 || len(s.BlockedTasks) != 0 {
		t.Error("expected no task buckets")
	}
}

func TestCheckStartGate(t *testing.T) {
	p := snapshotFixture()

	if err := p.CheckStartGate(p.TaskByID("t2")); err != nil {
		t.Errorf("t2 should be startable: %v", err)
	}
	if err := p.CheckStartGate(p.TaskByID("t3")); err == nil {
		t.Error("t3 should be blocked by t2")
	}
}

func TestCheckStartGateStartToStart(t *testing.T) {
	p := snapshotFixture()
	p.Tasks[2].Predecessors = []Predecessor{{TaskID: "t4", Type: StartToStart}}

	// t4 is in progress, which satisfies a start-to-start link.
	if err := p.CheckStartGate(p.TaskByID("t3")); err != nil {
		t.Errorf("SS link to a started task should not block: %v", err)
	}
}

func TestCheckStartGateDanglingLink(t *testing.T) {
	p := snapshotFixture()
	p.Tasks[1].Predecessors = []Predecessor{{TaskID: "gone", Type: FinishToStart}}

	if err := p.CheckStartGate(p.TaskByID("t2")); err != nil {
		t.Errorf("dangling link should not block: %v", err)
	}
}

func TestCheckStartGateFinishLinksNeverBlock(t *testing.T) {
	p := snapshotFixture()
	p.Tasks[2].Predecessors = []Predecessor{
		{TaskID: "t2", Type: FinishToFinish},
		{TaskID: "t2", Type: StartToFinish},
	}

	if err := p.CheckStartGate(p.TaskByID("t3")); err != nil {
		t.Errorf("FF/SF links should not gate the start: %v", err)
	}
}
