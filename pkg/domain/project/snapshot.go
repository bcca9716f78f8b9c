package project

import "time"

// StatusCounts buckets the schedule by task status.
type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Delayed    int `json:"delayed"`
}

// Snapshot is a consistent read model of the schedule at a point in time:
// status buckets, overall progress, and which pending tasks are ready to
// start versus held back by a dependency.
type Snapshot struct {
	Project      *Project     `json:"project"`
	Counts       StatusCounts `json:"counts"`
	Progress     float64      `json:"progress"` // mean percent complete, 0-100
	ReadyTasks   []string     `json:"ready_tasks,omitempty"`
	BlockedTasks []string     `json:"blocked_tasks,omitempty"`
	TakenAt      time.Time    `json:"taken_at"`
}

// CheckStartGate reports whether the task may start given its dependency
// links. A finish-to-start predecessor must be completed; a start-to-start
// predecessor must at least have started. Finish-to-finish and
// start-to-finish links constrain the finish, not the start, so they never
// block here. A link to a deleted task is treated as satisfied rather than
// blocking forever.
func (p *Project) CheckStartGate(t *Task) error {
	for _, pre := range t.Predecessors {
		dep := p.TaskByID(pre.TaskID)
		if dep == nil {
			continue
		}
		switch pre.Type {
		case FinishToStart:
			if dep.Status != StatusCompleted {
				return &PredecessorError{
					TaskID:        t.ID,
					PredecessorID: dep.ID,
					Status:        string(dep.Status),
				}
			}
		case StartToStart:
			if dep.Status == StatusPending {
				return &PredecessorError{
					TaskID:        t.ID,
					PredecessorID: dep.ID,
					Status:        string(dep.Status),
				}
			}
		}
	}
	return nil
}

// BuildSnapshot derives the read model from the project document.
func BuildSnapshot(p *Project, now time.Time) *Snapshot {
	s := &Snapshot{Project: p, TakenAt: now}

	total := 0.0
	for i := range p.Tasks {
		t := &p.Tasks[i]
		total += t.PercentComplete

		switch t.Status {
		case StatusPending:
			s.Counts.Pending++
			if p.CheckStartGate(t) == nil {
				s.ReadyTasks = append(s.ReadyTasks, t.ID)
			} else {
				s.BlockedTasks = append(s.BlockedTasks, t.ID)
			}
		case StatusInProgress:
			s.Counts.InProgress++
		case StatusCompleted:
			s.Counts.Completed++
		case StatusDelayed:
			s.Counts.Delayed++
		}
	}

	if len(p.Tasks) > 0 {
		s.Progress = total / float64(len(p.Tasks))
	}
	return s
}
