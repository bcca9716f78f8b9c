package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sazyar/sazyar/pkg/domain"
	"github.com/sazyar/sazyar/pkg/domain/project"
	"github.com/sazyar/sazyar/pkg/domain/schedule"
)

// ProjectService owns all edits to the project document. Every mutation goes
// through the repository and leaves an audit event.
type ProjectService struct {
	repo  domain.ProjectRepository
	audit domain.AuditLogger
	now   func() time.Time
}

func NewProjectService(repo domain.ProjectRepository, audit domain.AuditLogger) *ProjectService {
	return &ProjectService{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// SetClock overrides the wall clock. Used in tests.
func (s *ProjectService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// InitProject creates a fresh project document in an initialized workspace.
func (s *ProjectService) InitProject(name string, details project.Details) (*project.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}
	if err := s.repo.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize workspace: %w", err)
	}

	p := &project.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Details:   details,
		Tasks:     []project.Task{},
		Resources: []project.Resource{},
	}
	if err := s.repo.SaveProject(p); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}

	_ = s.audit.Log("project.init", "human", map[string]interface{}{
		"project_id": p.ID,
		"name":       name,
	})
	return p, nil
}

func (s *ProjectService) Load() (*project.Project, error) {
	p, err := s.repo.LoadProject()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, project.ErrNoProject
	}
	return p, nil
}

// UpdateDetails replaces the contractual and physical description.
func (s *ProjectService) UpdateDetails(details project.Details) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	p.Details = details
	if err := s.repo.SaveProject(p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return s.audit.Log("project.update", "human", nil)
}

// AddTask appends a new pending task. The finish date is derived from the
// start date and duration.
func (s *ProjectService) AddTask(title, startDate string, duration int) (*project.Task, error) {
	p, err := s.Load()
	if err != nil {
		return nil, err
	}

	t, err := project.NewTask(uuid.New().String(), title, startDate, duration)
	if err != nil {
		return nil, err
	}
	p.Tasks = append(p.Tasks, t)

	if err := s.repo.SaveProject(p); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	_ = s.audit.Log("task.create", "human", map[string]interface{}{
		"task_id": t.ID,
		"title":   title,
	})
	return &t, nil
}

// UpdateTask applies an edit function to a task and persists the result.
// Date and duration edits must go through Task.Reschedule inside the closure
// so the finish date stays derived.
func (s *ProjectService) UpdateTask(taskID string, edit func(*project.Task) error) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	t := p.TaskByID(taskID)
	if t == nil {
		return &project.NotFoundError{Kind: "task", ID: taskID}
	}
	if err := edit(t); err != nil {
		return err
	}
	if err := s.repo.SaveProject(p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return s.audit.Log("task.update", "human", map[string]interface{}{
		"task_id": taskID,
	})
}

// RescheduleTask moves a task's planned window.
func (s *ProjectService) RescheduleTask(taskID, startDate string, duration int) error {
	return s.UpdateTask(taskID, func(t *project.Task) error {
		return t.Reschedule(startDate, duration)
	})
}

// SetTaskProgress records percent complete (clamped to 0-100).
func (s *ProjectService) SetTaskProgress(taskID string, percent float64) error {
	return s.UpdateTask(taskID, func(t *project.Task) error {
		t.SetProgress(percent)
		return nil
	})
}

// SetTaskActualCost records cost spent so far on the task.
func (s *ProjectService) SetTaskActualCost(taskID string, cost float64) error {
	if cost < 0 {
		return fmt.Errorf("actual cost must be >= 0")
	}
	return s.UpdateTask(taskID, func(t *project.Task) error {
		t.ActualCost = cost
		return nil
	})
}

// SetTaskFixedCost sets or clears the manual budget override. Passing nil
// restores the resource-derived budget.
func (s *ProjectService) SetTaskFixedCost(taskID string, cost *float64) error {
	return s.UpdateTask(taskID, func(t *project.Task) error {
		if cost != nil && *cost < 0 {
			return fmt.Errorf("fixed cost must be >= 0")
		}
		t.FixedCost = cost
		return nil
	})
}

// AddPredecessor links a task to one it depends on.
func (s *ProjectService) AddPredecessor(taskID, predecessorID string, linkType project.PredecessorType, lag int) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	t := p.TaskByID(taskID)
	if t == nil {
		return &project.NotFoundError{Kind: "task", ID: taskID}
	}
	if p.TaskByID(predecessorID) == nil {
		return &project.NotFoundError{Kind: "task", ID: predecessorID}
	}
	if taskID == predecessorID {
		return fmt.Errorf("task cannot depend on itself")
	}
	for _, pre := range t.Predecessors {
		if pre.TaskID == predecessorID {
			return fmt.Errorf("predecessor %s already linked", predecessorID)
		}
	}
	if linkType == "" {
		linkType = project.FinishToStart
	}
	g := schedule.NewDependencyGraph(p.Tasks)
	g.AddEdge(taskID, predecessorID)
	if g.HasCycle() {
		return fmt.Errorf("link %s -> %s: %w", predecessorID, taskID, schedule.ErrCyclicDependency)
	}
	t.Predecessors = append(t.Predecessors, project.Predecessor{
		TaskID: predecessorID,
		Type:   linkType,
		Lag:    lag,
	})
	if err := s.repo.SaveProject(p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return s.audit.Log("task.link", "human", map[string]interface{}{
		"task_id":     taskID,
		"predecessor": predecessorID,
		"type":        string(linkType),
	})
}

// RemovePredecessor removes a dependency link from a task.
func (s *ProjectService) RemovePredecessor(taskID, predecessorID string) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	t := p.TaskByID(taskID)
	if t == nil {
		return &project.NotFoundError{Kind: "task", ID: taskID}
	}
	kept := t.Predecessors[:0]
	found := false
	for _, pre := range t.Predecessors {
		if pre.TaskID == predecessorID {
			found = true
			continue
		}
		kept = append(kept, pre)
	}
	if !found {
		return fmt.Errorf("no link from %s to %s", taskID, predecessorID)
	}
	t.Predecessors = kept
	if err := s.repo.SaveProject(p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return s.audit.Log("task.unlink", "human", map[string]interface{}{
		"task_id":     taskID,
		"predecessor": predecessorID,
	})
}

// RemoveTask deletes a task and strips it from other tasks' predecessor lists.
func (s *ProjectService) RemoveTask(taskID string) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	if err := p.RemoveTask(taskID); err != nil {
		return err
	}
	for i := range p.Tasks {
		t := &p.Tasks[i]
		kept := t.Predecessors[:0]
		for _, pre := range t.Predecessors {
			if pre.TaskID != taskID {
				kept = append(kept, pre)
			}
		}
		t.Predecessors = kept
	}
	if err := s.repo.SaveProject(p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return s.audit.Log("task.delete", "human", map[string]interface{}{
		"task_id": taskID,
	})
}

// TransitionTask applies a lifecycle event (start, complete, delay, resume,
// stop, reopen) to a task. Starting a task is refused while its
// finish-to-start predecessors are incomplete.
func (s *ProjectService) TransitionTask(taskID, event, actor string) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	t := p.TaskByID(taskID)
	if t == nil {
		return &project.NotFoundError{Kind: "task", ID: taskID}
	}

	if event == "start" {
		if err := predecessorsMet(p, t); err != nil {
			return err
		}
	}

	sm, err := project.NewTaskStateMachine(string(t.Status), t.ID, nil)
	if err != nil {
		return err
	}
	if err := sm.Transition(event); err != nil {
		return &project.TransitionError{TaskID: t.ID, TaskStatus: t.Status, Event: event}
	}
	t.Status = sm.CurrentStatus()
	s.applyTransitionEffects(t, event)

	if err := s.repo.SaveProject(p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	if actor == "" {
		actor = "human"
	}
	return s.audit.Log("task.transition", actor, map[string]interface{}{
		"task_id": taskID,
		"event":   event,
		"status":  string(t.Status),
	})
}

// applyTransitionEffects keeps actual dates and progress consistent with the
// lifecycle.
func (s *ProjectService) applyTransitionEffects(t *project.Task, event string) {
	today := s.now().Format(project.DateLayout)
	switch event {
	case "start", "resume":
		if t.ActualStart == "" {
			t.ActualStart = today
		}
		t.ActualFinish = ""
	case "complete":
		t.PercentComplete = 100
		if t.ActualStart == "" {
			t.ActualStart = today
		}
		t.ActualFinish = today
	case "reopen":
		t.ActualFinish = ""
		if t.PercentComplete >= 100 {
			t.PercentComplete = 99
		}
	case "stop":
		t.ActualStart = ""
		t.ActualFinish = ""
		t.PercentComplete = 0
	}
}

// predecessorsMet checks the start-gating dependency links.
func predecessorsMet(p *project.Project, t *project.Task) error {
	return p.CheckStartGate(t)
}

// AddResource registers a cost-rate resource in the project pool.
func (s *ProjectService) AddResource(name string, rtype project.ResourceType, unit string, costRate float64) (*project.Resource, error) {
	p, err := s.Load()
	if err != nil {
		return nil, err
	}
	r, err := project.NewResource(uuid.New().String(), name, rtype, unit, costRate)
	if err != nil {
		return nil, err
	}
	p.Resources = append(p.Resources, r)
	if err := s.repo.SaveProject(p); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	_ = s.audit.Log("resource.create", "human", map[string]interface{}{
		"resource_id": r.ID,
		"name":        name,
	})
	return &r, nil
}

// UpdateResourceRate changes a resource's unit cost.
func (s *ProjectService) UpdateResourceRate(resourceID string, costRate float64) error {
	if costRate < 0 {
		return fmt.Errorf("cost rate must be >= 0")
	}
	p, err := s.Load()
	if err != nil {
		return err
	}
	r := p.ResourceByID(resourceID)
	if r == nil {
		return &project.NotFoundError{Kind: "resource", ID: resourceID}
	}
	r.CostRate = costRate
	if err := s.repo.SaveProject(p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return s.audit.Log("resource.update", "human", map[string]interface{}{
		"resource_id": resourceID,
	})
}

// RemoveResource deletes a resource from the pool. Assignments that still
// reference it are kept; cost resolution values them at zero.
func (s *ProjectService) RemoveResource(resourceID string) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	if err := p.RemoveResource(resourceID); err != nil {
		return err
	}
	if err := s.repo.SaveProject(p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return s.audit.Log("resource.delete", "human", map[string]interface{}{
		"resource_id": resourceID,
	})
}

// AssignResource attaches a resource to a task with a planned quantity.
// Assigning an already-assigned resource replaces the quantity.
func (s *ProjectService) AssignResource(taskID, resourceID string, quantity float64) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must be >= 0")
	}
	p, err := s.Load()
	if err != nil {
		return err
	}
	t := p.TaskByID(taskID)
	if t == nil {
		return &project.NotFoundError{Kind: "task", ID: taskID}
	}
	if p.ResourceByID(resourceID) == nil {
		return &project.NotFoundError{Kind: "resource", ID: resourceID}
	}

	replaced := false
	for i := range t.Resources {
		if t.Resources[i].ResourceID == resourceID {
			t.Resources[i].Quantity = quantity
			replaced = true
			break
		}
	}
	if !replaced {
		t.Resources = append(t.Resources, project.ResourceAssignment{
			ResourceID: resourceID,
			Quantity:   quantity,
		})
	}

	if err := s.repo.SaveProject(p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return s.audit.Log("task.assign", "human", map[string]interface{}{
		"task_id":     taskID,
		"resource_id": resourceID,
		"quantity":    quantity,
	})
}
