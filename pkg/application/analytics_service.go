package application

import (
	"time"

	"github.com/sazyar/sazyar/pkg/domain"
	"github.com/sazyar/sazyar/pkg/domain/evm"
	"github.com/sazyar/sazyar/pkg/domain/project"
	"github.com/sazyar/sazyar/pkg/domain/schedule"
)

// AnalyticsService computes earned-value reports and schedule views over the
// current project. All analysis is pure; the only ambient input is the clock,
// which is injectable for reproducible reports.
type AnalyticsService struct {
	repo  domain.ProjectRepository
	clock func() time.Time
}

func NewAnalyticsService(repo domain.ProjectRepository) *AnalyticsService {
	return &AnalyticsService{
		repo:  repo,
		clock: time.Now,
	}
}

// SetClock overrides the wall clock. Used in tests and for as-of reporting.
func (s *AnalyticsService) SetClock(clock func() time.Time) {
	if clock != nil {
		s.clock = clock
	}
}

// Analyze runs the full earned-value pipeline: per-task cost resolution,
// portfolio aggregation, and the S-curve.
func (s *AnalyticsService) Analyze() (*evm.Report, error) {
	p, err := s.repo.LoadProject()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, project.ErrNoProject
	}

	report := evm.Analyze(*p, s.clock())
	return &report, nil
}

// AnalyzeAsOf runs the pipeline against a fixed report date.
func (s *AnalyticsService) AnalyzeAsOf(now time.Time) (*evm.Report, error) {
	p, err := s.repo.LoadProject()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, project.ErrNoProject
	}

	report := evm.Analyze(*p, now)
	return &report, nil
}

// TaskAnalysis resolves cost figures for a single task.
func (s *AnalyticsService) TaskAnalysis(taskID string) (*evm.TaskAnalysis, error) {
	p, err := s.repo.LoadProject()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, project.ErrNoProject
	}
	t := p.TaskByID(taskID)
	if t == nil {
		return nil, &project.NotFoundError{Kind: "task", ID: taskID}
	}

	index := evm.NewResourceIndex(p.Resources)
	analysis := evm.ResolveTask(index, *t)
	return &analysis, nil
}

// GanttView builds the bar-chart geometry for the project schedule.
func (s *AnalyticsService) GanttView() (*schedule.Gantt, error) {
	p, err := s.repo.LoadProject()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, project.ErrNoProject
	}

	g := schedule.BuildGantt(p.Tasks, s.clock())
	return &g, nil
}
