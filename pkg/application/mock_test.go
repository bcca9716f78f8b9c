package application_test

import (
	"github.com/sazyar/sazyar/pkg/domain"
	"github.com/sazyar/sazyar/pkg/domain/project"
)

type MockRepo struct {
	Project     *project.Project
	Events      []domain.Event
	Initialized bool
	SaveError   error
	LoadError   error
}

func (m *MockRepo) Initialize() error   { m.Initialized = true; return nil }
func (m *MockRepo) IsInitialized() bool { return m.Initialized }
func (m *MockRepo) SaveProject(p *project.Project) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Project = p
	return nil
}
func (m *MockRepo) LoadProject() (*project.Project, error) { return m.Project, m.LoadError }
func (m *MockRepo) RecordEvent(e domain.Event) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Events = append(m.Events, e)
	return nil
}
func (m *MockRepo) LoadEvents() ([]domain.Event, error) { return m.Events, m.LoadError }

type MockAudit struct {
	Actions []string
}

func (m *MockAudit) Log(action string, actor string, metadata map[string]interface{}) error {
	m.Actions = append(m.Actions, action)
	return nil
}
