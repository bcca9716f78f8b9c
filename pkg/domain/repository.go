package domain

import (
	"github.com/sazyar/sazyar/pkg/domain/project"
)

// ProjectRepository handles the persistence of sazyar artifacts in the .sazyar/ directory.
type ProjectRepository interface {
	Initialize() error
	IsInitialized() bool
	SaveProject(p *project.Project) error
	LoadProject() (*project.Project, error)
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
}
