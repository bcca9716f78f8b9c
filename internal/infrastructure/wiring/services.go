package wiring

import (
	"fmt"

	"github.com/sazyar/sazyar/pkg/ai"
	"github.com/sazyar/sazyar/pkg/application"
	domainai "github.com/sazyar/sazyar/pkg/domain/ai"
)

// AppServices exposes the application layer services wired together with a
// workspace.
type AppServices struct {
	Workspace *Workspace
	Project   *application.ProjectService
	Analytics *application.AnalyticsService
	Report    *application.ReportService
	Advisor   *application.AdvisorService
	Audit     *application.AuditService
	Provider  domainai.Provider
}

// BuildAppServices constructs the workbench of services and AI provider
// wiring for a workspace root. A provider config failure falls back to the
// default Gemini provider; the error is returned alongside working services
// so commands can warn without aborting.
func BuildAppServices(root string) (*AppServices, error) {
	return BuildAppServicesWithProvider(root, LoadAIProvider)
}

// BuildAppServicesWithProvider allows callers to supply a custom AI provider
// resolver.
func BuildAppServicesWithProvider(root string, resolver func(string) (domainai.Provider, error)) (*AppServices, error) {
	workspace := NewWorkspace(root)

	provider, err := resolver(root)
	var loadErr error
	if err != nil {
		loadErr = fmt.Errorf("AI provider config fallback: %w", err)
		fallback, fallbackErr := ai.GetDefaultProvider("gemini", "")
		if fallbackErr != nil {
			return nil, fmt.Errorf("fallback AI provider failed: %w", fallbackErr)
		}
		provider = ai.NewResilientProvider(fallback)
	}

	// Create services in dependency order
	projectSvc := application.NewProjectService(workspace.Repo, workspace.Audit)
	analyticsSvc := application.NewAnalyticsService(workspace.Repo)
	reportSvc := application.NewReportService(analyticsSvc)
	advisorSvc := application.NewAdvisorService(workspace.Repo, provider, workspace.Audit, analyticsSvc)

	services := &AppServices{
		Workspace: workspace,
		Project:   projectSvc,
		Analytics: analyticsSvc,
		Report:    reportSvc,
		Advisor:   advisorSvc,
		Audit:     workspace.Audit,
		Provider:  provider,
	}

	return services, loadErr
}
