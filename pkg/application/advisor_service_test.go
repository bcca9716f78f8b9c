package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sazyar/sazyar/pkg/application"
	infraAI "github.com/sazyar/sazyar/pkg/ai"
	"github.com/sazyar/sazyar/pkg/domain/project"
)

func advisorFixture(providerResponse string, providerErr error) (*application.AdvisorService, *MockRepo) {
	repo := &MockRepo{Project: seedProject()}
	analytics := application.NewAnalyticsService(repo)
	analytics.SetClock(fixedClock())
	provider := &infraAI.MockProvider{Model: "test", Response: providerResponse, Err: providerErr}
	svc := application.NewAdvisorService(repo, provider, &MockAudit{}, analytics)
	return svc, repo
}

func TestAnalyzeRisk_ValidResponse(t *testing.T) {
	svc, repo := advisorFixture(`{"risk_score": 42, "alerts": [{"type": "delay", "message": "Foundation slipping", "severity": "warning"}]}`, nil)

	got, err := svc.AnalyzeRisk(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeRisk failed: %v", err)
	}
	if got.Score != 42 {
		t.Errorf("expected score 42, got %v", got.Score)
	}
	if got.Degraded {
		t.Error("valid response should not be degraded")
	}
	if repo.Project.RiskScore != 42 {
		t.Errorf("score should be persisted on the project, got %v", repo.Project.RiskScore)
	}
	if len(repo.Project.Alerts) != 1 {
		t.Fatalf("expected 1 persisted alert, got %d", len(repo.Project.Alerts))
	}
	if repo.Project.Alerts[0].ID == "" || repo.Project.Alerts[0].Date == "" {
		t.Error("persisted alerts should get an ID and date")
	}
}

func TestAnalyzeRisk_MarkdownFencedResponse(t *testing.T) {
	svc, _ := advisorFixture("```json\n{\"risk_score\": 10}\n```", nil)

	got, err := svc.AnalyzeRisk(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeRisk failed: %v", err)
	}
	if got.Score != 10 || got.Degraded {
		t.Errorf("fenced JSON should parse cleanly, got score %v degraded %v", got.Score, got.Degraded)
	}
}

func TestAnalyzeRisk_ProviderFailureDegrades(t *testing.T) {
	svc, repo := advisorFixture("", errors.New("upstream down"))

	got, err := svc.AnalyzeRisk(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeRisk should degrade, not fail: %v", err)
	}
	if !got.Degraded {
		t.Error("expected degraded assessment")
	}
	if got.Score != 70 {
		t.Errorf("expected fallback score 70, got %v", got.Score)
	}
	if len(repo.Project.Alerts) != 1 || repo.Project.Alerts[0].Severity != project.SeverityWarning {
		t.Errorf("expected one warning alert, got %v", repo.Project.Alerts)
	}
}

func TestAnalyzeRisk_InvalidJSONDegrades(t *testing.T) {
	svc, _ := advisorFixture("The project looks risky, maybe 80 out of 100.", nil)

	got, err := svc.AnalyzeRisk(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeRisk should degrade, not fail: %v", err)
	}
	if !got.Degraded || got.Score != 70 {
		t.Errorf("prose response should degrade to fallback, got %+v", got)
	}
}

func TestAnalyzeRisk_OutOfRangeScoreDegrades(t *testing.T) {
	svc, _ := advisorFixture(`{"risk_score": 400}`, nil)

	got, err := svc.AnalyzeRisk(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeRisk failed: %v", err)
	}
	if !got.Degraded {
		t.Error("score outside 0-100 should fail schema validation and degrade")
	}
}

func TestAnalyzeRisk_NoProject(t *testing.T) {
	repo := &MockRepo{}
	analytics := application.NewAnalyticsService(repo)
	svc := application.NewAdvisorService(repo, &infraAI.MockProvider{}, &MockAudit{}, analytics)

	_, err := svc.AnalyzeRisk(context.Background())
	if !errors.Is(err, project.ErrNoProject) {
		t.Errorf("expected ErrNoProject, got %v", err)
	}
}

func TestSimulateScenario(t *testing.T) {
	svc, _ := advisorFixture(`{"summary": "Two week delay to foundation", "cost_delta": 50000, "time_delta_days": 14}`, nil)

	got, err := svc.SimulateScenario(context.Background(), "concrete delivery delayed two weeks")
	if err != nil {
		t.Fatalf("SimulateScenario failed: %v", err)
	}
	if got.CostDelta != 50000 || got.TimeDeltaDays != 14 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestSimulateScenario_EmptyDescription(t *testing.T) {
	svc, _ := advisorFixture(`{"summary": "x"}`, nil)
	if _, err := svc.SimulateScenario(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty scenario")
	}
}

func TestSimulateScenario_ProviderFailureIsAnError(t *testing.T) {
	svc, _ := advisorFixture("", errors.New("upstream down"))
	if _, err := svc.SimulateScenario(context.Background(), "double the crew"); err == nil {
		t.Fatal("simulation should fail when the provider is down")
	}
}

func TestSimulateScenario_ImplausibleTimeDeltaDiscarded(t *testing.T) {
	svc, _ := advisorFixture(`{"summary": "chaos", "time_delta_days": 9000000}`, nil)

	got, err := svc.SimulateScenario(context.Background(), "what if everything slips")
	if err != nil {
		t.Fatalf("SimulateScenario failed: %v", err)
	}
	if got.TimeDeltaDays != 0 {
		t.Errorf("implausible delta should be discarded, got %d", got.TimeDeltaDays)
	}
	if len(got.Warnings) == 0 {
		t.Error("expected a warning about the discarded estimate")
	}
}
