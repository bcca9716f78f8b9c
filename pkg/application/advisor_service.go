package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/sazyar/sazyar/pkg/domain"
	"github.com/sazyar/sazyar/pkg/domain/ai"
	"github.com/sazyar/sazyar/pkg/domain/project"
)

// AdvisorService asks the AI provider for risk assessments and what-if
// scenarios over the current project. Provider output is schema-validated;
// when the provider fails or returns garbage the service degrades to a
// conservative default instead of failing the caller.
type AdvisorService struct {
	repo      domain.ProjectRepository
	provider  ai.Provider
	audit     domain.AuditLogger
	analytics *AnalyticsService
}

const riskSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["risk_score"],
  "properties": {
    "risk_score": { "type": "number", "minimum": 0, "maximum": 100 },
    "alerts": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["message"],
        "properties": {
          "type": { "type": "string" },
          "message": { "type": "string" },
          "severity": { "type": "string" }
        }
      }
    }
  }
}`

const scenarioSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["summary"],
  "properties": {
    "summary": { "type": "string" },
    "cost_delta": { "type": "number" },
    "time_delta_days": { "type": "number" },
    "warnings": { "type": "array", "items": { "type": "string" } }
  }
}`

var (
	riskSchemaLoader     = gojsonschema.NewStringLoader(riskSchemaJSON)
	scenarioSchemaLoader = gojsonschema.NewStringLoader(scenarioSchemaJSON)
)

// fallbackRiskScore is reported when the advisor cannot produce a valid
// assessment. Deliberately pessimistic so a broken advisor is noticed.
const fallbackRiskScore = 70

func NewAdvisorService(repo domain.ProjectRepository, provider ai.Provider, audit domain.AuditLogger, analytics *AnalyticsService) *AdvisorService {
	return &AdvisorService{repo: repo, provider: provider, audit: audit, analytics: analytics}
}

// RiskAssessment is the advisor's verdict on the project's health.
type RiskAssessment struct {
	Score    float64         `json:"risk_score"`
	Alerts   []project.Alert `json:"alerts"`
	Model    string          `json:"model,omitempty"`
	Degraded bool            `json:"degraded,omitempty"`
}

// ScenarioResult is the advisor's answer to a what-if question.
type ScenarioResult struct {
	Summary       string   `json:"summary"`
	CostDelta     float64  `json:"cost_delta"`
	TimeDeltaDays int      `json:"time_delta_days"`
	Warnings      []string `json:"warnings,omitempty"`
}

// AnalyzeRisk asks the provider for a risk score and alerts, and persists
// them on the project document.
func (s *AdvisorService) AnalyzeRisk(ctx context.Context) (*RiskAssessment, error) {
	p, err := s.repo.LoadProject()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, project.ErrNoProject
	}

	report, err := s.analytics.Analyze()
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Assess the schedule and cost risk of this construction project.\n"+
			"Project: %s\nTasks: %d (completed %d, delayed %d)\n"+
			"Budget at completion: %.2f\nEarned value: %.2f\nActual cost: %.2f\nCPI: %.3f\n"+
			"Estimate at completion: %.2f\nVariance at completion: %.2f\n\n"+
			"Respond with JSON only: {\"risk_score\": 0-100, \"alerts\": [{\"type\": \"delay|cost|risk|opportunity\", \"message\": \"...\", \"severity\": \"info|warning|critical\"}]}",
		p.Name, len(p.Tasks), countStatus(p.Tasks, project.StatusCompleted), countStatus(p.Tasks, project.StatusDelayed),
		report.Summary.TotalBAC, report.Summary.TotalEV, report.Summary.TotalAC, report.Summary.CPI,
		report.Summary.EAC, report.Summary.VAC)

	assessment := s.requestRisk(ctx, prompt)

	today := time.Now().Format(project.DateLayout)
	p.RiskScore = assessment.Score
	p.Alerts = make([]project.Alert, 0, len(assessment.Alerts))
	for _, a := range assessment.Alerts {
		a.ID = uuid.New().String()
		a.Date = today
		if a.Type == "" {
			a.Type = "risk"
		}
		if a.Severity == "" {
			a.Severity = project.SeverityWarning
		}
		p.Alerts = append(p.Alerts, a)
	}

	if err := s.repo.SaveProject(p); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}

	_ = s.audit.Log("advisor.risk", "ai", map[string]interface{}{
		"risk_score": assessment.Score,
		"alerts":     len(assessment.Alerts),
		"degraded":   assessment.Degraded,
		"model":      assessment.Model,
	})
	return assessment, nil
}

// requestRisk calls the provider and parses the response, falling back to a
// conservative default when anything goes wrong.
func (s *AdvisorService) requestRisk(ctx context.Context, prompt string) *RiskAssessment {
	degraded := func(reason string) *RiskAssessment {
		return &RiskAssessment{
			Score:    fallbackRiskScore,
			Degraded: true,
			Alerts: []project.Alert{{
				Type:     "risk",
				Message:  "Automated risk assessment unavailable: " + reason,
				Severity: project.SeverityWarning,
			}},
		}
	}

	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Prompt: prompt,
		System: "You are a construction project management advisor. Answer with valid JSON only.",
	})
	if err != nil {
		return degraded(err.Error())
	}

	payload := extractJSONPayload(resp.Text)
	if payload == "" {
		return degraded("empty response")
	}

	result, err := gojsonschema.Validate(riskSchemaLoader, gojsonschema.NewStringLoader(payload))
	if err != nil || !result.Valid() {
		return degraded("response did not match expected shape")
	}

	var parsed struct {
		RiskScore float64 `json:"risk_score"`
		Alerts    []struct {
			Type     string `json:"type"`
			Message  string `json:"message"`
			Severity string `json:"severity"`
		} `json:"alerts"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return degraded("response was not valid JSON")
	}

	assessment := &RiskAssessment{Score: parsed.RiskScore, Model: resp.Model}
	for _, a := range parsed.Alerts {
		assessment.Alerts = append(assessment.Alerts, project.Alert{
			Type:     a.Type,
			Message:  a.Message,
			Severity: project.AlertSeverity(a.Severity),
		})
	}
	return assessment
}

// SimulateScenario asks the provider what a described change would do to the
// schedule and budget. Unlike AnalyzeRisk this returns an error on provider
// failure; a fabricated simulation would be worse than none.
func (s *AdvisorService) SimulateScenario(ctx context.Context, description string) (*ScenarioResult, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("scenario description must not be empty")
	}

	p, err := s.repo.LoadProject()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, project.ErrNoProject
	}

	report, err := s.analytics.Analyze()
	if err != nil {
		return nil, err
	}

	plannedDays := 0
	if n := len(report.Curve); n > 1 {
		plannedDays = int(report.Curve[n-1].Time.Sub(report.Curve[0].Time).Hours() / 24)
	}
	prompt := fmt.Sprintf(
		"Project %q has %d tasks, budget at completion %.2f and CPI %.3f.\n"+
			"Scenario: %s\n\n"+
			"Estimate the impact. Respond with JSON only: "+
			"{\"summary\": \"...\", \"cost_delta\": number, \"time_delta_days\": number, \"warnings\": [\"...\"]}",
		p.Name, len(p.Tasks), report.Summary.TotalBAC, report.Summary.CPI, description)

	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Prompt: prompt,
		System: "You are a construction project management advisor. Answer with valid JSON only.",
	})
	if err != nil {
		return nil, fmt.Errorf("advisor unavailable: %w", err)
	}

	payload := extractJSONPayload(resp.Text)
	result, schemaErr := gojsonschema.Validate(scenarioSchemaLoader, gojsonschema.NewStringLoader(payload))
	if schemaErr != nil || !result.Valid() {
		return nil, fmt.Errorf("advisor returned an unusable response")
	}

	var parsed ScenarioResult
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("advisor returned invalid JSON: %w", err)
	}

	// Sanity bound on the time estimate. A delta longer than ten project
	// lifetimes is noise, not a forecast.
	if plannedDays > 0 && abs(parsed.TimeDeltaDays) > plannedDays*10 {
		parsed.Warnings = append(parsed.Warnings,
			fmt.Sprintf("discarded implausible time estimate of %d days", parsed.TimeDeltaDays))
		parsed.TimeDeltaDays = 0
	}

	_ = s.audit.Log("advisor.simulate", "ai", map[string]interface{}{
		"scenario":        description,
		"cost_delta":      parsed.CostDelta,
		"time_delta_days": parsed.TimeDeltaDays,
	})
	return &parsed, nil
}

func countStatus(tasks []project.Task, status project.TaskStatus) int {
	n := 0
	for _, t := range tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// extractJSONPayload strips markdown fences and surrounding prose from a
// model response, returning the first JSON object or array.
func extractJSONPayload(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return clean
	}

	startArray := strings.Index(clean, "[")
	startObject := strings.Index(clean, "{")
	start := -1
	if startArray == -1 {
		start = startObject
	} else if startObject == -1 || startArray < startObject {
		start = startArray
	} else {
		start = startObject
	}
	if start == -1 {
		return ""
	}

	endArray := strings.LastIndex(clean, "]")
	endObject := strings.LastIndex(clean, "}")
	end := endArray
	if endObject > end {
		end = endObject
	}
	if end <= start {
		return ""
	}
	return clean[start : end+1]
}
