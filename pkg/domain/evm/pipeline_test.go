package evm

import (
	"reflect"
	"testing"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

func TestAnalyze_EmptyProject(t *testing.T) {
	report := Analyze(project.Project{Name: "empty"}, date("2024-01-01"))

	if len(report.Tasks) != 0 {
		t.Errorf("expected no task analyses, got %d", len(report.Tasks))
	}
	if report.Summary.TotalBAC != 0 || report.Summary.TotalEV != 0 || report.Summary.TotalAC != 0 {
		t.Errorf("expected zero totals, got %+v", report.Summary)
	}
	if report.Summary.CPI != 1 {
		t.Errorf("expected CPI 1 for empty project, got %v", report.Summary.CPI)
	}
	if len(report.Curve) != 0 {
		t.Errorf("expected empty curve, got %d points", len(report.Curve))
	}
	if len(report.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %v", report.Anomalies)
	}
}

func TestAnalyze_CollectsAnomalies(t *testing.T) {
	proj := project.Project{
		Resources: []project.Resource{{ID: "r1", CostRate: 100}},
		Tasks: []project.Task{
			{
				ID:         "missing-ref",
				StartDate:  "2024-01-01",
				FinishDate: "2024-01-10",
				Resources:  []project.ResourceAssignment{{ResourceID: "ghost", Quantity: 2}},
			},
			{
				ID:              "wild-cpi",
				StartDate:       "2024-01-01",
				FinishDate:      "2024-01-10",
				FixedCost:       fixed(10000),
				PercentComplete: 100,
				ActualCost:      10,
			},
			{
				ID:         "backwards",
				StartDate:  "2024-02-01",
				FinishDate: "2024-01-01",
				FixedCost:  fixed(100),
			},
			{
				ID:         "bad-date",
				StartDate:  "whenever",
				FinishDate: "2024-01-10",
				FixedCost:  fixed(100),
			},
		},
	}

	report := Analyze(proj, date("2024-01-15"))

	kinds := map[AnomalyKind][]string{}
	for _, a := range report.Anomalies {
		kinds[a.Kind] = append(kinds[a.Kind], a.TaskID)
	}

	if got := kinds[AnomalyMissingResource]; len(got) != 1 || got[0] != "missing-ref" {
		t.Errorf("missing resource anomaly: got %v", got)
	}
	if got := kinds[AnomalyCPIOutOfRange]; len(got) != 1 || got[0] != "wild-cpi" {
		t.Errorf("CPI anomaly: got %v", got)
	}
	if got := kinds[AnomalyNegativeDuration]; len(got) != 1 || got[0] != "backwards" {
		t.Errorf("negative duration anomaly: got %v", got)
	}
	if got := kinds[AnomalyBadDate]; len(got) != 1 || got[0] != "bad-date" {
		t.Errorf("bad date anomaly: got %v", got)
	}

	// Anomalies never change the numeric contract: every task still resolved.
	if len(report.Tasks) != 4 {
		t.Errorf("expected all 4 tasks resolved despite anomalies, got %d", len(report.Tasks))
	}
	if len(report.Curve) != 51 {
		t.Errorf("expected full curve despite anomalies, got %d points", len(report.Curve))
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	proj := project.Project{
		Resources: []project.Resource{{ID: "r1", CostRate: 75000}},
		Tasks: []project.Task{
			{
				ID:              "t1",
				StartDate:       "2024-01-01",
				FinishDate:      "2024-01-31",
				Status:          project.StatusInProgress,
				PercentComplete: 40,
				ActualCost:      250000,
				Resources:       []project.ResourceAssignment{{ResourceID: "r1", Quantity: 10}},
			},
		},
	}
	now := date("2024-01-20")

	first := Analyze(proj, now)
	second := Analyze(proj, now)

	if !reflect.DeepEqual(first.Summary, second.Summary) {
		t.Error("repeated analysis of the same snapshot produced different summaries")
	}
	if len(first.Curve) != len(second.Curve) {
		t.Fatal("repeated analysis produced different curve lengths")
	}
	for i := range first.Curve {
		if first.Curve[i].PV != second.Curve[i].PV {
			t.Errorf("sample %d: PV differs between runs", i)
		}
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	proj := project.Project{
		Resources: []project.Resource{{ID: "r1", CostRate: 100}},
		Tasks: []project.Task{
			{ID: "t1", StartDate: "2024-01-01", FinishDate: "2024-01-10", PercentComplete: 50,
				Resources: []project.ResourceAssignment{{ResourceID: "r1", Quantity: 5}}},
		},
	}
	before := proj.Tasks[0]

	Analyze(proj, date("2024-01-05"))

	if !reflect.DeepEqual(before, proj.Tasks[0]) {
		t.Error("analysis mutated the input snapshot")
	}
}
