// Package evm implements earned-value analysis for a project schedule: it
// resolves per-task budget and forecast figures, aggregates them into project
// totals, and builds the planned/earned/actual S-curve time series.
//
// The package is pure: it reads snapshots of tasks and resources, takes the
// current time as a parameter, performs no I/O, and never returns an error.
// Bad input degrades to a safe numeric default and is reported out-of-band as
// an Anomaly.
package evm

import (
	"time"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

// TaskAnalysis carries the resolved earned-value figures for one task.
type TaskAnalysis struct {
	Task project.Task `json:"task"`

	BAC float64 `json:"bac"` // budget at completion
	EV  float64 `json:"ev"`  // earned value
	AC  float64 `json:"ac"`  // actual cost
	CPI float64 `json:"cpi"` // cost performance index (true value, not the forecast substitute)
	ETC float64 `json:"etc"` // estimate to complete
	EAC float64 `json:"eac"` // estimate at completion
	VAC float64 `json:"vac"` // variance at completion
}

// CostVariance returns EV - AC for this task.
func (a TaskAnalysis) CostVariance() float64 {
	return a.EV - a.AC
}

// OverBudget reports whether the forecast final cost exceeds the budget.
func (a TaskAnalysis) OverBudget() bool {
	return a.VAC < 0
}

// Summary holds project-level earned-value totals.
type Summary struct {
	TotalBAC float64 `json:"total_bac"`
	TotalEV  float64 `json:"total_ev"`
	TotalAC  float64 `json:"total_ac"`
	CV       float64 `json:"cv"`
	CPI      float64 `json:"cpi"`
	EAC      float64 `json:"eac"`
	VAC      float64 `json:"vac"`
}

// CurvePoint is one sample of the S-curve time series. EV and AC are nil for
// samples after "now": no actuals exist yet for future dates.
type CurvePoint struct {
	Index int       `json:"index"`
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
	PV    float64   `json:"pv"`
	EV    *float64  `json:"ev"`
	AC    *float64  `json:"ac"`
}

// AnomalyKind classifies a data-quality finding.
type AnomalyKind string

const (
	// AnomalyMissingResource flags an assignment referencing a resource that
	// no longer exists. The assignment contributed zero cost.
	AnomalyMissingResource AnomalyKind = "missing_resource"
	// AnomalyCPIOutOfRange flags a CPI outside (0.1, 3). The forecast used
	// CPI 1 instead; the displayed CPI keeps the true value.
	AnomalyCPIOutOfRange AnomalyKind = "cpi_out_of_range"
	// AnomalyNegativeDuration flags a task whose finish precedes its start.
	AnomalyNegativeDuration AnomalyKind = "negative_duration"
	// AnomalyBadDate flags an unparseable planned date. The date was treated
	// as "now" (a zero-length span).
	AnomalyBadDate AnomalyKind = "bad_date"
)

// Anomaly records a data-quality problem encountered during analysis. The
// numeric outputs are unaffected; anomalies exist so a caller can surface
// warnings without the core ever throwing.
type Anomaly struct {
	Kind   AnomalyKind `json:"kind"`
	TaskID string      `json:"task_id,omitempty"`
	Detail string      `json:"detail"`
}

// Report bundles the outputs of one full analysis run.
type Report struct {
	Tasks       []TaskAnalysis `json:"tasks"`
	Summary     Summary        `json:"summary"`
	Curve       []CurvePoint   `json:"curve"`
	Anomalies   []Anomaly      `json:"anomalies,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
}
