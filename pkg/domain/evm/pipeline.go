package evm

import (
	"fmt"
	"time"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

// Analyze runs the full pipeline over a project snapshot: per-task cost
// resolution, project aggregation, and the S-curve time series. "now" must be
// supplied by the caller so the result is a pure function of its inputs.
//
// The returned report is always complete. Data-quality problems never abort
// the run; they are collected as Anomalies alongside the numeric results.
func Analyze(p project.Project, now time.Time) Report {
	idx := NewResourceIndex(p.Resources)

	tasks := make([]TaskAnalysis, len(p.Tasks))
	var anomalies []Anomaly
	for i, t := range p.Tasks {
		tasks[i] = ResolveTask(idx, t)
		anomalies = append(anomalies, inspectTask(idx, tasks[i])...)
	}

	return Report{
		Tasks:       tasks,
		Summary:     Aggregate(tasks),
		Curve:       BuildCurve(tasks, now),
		Anomalies:   anomalies,
		GeneratedAt: now,
	}
}

// inspectTask reports the data-quality problems the resolver and curve
// builder silently degraded around.
func inspectTask(idx ResourceIndex, a TaskAnalysis) []Anomaly {
	var out []Anomaly
	t := a.Task

	for _, assignment := range t.Resources {
		if _, ok := idx[assignment.ResourceID]; !ok {
			out = append(out, Anomaly{
				Kind:   AnomalyMissingResource,
				TaskID: t.ID,
				Detail: fmt.Sprintf("assignment references missing resource %s; contributed 0 cost", assignment.ResourceID),
			})
		}
	}

	if a.AC > 0 && (a.CPI <= 0.1 || a.CPI >= 3) {
		out = append(out, Anomaly{
			Kind:   AnomalyCPIOutOfRange,
			TaskID: t.ID,
			Detail: fmt.Sprintf("CPI %.3f outside (0.1, 3); forecast assumed CPI 1", a.CPI),
		})
	}

	start, startErr := time.Parse(project.DateLayout, t.StartDate)
	end, endErr := time.Parse(project.DateLayout, t.FinishDate)
	if startErr != nil {
		out = append(out, Anomaly{
			Kind:   AnomalyBadDate,
			TaskID: t.ID,
			Detail: fmt.Sprintf("unparseable start date %q; treated as now", t.StartDate),
		})
	}
	if endErr != nil {
		out = append(out, Anomaly{
			Kind:   AnomalyBadDate,
			TaskID: t.ID,
			Detail: fmt.Sprintf("unparseable finish date %q; treated as now", t.FinishDate),
		})
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		out = append(out, Anomaly{
			Kind:   AnomalyNegativeDuration,
			TaskID: t.ID,
			Detail: fmt.Sprintf("finish %s precedes start %s", t.FinishDate, t.StartDate),
		})
	}

	return out
}
