package evm

import (
	"github.com/sazyar/sazyar/pkg/domain/project"
)

// ResourceIndex maps resource IDs to their records so that cost resolution
// is a lookup instead of a scan per assignment.
type ResourceIndex map[string]project.Resource

// NewResourceIndex builds an index over the resource pool. Later duplicates
// of an ID win, matching last-write semantics of the editor.
func NewResourceIndex(resources []project.Resource) ResourceIndex {
	idx := make(ResourceIndex, len(resources))
	for _, r := range resources {
		idx[r.ID] = r
	}
	return idx
}

// RateFor returns the cost rate for a resource ID. A missing resource yields
// rate 0: deleting a resource never invalidates the tasks that reference it.
func (idx ResourceIndex) RateFor(id string) (float64, bool) {
	r, ok := idx[id]
	if !ok {
		return 0, false
	}
	return r.CostRate, true
}

// forecastCPI substitutes 1 for a CPI outside (0.1, 3). A CPI that extreme is
// treated as a data anomaly rather than a real efficiency signal, so the
// ETC/EAC forecast assumes on-budget instead. The true CPI is still reported.
func forecastCPI(cpi float64) float64 {
	if cpi > 0.1 && cpi < 3 {
		return cpi
	}
	return 1
}

// ResolveTask computes the earned-value figures for a single task against the
// resource index. It never fails: missing resources contribute zero cost, a
// task without cost data gets CPI 1, and every input produces a number.
//
// PercentComplete is used as stored, without clamping. The editing layer is
// responsible for keeping it in [0,100]; an out-of-range value flows through
// and produces an EV outside [0, BAC].
func ResolveTask(idx ResourceIndex, t project.Task) TaskAnalysis {
	var resourceCost float64
	for _, assignment := range t.Resources {
		rate, _ := idx.RateFor(assignment.ResourceID)
		resourceCost += rate * assignment.Quantity
	}

	// Manual fixed cost takes precedence over the resource-derived budget.
	bac := resourceCost
	if t.FixedCost != nil {
		bac = *t.FixedCost
	}

	ev := bac * (t.PercentComplete / 100)
	ac := t.ActualCost

	cpi := 1.0
	if ac > 0 {
		cpi = ev / ac
	}

	etc := (bac - ev) / forecastCPI(cpi)
	eac := ac + etc

	return TaskAnalysis{
		Task: t,
		BAC:  bac,
		EV:   ev,
		AC:   ac,
		CPI:  cpi,
		ETC:  etc,
		EAC:  eac,
		VAC:  bac - eac,
	}
}

// ResolveTasks resolves every task in order against a shared resource index.
func ResolveTasks(resources []project.Resource, tasks []project.Task) []TaskAnalysis {
	idx := NewResourceIndex(resources)
	resolved := make([]TaskAnalysis, len(tasks))
	for i, t := range tasks {
		resolved[i] = ResolveTask(idx, t)
	}
	return resolved
}
