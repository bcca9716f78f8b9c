package schedule

import (
	"errors"
	"sort"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

// ErrCyclicDependency indicates a cycle in the task dependency links.
var ErrCyclicDependency = errors.New("cyclic dependency between tasks")

// DependencyGraph is the task dependency structure derived from predecessor
// links. Edges point from a task to the tasks it depends on.
type DependencyGraph struct {
	nodes []string
	edges map[string][]string
}

// NewDependencyGraph builds the graph from the schedule. Links to deleted
// tasks are ignored.
func NewDependencyGraph(tasks []project.Task) *DependencyGraph {
	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}

	g := &DependencyGraph{edges: make(map[string][]string)}
	for _, t := range tasks {
		g.nodes = append(g.nodes, t.ID)
		for _, pre := range t.Predecessors {
			if known[pre.TaskID] {
				g.edges[t.ID] = append(g.edges[t.ID], pre.TaskID)
			}
		}
	}
	return g
}

// AddEdge records an extra dependency, used to test a link before committing
// it to the schedule.
func (g *DependencyGraph) AddEdge(taskID, predecessorID string) {
	g.edges[taskID] = append(g.edges[taskID], predecessorID)
}

// HasCycle reports whether the dependency links form a cycle.
func (g *DependencyGraph) HasCycle() bool {
	visited := make(map[string]bool)
	inStack := make(map[string]bool)

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		inStack[id] = true

		for _, dep := range g.edges[id] {
			if !visited[dep] {
				if dfs(dep) {
					return true
				}
			} else if inStack[dep] {
				return true
			}
		}

		inStack[id] = false
		return false
	}

	for _, id := range g.nodes {
		if !visited[id] {
			if dfs(id) {
				return true
			}
		}
	}
	return false
}

// ExecutionOrder returns the task IDs in dependency order, predecessors
// first. Ties break on task ID so the order is stable.
func (g *DependencyGraph) ExecutionOrder() ([]string, error) {
	if g.HasCycle() {
		return nil, ErrCyclicDependency
	}

	inDegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string)
	for _, id := range g.nodes {
		inDegree[id] = len(g.edges[id])
		for _, dep := range g.edges[id] {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	ready := []string{}
	for _, id := range g.nodes {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		next := []string{}
		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				next = append(next, dep)
			}
		}
		sort.Strings(next)
		ready = append(ready, next...)
	}
	return order, nil
}
