package schedule

import (
	"errors"
	"testing"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

func chainTasks() []project.Task {
	return []project.Task{
		{ID: "t3", Title: "Framing",
			Predecessors: []project.Predecessor{{TaskID: "t2", Type: project.FinishToStart}}},
		{ID: "t1", Title: "Excavation"},
		{ID: "t2", Title: "Foundation",
			Predecessors: []project.Predecessor{{TaskID: "t1", Type: project.FinishToStart}}},
	}
}

func TestHasCycle(t *testing.T) {
	g := NewDependencyGraph(chainTasks())
	if g.HasCycle() {
		t.Error("a chain is not a cycle")
	}

	g.AddEdge("t1", "t3")
	if !g.HasCycle() {
		t.Error("t1 -> t3 closes the loop")
	}
}

func TestHasCycleSelfLoop(t *testing.T) {
	g := NewDependencyGraph([]project.Task{{ID: "t1"}})
	g.AddEdge("t1", "t1")
	if !g.HasCycle() {
		t.Error("self loop should be a cycle")
	}
}

func TestExecutionOrder(t *testing.T) {
	g := NewDependencyGraph(chainTasks())
	order, err := g.ExecutionOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"t1", "t2", "t3"}
	for i, id := range want {
		if order[i] != id {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestExecutionOrderCycle(t *testing.T) {
	g := NewDependencyGraph(chainTasks())
	g.AddEdge("t1", "t3")
	if _, err := g.ExecutionOrder(); !errors.Is(err, ErrCyclicDependency) {
		t.Fatalf("expected ErrCyclicDependency, got %v", err)
	}
}

func TestDanglingLinksIgnored(t *testing.T) {
	tasks := []project.Task{
		{ID: "t1", Predecessors: []project.Predecessor{{TaskID: "gone", Type: project.FinishToStart}}},
	}
	g := NewDependencyGraph(tasks)
	order, err := g.ExecutionOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 1 || order[0] != "t1" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestExecutionOrderStableTies(t *testing.T) {
	tasks := []project.Task{{ID: "b"}, {ID: "a"}, {ID: "c"}}
	g := NewDependencyGraph(tasks)
	order, _ := g.ExecutionOrder()
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if order[i] != id {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}
