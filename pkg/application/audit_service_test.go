package application_test

import (
	"strings"
	"testing"

	"github.com/sazyar/sazyar/pkg/application"
)

func TestAuditService_LogChainsHashes(t *testing.T) {
	repo := &MockRepo{}
	svc := application.NewAuditService(repo)

	if err := svc.Log("task.create", "human", map[string]interface{}{"task_id": "t1"}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if err := svc.Log("task.transition", "human", map[string]interface{}{"task_id": "t1", "event": "start"}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	if len(repo.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.Events))
	}
	if repo.Events[0].PrevHash != "" {
		t.Error("first event should have empty prev hash")
	}
	if repo.Events[1].PrevHash != repo.Events[0].Hash {
		t.Error("second event should link to the first")
	}
}

func TestAuditService_VerifyIntegrity_Clean(t *testing.T) {
	repo := &MockRepo{}
	svc := application.NewAuditService(repo)
	_ = svc.Log("project.init", "human", nil)
	_ = svc.Log("task.create", "human", nil)

	violations, err := svc.VerifyIntegrity()
	if err != nil {
		t.Fatalf("VerifyIntegrity failed: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("expected clean chain, got %v", violations)
	}
}

func TestAuditService_VerifyIntegrity_DetectsTampering(t *testing.T) {
	repo := &MockRepo{}
	svc := application.NewAuditService(repo)
	_ = svc.Log("project.init", "human", nil)
	_ = svc.Log("task.create", "human", nil)

	repo.Events[0].Action = "task.delete" // tamper

	violations, err := svc.VerifyIntegrity()
	if err != nil {
		t.Fatalf("VerifyIntegrity failed: %v", err)
	}
	if len(violations) == 0 {
		t.Fatal("expected violations after tampering")
	}
	found := false
	for _, v := range violations {
		if strings.Contains(v, "Content hash mismatch") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected content hash violation, got %v", violations)
	}
}

func TestAuditService_GetTimeline(t *testing.T) {
	repo := &MockRepo{}
	svc := application.NewAuditService(repo)
	_ = svc.Log("project.init", "human", nil)

	events, err := svc.GetTimeline()
	if err != nil {
		t.Fatalf("GetTimeline failed: %v", err)
	}
	if len(events) != 1 || events[0].Action != "project.init" {
		t.Errorf("unexpected timeline: %v", events)
	}
}
