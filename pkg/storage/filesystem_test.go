package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sazyar/sazyar/pkg/domain"
	"github.com/sazyar/sazyar/pkg/domain/project"
	"github.com/sazyar/sazyar/pkg/storage"
)

func newRepo(t *testing.T) *storage.FilesystemRepository {
	t.Helper()
	repo := storage.NewFilesystemRepository(t.TempDir())
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return repo
}

func TestInitialize_CreatesWorkspaceDir(t *testing.T) {
	root := t.TempDir()
	repo := storage.NewFilesystemRepository(root)

	if repo.IsInitialized() {
		t.Error("fresh workspace should not be initialized")
	}
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !repo.IsInitialized() {
		t.Error("expected workspace to be initialized")
	}

	info, err := os.Stat(filepath.Join(root, storage.SazyarDir))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("expected 0700 directory, got %v", info.Mode().Perm())
	}
}

func TestSaveLoadProject_RoundTrip(t *testing.T) {
	repo := newRepo(t)

	fixed := 250000.0
	p := &project.Project{
		ID:   "p1",
		Name: "Pardis Office Block",
		Tasks: []project.Task{{
			ID: "t1", Title: "Excavation", Status: project.StatusInProgress,
			StartDate: "2024-06-01", FinishDate: "2024-06-11", Duration: 10,
			PercentComplete: 30, FixedCost: &fixed,
		}},
		Resources: []project.Resource{
			{ID: "r1", Name: "Excavator", Type: project.ResourceEquipment, CostRate: 500},
		},
	}
	if err := repo.SaveProject(p); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	got, err := repo.LoadProject()
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if got.Name != p.Name || len(got.Tasks) != 1 || len(got.Resources) != 1 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Tasks[0].FixedCost == nil || *got.Tasks[0].FixedCost != 250000 {
		t.Error("fixed cost override should survive the round trip")
	}
}

func TestLoadProject_MissingReturnsNil(t *testing.T) {
	repo := newRepo(t)

	got, err := repo.LoadProject()
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil project, got %+v", got)
	}
}

func TestLoadProject_RejectsMalformedDocument(t *testing.T) {
	repo := newRepo(t)

	path, err := repo.ResolvePath(storage.ProjectFile)
	if err != nil {
		t.Fatalf("ResolvePath failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"tasks": "not-an-array"}`), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := repo.LoadProject(); err == nil {
		t.Fatal("expected error for document that is not project-shaped")
	}
}

func TestSaveProject_FileMode(t *testing.T) {
	repo := newRepo(t)
	if err := repo.SaveProject(&project.Project{ID: "p1", Name: "x"}); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	path, _ := repo.ResolvePath(storage.ProjectFile)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 file, got %v", info.Mode().Perm())
	}
}

func TestResolvePath_RejectsTraversal(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())

	cases := []string{"", "../escape.json", "sub/dir.json", "..", "./../x"}
	for _, c := range cases {
		if _, err := repo.ResolvePath(c); err == nil {
			t.Errorf("expected error for path %q", c)
		}
	}
}

func TestRecordLoadEvents(t *testing.T) {
	repo := newRepo(t)

	e1 := domain.Event{ID: "e1", Action: "project.init", Actor: "human"}
	e1.Hash = e1.CalculateHash()
	e2 := domain.Event{ID: "e2", Action: "task.create", Actor: "human", PrevHash: e1.Hash}
	e2.Hash = e2.CalculateHash()

	if err := repo.RecordEvent(e1); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}
	if err := repo.RecordEvent(e2); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}

	events, err := repo.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].PrevHash != events[0].Hash {
		t.Error("event order should be preserved")
	}
}

func TestLoadEvents_EmptyAndMalformed(t *testing.T) {
	repo := newRepo(t)

	events, err := repo.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}

	path, _ := repo.ResolvePath(storage.EventsFile)
	if err := os.WriteFile(path, []byte("{\"id\":\"e1\"}\nnot json\n\n{\"id\":\"e2\"}\n"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	events, err = repo.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("malformed lines should be skipped, got %d events", len(events))
	}
}
