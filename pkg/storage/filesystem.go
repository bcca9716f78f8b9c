package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/sazyar/sazyar/pkg/domain"
	"github.com/sazyar/sazyar/pkg/domain/project"
)

const SazyarDir = ".sazyar"
const ProjectFile = "project.json"
const EventsFile = "events.jsonl"

// FilesystemRepository persists the project document and the audit trail in
// a .sazyar directory at the workspace root.
type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

var _ domain.ProjectRepository = (*FilesystemRepository)(nil)

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .sazyar directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	// Base directory is strictly root/.sazyar
	baseDir := filepath.Join(r.root, SazyarDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	// Check for traversal and ensure it's a direct child (no nested subdirs in .sazyar for now)
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, SazyarDir)
	// G301: Use 0700 for directories
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .sazyar directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, SazyarDir))
	return err == nil
}

func (r *FilesystemRepository) SaveProject(p *project.Project) error {
	path, err := r.ResolvePath(ProjectFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	// G306: Use 0600 for files
	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadProject() (*project.Project, error) {
	retryer := retry.New[*project.Project](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*project.Project, error) {
		path, err := r.ResolvePath(ProjectFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to read project file: %w", err)
		}

		if err := ValidateProjectJSON(data); err != nil {
			return nil, fmt.Errorf("project file is invalid: %w", err)
		}

		var p project.Project
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project: %w", err)
		}

		return &p, nil
	})
}
