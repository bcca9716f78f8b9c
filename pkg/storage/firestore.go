package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sazyar/sazyar/pkg/domain"
	"github.com/sazyar/sazyar/pkg/domain/project"
)

const (
	usersCollection    = "users"
	projectsCollection = "projects"
	eventsCollection   = "events"

	// defaultProjectDoc mirrors the single-project layout of the hosted app:
	// each user owns exactly one project document.
	defaultProjectDoc = "default"
)

// FirestoreRepository stores the project document and audit trail under
// users/{uid}/projects/default, matching the hosted backend so the CLI and
// the web app can share state.
type FirestoreRepository struct {
	client *firestore.Client
	uid    string
}

var _ domain.ProjectRepository = (*FirestoreRepository)(nil)

// NewFirestoreRepository connects to Firestore for the given GCP project and
// user. Credentials follow the usual google.golang.org/api options.
func NewFirestoreRepository(ctx context.Context, gcpProject, uid string, opts ...option.ClientOption) (*FirestoreRepository, error) {
	if uid == "" {
		return nil, fmt.Errorf("user ID must not be empty")
	}
	client, err := firestore.NewClient(ctx, gcpProject, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return &FirestoreRepository{client: client, uid: uid}, nil
}

// NewFirestoreRepositoryWithClient wraps an existing client. Used in tests
// against the Firestore emulator.
func NewFirestoreRepositoryWithClient(client *firestore.Client, uid string) *FirestoreRepository {
	return &FirestoreRepository{client: client, uid: uid}
}

func (r *FirestoreRepository) Close() error {
	return r.client.Close()
}

func (r *FirestoreRepository) projectDoc() *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(r.uid).
		Collection(projectsCollection).Doc(defaultProjectDoc)
}

// Initialize is a no-op: Firestore creates documents on first write.
func (r *FirestoreRepository) Initialize() error {
	return nil
}

func (r *FirestoreRepository) IsInitialized() bool {
	_, err := r.projectDoc().Get(context.Background())
	return err == nil
}

func (r *FirestoreRepository) SaveProject(p *project.Project) error {
	_, err := r.projectDoc().Set(context.Background(), p)
	if err != nil {
		return fmt.Errorf("failed to save project document: %w", err)
	}
	return nil
}

func (r *FirestoreRepository) LoadProject() (*project.Project, error) {
	snap, err := r.projectDoc().Get(context.Background())
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load project document: %w", err)
	}

	var p project.Project
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode project document: %w", err)
	}
	return &p, nil
}

func (r *FirestoreRepository) RecordEvent(event domain.Event) error {
	_, err := r.projectDoc().Collection(eventsCollection).Doc(event.ID).
		Set(context.Background(), event)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

func (r *FirestoreRepository) LoadEvents() ([]domain.Event, error) {
	iter := r.projectDoc().Collection(eventsCollection).
		OrderBy("Timestamp", firestore.Asc).
		Documents(context.Background())
	defer iter.Stop()

	events := []domain.Event{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read events: %w", err)
		}
		var e domain.Event
		if err := snap.DataTo(&e); err != nil {
			continue // Skip malformed documents
		}
		events = append(events, e)
	}
	return events, nil
}
