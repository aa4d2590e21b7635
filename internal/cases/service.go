package cases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileRemovalScheduler schedules removal of stored files after a cascading
// delete commits.
type FileRemovalScheduler interface {
	EnqueueRemoveFiles(locators ...string)
}

// Service implements the case use cases on top of a Repo.
type Service struct {
	Repo     Repo
	Clients  ClientDirectory
	Queue    FileRemovalScheduler
	TenantID string
}

// NewService constructs a Service.
func NewService(repo Repo, clients ClientDirectory, queue FileRemovalScheduler, tenantID string) *Service {
	return &Service{Repo: repo, Clients: clients, Queue: queue, TenantID: tenantID}
}

// ListByClient returns the client's cases.
func (s *Service) ListByClient(ctx context.Context, clientID string) ([]Case, error) {
	return s.Repo.ListByClient(ctx, s.TenantID, clientID)
}

// Get returns one case.
func (s *Service) Get(ctx context.Context, id string) (Case, error) {
	return s.Repo.GetByID(ctx, s.TenantID, id)
}

// Create opens a new case under an existing client.
func (s *Service) Create(ctx context.Context, clientID, title, status string) (Case, error) {
	ok, err := s.Clients.Exists(ctx, s.TenantID, clientID)
	if err != nil {
		return Case{}, err
	}
	if !ok {
		return Case{}, ErrClientNotFound
	}

	if status == "" {
		status = StatusOpen
	}
	cs := Case{
		ID:        uuid.NewString(),
		TenantID:  s.TenantID,
		ClientID:  clientID,
		Title:     strings.TrimSpace(title),
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, cs); err != nil {
		return Case{}, err
	}
	return cs, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) error {
	return s.Repo.Update(ctx, s.TenantID, id, params)
}

// Exists reports whether the case exists. Satisfies the documents package's
// case directory.
func (s *Service) Exists(ctx context.Context, tenantID, id string) (bool, error) {
	return s.Repo.Exists(ctx, tenantID, id)
}

// Delete removes the case and everything under it, then schedules the
// removal of the orphaned files.
func (s *Service) Delete(ctx context.Context, id string) error {
	locators, err := s.Repo.Delete(ctx, s.TenantID, id)
	if err != nil {
		return err
	}
	if len(locators) > 0 && s.Queue != nil {
		s.Queue.EnqueueRemoveFiles(locators...)
	}
	return nil
}
