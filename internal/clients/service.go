package clients

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

// Service implements the client use cases on top of a Repo.
type Service struct {
	Repo     Repo
	Queue    FileRemovalScheduler
	TenantID string
}

// NewService constructs a Service.
func NewService(repo Repo, queue FileRemovalScheduler, tenantID string) *Service {
	return &Service{Repo: repo, Queue: queue, TenantID: tenantID}
}

// List returns clients, optionally filtered by name.
func (s *Service) List(ctx context.Context, q string) ([]Client, error) {
	return s.Repo.List(ctx, s.TenantID, q)
}

// Get returns one client.
func (s *Service) Get(ctx context.Context, id string) (Client, error) {
	return s.Repo.GetByID(ctx, s.TenantID, id)
}

// Create registers a new client and returns it.
func (s *Service) Create(ctx context.Context, name string, tags []string) (Client, error) {
	if tags == nil {
		tags = []string{}
	}
	client := Client{
		ID:        uuid.NewString(),
		TenantID:  s.TenantID,
		Name:      strings.TrimSpace(name),
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, client); err != nil {
		return Client{}, err
	}
	return client, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) error {
	return s.Repo.Update(ctx, s.TenantID, id, params)
}

// Delete removes the client and everything under it, then schedules the
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
