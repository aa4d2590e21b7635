package cases

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// DocumentPurger is the slice of the documents package the memory repo
// needs to mimic the FK cascade Postgres provides.
type DocumentPurger interface {
	PurgeByCase(ctx context.Context, caseID string) ([]string, error)
}

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Case // id -> case
	docs DocumentPurger
}

// NewMemoryRepo constructs a MemoryRepo that cascades into documents on
// delete.
func NewMemoryRepo(docs DocumentPurger) *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Case),
		docs: docs,
	}
}

// ListByClient returns a client's cases, newest first.
func (r *MemoryRepo) ListByClient(ctx context.Context, tenantID, clientID string) ([]Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Case
	for _, cs := range r.data {
		if cs.TenantID == tenantID && cs.ClientID == clientID {
			out = append(out, cs)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetByID fetches one case within the tenant scope.
func (r *MemoryRepo) GetByID(ctx context.Context, tenantID, id string) (Case, error) {
	if err := ctx.Err(); err != nil {
		return Case{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cs, ok := r.data[id]
	if !ok || cs.TenantID != tenantID {
		return Case{}, ErrNotFound
	}
	return cs, nil
}

// Create stores a case.
func (r *MemoryRepo) Create(ctx context.Context, cs Case) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[cs.ID] = cs
	return nil
}

// Update applies the provided fields.
func (r *MemoryRepo) Update(ctx context.Context, tenantID, id string, params UpdateParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cs, ok := r.data[id]
	if !ok || cs.TenantID != tenantID {
		return ErrNotFound
	}
	if params.Title != nil {
		cs.Title = strings.TrimSpace(*params.Title)
	}
	if params.Status != nil {
		cs.Status = *params.Status
	}
	r.data[id] = cs
	return nil
}

// Exists reports whether the case exists within the tenant scope.
func (r *MemoryRepo) Exists(ctx context.Context, tenantID, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cs, ok := r.data[id]
	return ok && cs.TenantID == tenantID, nil
}

// Delete removes the case and cascades into its documents, returning the
// storage locators of the removed files.
func (r *MemoryRepo) Delete(ctx context.Context, tenantID, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	cs, ok := r.data[id]
	if !ok || cs.TenantID != tenantID {
		r.mu.Unlock()
		return nil, ErrNotFound
	}
	delete(r.data, id)
	r.mu.Unlock()

	if r.docs == nil {
		return nil, nil
	}
	return r.docs.PurgeByCase(ctx, id)
}

// PurgeByClient removes every case of a client together with its documents
// and returns the storage locators of the removed files. Used by the
// cascading client delete in memory mode.
func (r *MemoryRepo) PurgeByClient(ctx context.Context, clientID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	var ids []string
	for id, cs := range r.data {
		if cs.ClientID == clientID {
			ids = append(ids, id)
			delete(r.data, id)
		}
	}
	r.mu.Unlock()

	var locators []string
	if r.docs != nil {
		for _, id := range ids {
			purged, err := r.docs.PurgeByCase(ctx, id)
			locators = append(locators, purged...)
			if err != nil {
				return locators, err
			}
		}
	}
	return locators, nil
}

var _ Repo = (*MemoryRepo)(nil)
