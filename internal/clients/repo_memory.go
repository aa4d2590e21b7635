package clients

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// CasePurger is the slice of the cases package the memory repo needs to
// mimic the FK cascade Postgres provides.
type CasePurger interface {
	PurgeByClient(ctx context.Context, clientID string) ([]string, error)
}

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	data  map[string]Client // id -> client
	cases CasePurger
}

// NewMemoryRepo constructs a MemoryRepo that cascades into cases on delete.
func NewMemoryRepo(cases CasePurger) *MemoryRepo {
	return &MemoryRepo{
		data:  make(map[string]Client),
		cases: cases,
	}
}

// List returns the tenant's clients, optionally filtered by name.
func (r *MemoryRepo) List(ctx context.Context, tenantID, q string) ([]Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(q))

	r.mu.RLock()
	var out []Client
	for _, client := range r.data {
		if client.TenantID != tenantID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(client.Name), term) {
			continue
		}
		out = append(out, client)
	}
	r.mu.RUnlock()

	if term != "" {
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	} else {
		sort.Slice(out, func(i, j int) bool {
			if out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].ID < out[j].ID
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out, nil
}

// GetByID fetches one client within the tenant scope.
func (r *MemoryRepo) GetByID(ctx context.Context, tenantID, id string) (Client, error) {
	if err := ctx.Err(); err != nil {
		return Client{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.data[id]
	if !ok || client.TenantID != tenantID {
		return Client{}, ErrNotFound
	}
	return client, nil
}

// Create stores a client.
func (r *MemoryRepo) Create(ctx context.Context, client Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if client.Tags == nil {
		client.Tags = []string{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[client.ID] = client
	return nil
}

// Update applies the provided fields.
func (r *MemoryRepo) Update(ctx context.Context, tenantID, id string, params UpdateParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.data[id]
	if !ok || client.TenantID != tenantID {
		return ErrNotFound
	}
	if params.Name != nil {
		client.Name = strings.TrimSpace(*params.Name)
	}
	if params.Tags != nil {
		tags := make([]string, len(*params.Tags))
		copy(tags, *params.Tags)
		client.Tags = tags
	}
	r.data[id] = client
	return nil
}

// Exists reports whether the client exists within the tenant scope.
func (r *MemoryRepo) Exists(ctx context.Context, tenantID, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.data[id]
	return ok && client.TenantID == tenantID, nil
}

// Delete removes the client and cascades into its cases, returning the
// storage locators of every removed document.
func (r *MemoryRepo) Delete(ctx context.Context, tenantID, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	client, ok := r.data[id]
	if !ok || client.TenantID != tenantID {
		r.mu.Unlock()
		return nil, ErrNotFound
	}
	delete(r.data, id)
	r.mu.Unlock()

	if r.cases == nil {
		return nil, nil
	}
	return r.cases.PurgeByClient(ctx, id)
}

var _ Repo = (*MemoryRepo)(nil)
