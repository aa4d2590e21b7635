package documents

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// PageDropper is the slice of the page index the memory repo needs to mimic
// the FK cascade Postgres provides.
type PageDropper interface {
	DeleteForDocument(ctx context.Context, docID string) error
}

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	data  map[string]Document // id -> document
	pages PageDropper
}

// NewMemoryRepo constructs a MemoryRepo that drops index pages on delete.
func NewMemoryRepo(pages PageDropper) *MemoryRepo {
	return &MemoryRepo{
		data:  make(map[string]Document),
		pages: pages,
	}
}

// Create stores a document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.ID] = doc
	return nil
}

// GetByID returns a document within the tenant scope.
func (r *MemoryRepo) GetByID(ctx context.Context, tenantID, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[id]
	if !ok || doc.TenantID != tenantID {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// ListByCase returns a case's documents, newest first.
func (r *MemoryRepo) ListByCase(ctx context.Context, tenantID, caseID, q string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(q))

	r.mu.RLock()
	var out []Document
	for _, doc := range r.data {
		if doc.TenantID != tenantID || doc.CaseID != caseID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(doc.Name), term) {
			continue
		}
		out = append(out, doc)
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

// Rename updates only the display name.
func (r *MemoryRepo) Rename(ctx context.Context, tenantID, id, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[id]
	if !ok || doc.TenantID != tenantID {
		return ErrNotFound
	}
	doc.Name = name
	r.data[id] = doc
	return nil
}

// Delete removes the document and its indexed pages.
func (r *MemoryRepo) Delete(ctx context.Context, tenantID, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	doc, ok := r.data[id]
	if !ok || doc.TenantID != tenantID {
		r.mu.Unlock()
		return Document{}, ErrNotFound
	}
	delete(r.data, id)
	r.mu.Unlock()

	if r.pages != nil {
		if err := r.pages.DeleteForDocument(ctx, id); err != nil {
			return Document{}, err
		}
	}
	return doc, nil
}

// PurgeByCase removes every document of a case together with its indexed
// pages and returns the storage locators of the removed files. Used by the
// cascading case/client delete in memory mode.
func (r *MemoryRepo) PurgeByCase(ctx context.Context, caseID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	var ids, locators []string
	for id, doc := range r.data {
		if doc.CaseID == caseID {
			ids = append(ids, id)
			locators = append(locators, doc.StorageURL)
			delete(r.data, id)
		}
	}
	r.mu.Unlock()

	if r.pages != nil {
		for _, id := range ids {
			if err := r.pages.DeleteForDocument(ctx, id); err != nil {
				return locators, err
			}
		}
	}
	return locators, nil
}

// Lookup resolves a document id to its display name and case. Used by the
// in-memory search engine.
func (r *MemoryRepo) Lookup(ctx context.Context, docID string) (name, caseID string, ok bool) {
	if ctx.Err() != nil {
		return "", "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, found := r.data[docID]
	if !found {
		return "", "", false
	}
	return doc.Name, doc.CaseID, true
}

var _ Repo = (*MemoryRepo)(nil)
