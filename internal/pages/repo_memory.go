package pages

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Page // docID -> pages in order
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Page)}
}

// ReplaceForDocument replaces the page set for a document.
func (r *MemoryRepo) ReplaceForDocument(ctx context.Context, docID string, texts []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rows := make([]Page, 0, len(texts))
	for i, text := range texts {
		rows = append(rows, Page{DocID: docID, Page: i + 1, Text: text})
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[docID] = rows
	return nil
}

// DeleteForDocument drops every page of a document.
func (r *MemoryRepo) DeleteForDocument(ctx context.Context, docID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, docID)
	return nil
}

// ForDocument returns the indexed pages of one document in page order.
func (r *MemoryRepo) ForDocument(ctx context.Context, docID string) ([]Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Page, len(r.data[docID]))
	copy(out, r.data[docID])
	return out, nil
}

// All returns every indexed page across all documents.
func (r *MemoryRepo) All(ctx context.Context) ([]Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Page
	for _, rows := range r.data {
		out = append(out, rows...)
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
