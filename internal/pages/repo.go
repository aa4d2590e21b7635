package pages

import "context"

// Repo defines persistence operations for the page index.
type Repo interface {
	// ReplaceForDocument atomically replaces every indexed page of a document
	// with one row per element of texts, numbered from 1.
	ReplaceForDocument(ctx context.Context, docID string, texts []string) error
	// DeleteForDocument drops every indexed page of a document.
	DeleteForDocument(ctx context.Context, docID string) error
}
