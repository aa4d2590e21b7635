package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, tenantID, id string) (Document, error)
	// ListByCase returns documents of a case, newest first. A non-empty q
	// filters by display name (prefix or fuzzy match).
	ListByCase(ctx context.Context, tenantID, caseID, q string) ([]Document, error)
	// Rename updates only the display name.
	Rename(ctx context.Context, tenantID, id, name string) error
	// Delete removes the document row (page rows cascade) and returns the
	// deleted document so the caller can schedule file removal.
	Delete(ctx context.Context, tenantID, id string) (Document, error)
}

// CaseDirectory is the slice of the cases store the ingestion pipeline needs.
type CaseDirectory interface {
	Exists(ctx context.Context, tenantID, caseID string) (bool, error)
}

// IndexScheduler accepts detached work produced by the pipeline. Indexing and
// file removal never run on the request path.
type IndexScheduler interface {
	EnqueueIndex(docID string)
	EnqueueRemoveFiles(locators ...string)
}
