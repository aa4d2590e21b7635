package cases

import "context"

// UpdateParams carries the optional fields of a case update. Nil means
// "leave unchanged".
type UpdateParams struct {
	Title  *string
	Status *string
}

// Repo defines persistence operations for cases.
type Repo interface {
	ListByClient(ctx context.Context, tenantID, clientID string) ([]Case, error)
	GetByID(ctx context.Context, tenantID, id string) (Case, error)
	Create(ctx context.Context, cs Case) error
	Update(ctx context.Context, tenantID, id string, params UpdateParams) error
	Exists(ctx context.Context, tenantID, id string) (bool, error)
	// Delete removes the case and transitively its documents and index
	// pages, returning the storage locators of every removed document so
	// the caller can schedule file removal.
	Delete(ctx context.Context, tenantID, id string) ([]string, error)
}

// ClientDirectory is the slice of the clients package a case needs.
type ClientDirectory interface {
	Exists(ctx context.Context, tenantID, id string) (bool, error)
}
