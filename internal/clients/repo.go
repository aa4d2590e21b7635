package clients

import "context"

// UpdateParams carries the optional fields of a client update. Nil means
// "leave unchanged".
type UpdateParams struct {
	Name *string
	Tags *[]string
}

// Repo defines persistence operations for clients.
type Repo interface {
	// List returns clients of the tenant; a non-empty q filters by name
	// (prefix or fuzzy match).
	List(ctx context.Context, tenantID, q string) ([]Client, error)
	GetByID(ctx context.Context, tenantID, id string) (Client, error)
	Create(ctx context.Context, client Client) error
	Update(ctx context.Context, tenantID, id string, params UpdateParams) error
	Exists(ctx context.Context, tenantID, id string) (bool, error)
	// Delete removes the client and transitively its cases, documents and
	// index pages in one transaction, returning the storage locators of
	// every removed document so the caller can schedule file removal.
	Delete(ctx context.Context, tenantID, id string) ([]string, error)
}
