package search

import "context"

// Engine answers page-text queries. An empty caseID searches the whole
// tenant.
type Engine interface {
	Search(ctx context.Context, q, caseID string, limit int) ([]Hit, error)
}
