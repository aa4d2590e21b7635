package search

import (
	"context"
	"database/sql"
	"fmt"
)

// PGEngine searches indexed pages in Postgres, combining a trigram
// substring match with websearch full-text matching. Ranking follows
// trigram similarity so near-literal matches surface first.
type PGEngine struct {
	DB       *sql.DB
	TenantID string
}

const searchQuery = `
SELECT p.doc_id::text,
       p.page,
       substring(p.text from greatest(1, position(lower($1) in lower(p.text)) - 50) for 180) AS snippet,
       d.name,
       d.case_id::text
FROM doc_pages p
JOIN documents d ON d.id = p.doc_id
WHERE d.tenant_id = $2
  AND ($3::uuid IS NULL OR d.case_id = $3::uuid)
  AND (p.text ILIKE '%' || $1 || '%' OR p.tsv @@ websearch_to_tsquery('english', $1))
ORDER BY similarity(p.text, $1) DESC NULLS LAST, p.page ASC
LIMIT $4`

// Search runs the page query. An empty caseID searches the whole tenant.
func (e *PGEngine) Search(ctx context.Context, q, caseID string, limit int) ([]Hit, error) {
	var scope any
	if caseID != "" {
		scope = caseID
	}

	rows, err := e.DB.QueryContext(ctx, searchQuery, q, e.TenantID, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("search pages: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.DocID, &h.Page, &h.Snippet, &h.DocName, &h.CaseID); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

var _ Engine = (*PGEngine)(nil)
