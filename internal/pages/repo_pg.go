package pages

import (
	"context"
	"database/sql"
	"fmt"
)

// PGRepo implements Repo using Postgres. The tsv search-vector column is
// generated by the schema, so inserts only carry the raw text.
type PGRepo struct {
	DB *sql.DB
}

// ReplaceForDocument deletes all pages for the document and reinserts one row
// per page inside a single transaction.
func (r *PGRepo) ReplaceForDocument(ctx context.Context, docID string, texts []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace pages: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_pages WHERE doc_id = $1`, docID); err != nil {
		return fmt.Errorf("delete pages doc=%s: %w", docID, err)
	}

	const insert = `INSERT INTO doc_pages (doc_id, page, text) VALUES ($1, $2, $3)`
	for i, text := range texts {
		if _, err := tx.ExecContext(ctx, insert, docID, i+1, text); err != nil {
			return fmt.Errorf("insert page %d doc=%s: %w", i+1, docID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace pages doc=%s: %w", docID, err)
	}
	return nil
}

// DeleteForDocument drops every page of a document. The FK cascade covers the
// document-delete path; this is for explicit drops.
func (r *PGRepo) DeleteForDocument(ctx context.Context, docID string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM doc_pages WHERE doc_id = $1`, docID); err != nil {
		return fmt.Errorf("delete pages doc=%s: %w", docID, err)
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
