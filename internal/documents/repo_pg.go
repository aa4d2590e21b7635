package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document row.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, tenant_id, case_id, name, mime, storage_url, sha256, version, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NULL, $7, $8)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.TenantID,
		doc.CaseID,
		doc.Name,
		doc.Mime,
		doc.StorageURL,
		doc.Version,
		doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID fetches a document within the tenant scope.
func (r *PGRepo) GetByID(ctx context.Context, tenantID, id string) (Document, error) {
	const query = `
SELECT id::text, case_id::text, name, mime, storage_url, version, created_at
FROM documents
WHERE id = $1 AND tenant_id = $2`

	var doc Document
	err := r.DB.QueryRowContext(ctx, query, id, tenantID).Scan(
		&doc.ID,
		&doc.CaseID,
		&doc.Name,
		&doc.Mime,
		&doc.StorageURL,
		&doc.Version,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("select document: %w", err)
	}
	doc.TenantID = tenantID
	return doc, nil
}

// ListByCase lists a case's documents, newest first, optionally filtered by
// display name (prefix LIKE or trigram similarity).
func (r *PGRepo) ListByCase(ctx context.Context, tenantID, caseID, q string) ([]Document, error) {
	term := strings.ToLower(strings.TrimSpace(q))

	var (
		rows *sql.Rows
		err  error
	)
	if term != "" {
		const query = `
SELECT id::text, case_id::text, name, mime, storage_url, version, created_at
FROM documents
WHERE tenant_id = $1 AND case_id = $2
  AND (lower(name) LIKE $3 OR similarity(lower(name), $4) > 0.3)
ORDER BY created_at DESC`
		rows, err = r.DB.QueryContext(ctx, query, tenantID, caseID, term+"%", term)
	} else {
		const query = `
SELECT id::text, case_id::text, name, mime, storage_url, version, created_at
FROM documents
WHERE tenant_id = $1 AND case_id = $2
ORDER BY created_at DESC`
		rows, err = r.DB.QueryContext(ctx, query, tenantID, caseID)
	}
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID,
			&doc.CaseID,
			&doc.Name,
			&doc.Mime,
			&doc.StorageURL,
			&doc.Version,
			&doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.TenantID = tenantID
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Rename updates only the display name.
func (r *PGRepo) Rename(ctx context.Context, tenantID, id, name string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE documents SET name = $1 WHERE id = $2 AND tenant_id = $3`,
		name, id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("rename document: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the document row; doc_pages rows cascade via FK.
func (r *PGRepo) Delete(ctx context.Context, tenantID, id string) (Document, error) {
	const query = `
DELETE FROM documents
WHERE id = $1 AND tenant_id = $2
RETURNING id::text, case_id::text, name, mime, storage_url, version, created_at`

	var doc Document
	err := r.DB.QueryRowContext(ctx, query, id, tenantID).Scan(
		&doc.ID,
		&doc.CaseID,
		&doc.Name,
		&doc.Mime,
		&doc.StorageURL,
		&doc.Version,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("delete document: %w", err)
	}
	doc.TenantID = tenantID
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
