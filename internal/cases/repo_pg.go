package cases

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

// ListByClient returns a client's cases, newest first.
func (r *PGRepo) ListByClient(ctx context.Context, tenantID, clientID string) ([]Case, error) {
	const query = `
SELECT id::text, client_id::text, title, status, created_at
FROM cases
WHERE tenant_id = $1 AND client_id = $2
ORDER BY created_at DESC
LIMIT 100`

	rows, err := r.DB.QueryContext(ctx, query, tenantID, clientID)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var out []Case
	for rows.Next() {
		var cs Case
		if err := rows.Scan(&cs.ID, &cs.ClientID, &cs.Title, &cs.Status, &cs.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cs.TenantID = tenantID
		out = append(out, cs)
	}
	return out, rows.Err()
}

// GetByID fetches one case within the tenant scope.
func (r *PGRepo) GetByID(ctx context.Context, tenantID, id string) (Case, error) {
	const query = `
SELECT id::text, client_id::text, title, status, created_at
FROM cases
WHERE id = $1 AND tenant_id = $2`

	var cs Case
	err := r.DB.QueryRowContext(ctx, query, id, tenantID).Scan(&cs.ID, &cs.ClientID, &cs.Title, &cs.Status, &cs.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Case{}, ErrNotFound
		}
		return Case{}, fmt.Errorf("select case: %w", err)
	}
	cs.TenantID = tenantID
	return cs, nil
}

// Create inserts a new case row.
func (r *PGRepo) Create(ctx context.Context, cs Case) error {
	const query = `
INSERT INTO cases (id, tenant_id, client_id, title, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.DB.ExecContext(ctx, query, cs.ID, cs.TenantID, cs.ClientID, cs.Title, cs.Status, cs.CreatedAt); err != nil {
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

// Update applies the provided fields.
func (r *PGRepo) Update(ctx context.Context, tenantID, id string, params UpdateParams) error {
	sets := make([]string, 0, 2)
	args := []any{id, tenantID}

	if params.Title != nil {
		args = append(args, strings.TrimSpace(*params.Title))
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if params.Status != nil {
		args = append(args, *params.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE cases SET %s WHERE id = $1 AND tenant_id = $2`, strings.Join(sets, ", "))
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether the case exists within the tenant scope.
func (r *PGRepo) Exists(ctx context.Context, tenantID, id string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM cases WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("case exists: %w", err)
	}
	return true, nil
}

// Delete collects the case's document locators and removes the case row in
// one transaction; documents and doc_pages cascade via FK.
func (r *PGRepo) Delete(ctx context.Context, tenantID, id string) ([]string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete case: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT storage_url FROM documents WHERE case_id = $1 AND tenant_id = $2`, id, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("collect locators: %w", err)
	}
	var locators []string
	for rows.Next() {
		var locator string
		if err := rows.Scan(&locator); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan locator: %w", err)
		}
		locators = append(locators, locator)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM cases WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("delete case: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete case: %w", err)
	}
	return locators, nil
}

var _ Repo = (*PGRepo)(nil)
