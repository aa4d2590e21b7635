package clients

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}

func scanTags(raw []byte, dest *[]string) error {
	if len(raw) == 0 {
		*dest = []string{}
		return nil
	}
	return json.Unmarshal(raw, dest)
}

// List returns the tenant's clients, optionally filtered by name.
func (r *PGRepo) List(ctx context.Context, tenantID, q string) ([]Client, error) {
	term := strings.ToLower(strings.TrimSpace(q))

	var (
		rows *sql.Rows
		err  error
	)
	if term != "" {
		const query = `
SELECT id::text, name, tags, created_at
FROM clients
WHERE tenant_id = $1
  AND (lower(name) LIKE $2 OR similarity(lower(name), $3) > 0.3)
ORDER BY name ASC
LIMIT 50`
		rows, err = r.DB.QueryContext(ctx, query, tenantID, term+"%", term)
	} else {
		const query = `
SELECT id::text, name, tags, created_at
FROM clients
WHERE tenant_id = $1
ORDER BY created_at DESC
LIMIT 50`
		rows, err = r.DB.QueryContext(ctx, query, tenantID)
	}
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var (
			client Client
			raw    []byte
		)
		if err := rows.Scan(&client.ID, &client.Name, &raw, &client.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		if err := scanTags(raw, &client.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
		client.TenantID = tenantID
		out = append(out, client)
	}
	return out, rows.Err()
}

// GetByID fetches one client within the tenant scope.
func (r *PGRepo) GetByID(ctx context.Context, tenantID, id string) (Client, error) {
	const query = `
SELECT id::text, name, tags, created_at
FROM clients
WHERE id = $1 AND tenant_id = $2`

	var (
		client Client
		raw    []byte
	)
	err := r.DB.QueryRowContext(ctx, query, id, tenantID).Scan(&client.ID, &client.Name, &raw, &client.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, fmt.Errorf("select client: %w", err)
	}
	if err := scanTags(raw, &client.Tags); err != nil {
		return Client{}, fmt.Errorf("decode tags: %w", err)
	}
	client.TenantID = tenantID
	return client, nil
}

// Create inserts a new client row.
func (r *PGRepo) Create(ctx context.Context, client Client) error {
	tags, err := marshalTags(client.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	const query = `
INSERT INTO clients (id, tenant_id, name, tags, created_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.DB.ExecContext(ctx, query, client.ID, client.TenantID, client.Name, tags, client.CreatedAt); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// Update applies the provided fields.
func (r *PGRepo) Update(ctx context.Context, tenantID, id string, params UpdateParams) error {
	sets := make([]string, 0, 2)
	args := []any{id, tenantID}

	if params.Name != nil {
		args = append(args, strings.TrimSpace(*params.Name))
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if params.Tags != nil {
		tags, err := marshalTags(*params.Tags)
		if err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
		args = append(args, tags)
		sets = append(sets, fmt.Sprintf("tags = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE clients SET %s WHERE id = $1 AND tenant_id = $2`, strings.Join(sets, ", "))
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether the client exists within the tenant scope.
func (r *PGRepo) Exists(ctx context.Context, tenantID, id string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM clients WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("client exists: %w", err)
	}
	return true, nil
}

// Delete collects every descendant document locator and removes the client
// row inside one transaction; cases, documents and doc_pages cascade via FK.
// No file is touched here: physical removal happens only after commit.
func (r *PGRepo) Delete(ctx context.Context, tenantID, id string) ([]string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete client: %w", err)
	}
	defer tx.Rollback()

	const collect = `
SELECT d.storage_url
FROM documents d
JOIN cases c ON c.id = d.case_id
WHERE c.client_id = $1 AND d.tenant_id = $2`
	rows, err := tx.QueryContext(ctx, collect, id, tenantID)
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
		`DELETE FROM clients WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("delete client: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete client: %w", err)
	}
	return locators, nil
}

var _ Repo = (*PGRepo)(nil)
