// Package tenants resolves the default tenant at startup. The resolved id is
// passed explicitly through bootstrap into every service; nothing in the
// request path looks tenants up lazily.
package tenants

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureDefault creates the named tenant if absent and returns its id.
func EnsureDefault(ctx context.Context, database *sql.DB, name string) (string, error) {
	if name == "" {
		name = "default"
	}
	const query = `
INSERT INTO tenants (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text`

	var id string
	if err := database.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return "", fmt.Errorf("ensure default tenant %q: %w", name, err)
	}
	return id, nil
}
