package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialects.
const (
	DialectSpanner  = "spanner"
	DialectPostgres = "postgres"
)

// ApplyPostgres runs every PostgreSQL migration in one transaction. The
// statements are idempotent, so reapplying is safe.
func ApplyPostgres(ctx context.Context, db *sql.DB) error {
	migrations, err := Load(DialectPostgres)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	for _, m := range migrations {
		for _, stmt := range m.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("failed to apply %s: %w", m.Name, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}
	return nil
}
