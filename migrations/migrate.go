// Package migrations embeds and applies the SQLite schema of the device
// bookkeeping database.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// ErrMigration wraps every failure to bring the schema up to date.
var ErrMigration = errors.New("migration error")

// Migrate applies all pending migrations and returns how many were applied.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("%w: db is nil", ErrMigration)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, embedMigrations)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMigration, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMigration, err)
	}

	return len(results), nil
}
