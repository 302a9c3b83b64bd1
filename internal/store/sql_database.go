package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/migrations"
)

// DB wraps the SQLite handle holding device bookkeeping (sync offsets).
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB)
	if err != nil {
		db.logger.Err(err).Str("func", "DB.Migrate").Msg("error applying migrations")
		return err
	}
	db.logger.Debug().Str("func", "DB.Migrate").Int("applied", applied).Msg("schema is up to date")

	return nil
}
