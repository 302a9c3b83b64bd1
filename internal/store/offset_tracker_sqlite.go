package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/models"
)

type sqliteOffsetTracker struct {
	db  *DB
	now func() time.Time

	logger *logger.Logger
}

// NewSQLiteOffsetTracker returns an [OffsetTracker] persisted in the
// sync_offsets table of db.
func NewSQLiteOffsetTracker(db *DB, logger *logger.Logger) OffsetTracker {
	return &sqliteOffsetTracker{
		db:     db,
		now:    time.Now,
		logger: logger,
	}
}

func (t *sqliteOffsetTracker) Get(ctx context.Context, d models.Dataset) (models.SyncOffset, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %s", models.ErrUnknownDataset, d)
	}

	query, args, err := buildGetOffsetQuery(d)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var synced int64
	err = t.db.QueryRowContext(ctx, query, args...).Scan(&synced)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		t.logger.Err(err).
			Str("func", "sqliteOffsetTracker.Get").
			Stringer("dataset", d).
			Msg("failed to read sync offset")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if synced < 0 || synced > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %s=%d", ErrCorruptOffset, d, synced)
	}

	return models.SyncOffset(synced), nil
}

func (t *sqliteOffsetTracker) Set(ctx context.Context, d models.Dataset, offset models.SyncOffset) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %s", models.ErrUnknownDataset, d)
	}

	query, args, err := buildSetOffsetQuery(d, offset, t.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.db.ExecContext(ctx, query, args...); err != nil {
		t.logger.Err(err).
			Str("func", "sqliteOffsetTracker.Set").
			Stringer("dataset", d).
			Uint16("offset", offset).
			Msg("failed to persist sync offset")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (t *sqliteOffsetTracker) ClearAll(ctx context.Context) error {
	query, args, err := buildClearOffsetsQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.db.ExecContext(ctx, query, args...); err != nil {
		t.logger.Err(err).Str("func", "sqliteOffsetTracker.ClearAll").Msg("failed to clear sync offsets")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
