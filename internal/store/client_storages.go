package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/MKhiriev/go-attendance-sync/internal/config"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
)

// ClientStorages groups the device-side storages into a single value that
// can be passed around the service layer.
type ClientStorages struct {
	// Resources holds the three dataset files.
	Resources ResourceStore

	// Offsets holds the per-dataset sync offsets.
	Offsets OffsetTracker

	db      *DB
	dirLock *flock.Flock
}

// NewClientStorages initialises the device storage layer. It performs the
// following steps:
//  1. Locks cfg.DataDir so no other agent process shares the datasets.
//  2. Opens the dataset files under cfg.DataDir on the OS filesystem.
//  3. Opens the SQLite offsets database at cfg.DB.DSN and runs migrations.
//
// Returns an error if any step fails; partially acquired resources are
// released before returning.
func NewClientStorages(cfg config.Storage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	fs := afero.NewOsFs()
	resources, err := NewFileResourceStore(fs, cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("dataset storage error: %w", err)
	}

	dirLock, err := LockDataDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		_ = dirLock.Unlock()
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		_ = dirLock.Unlock()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Resources: resources,
		Offsets:   NewSQLiteOffsetTracker(db, logger),
		db:        db,
		dirLock:   dirLock,
	}, nil
}

// Close releases the offsets database and the data directory lock.
func (s *ClientStorages) Close() error {
	var errs []error
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	if s.dirLock != nil {
		errs = append(errs, s.dirLock.Unlock())
	}
	return errors.Join(errs...)
}
