package store

import (
	"context"

	"github.com/MKhiriev/go-attendance-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ResourceStore is the persisted, ordered line storage of the device's
// datasets. Every method holds the dataset's lock for exactly the span of the
// call and releases it on every return path.
type ResourceStore interface {
	// Append writes line plus a terminator at the end of d.
	// Returns ErrInvalidLine for empty or oversized lines and lines
	// containing '\r'/'\n'.
	Append(ctx context.Context, d models.Dataset, line string) error

	// Overwrite atomically replaces the content of mirror dataset d with
	// lines. commit, when non-nil, runs after the new content is in place
	// and before d's lock is released, so callers can re-baseline state in
	// the same lock-scoped region. When commit fails the previous content
	// is put back before the error is returned.
	Overwrite(ctx context.Context, d models.Dataset, lines []string, commit func() error) error

	// ReadTail returns the lines of d starting at index from, stripped of
	// carriage-return/newline remnants. Empty when from >= line count.
	ReadTail(ctx context.Context, d models.Dataset, from int) ([]string, error)

	// Query returns the first line of d containing substring, or "".
	Query(ctx context.Context, d models.Dataset, substring string) (string, error)

	// QueryFunc returns the first line of d for which match returns true, or "".
	QueryFunc(ctx context.Context, d models.Dataset, match func(line string) bool) (string, error)

	// ReadAll returns the raw content of d. Diagnostics only.
	ReadAll(ctx context.Context, d models.Dataset) (string, error)

	// LineCount returns the number of records in d.
	LineCount(ctx context.Context, d models.Dataset) (int, error)

	// ClearAll removes every dataset while holding all dataset locks.
	// before, when non-nil, runs under those locks ahead of any removal and
	// its error aborts the clear with every file left in place.
	ClearAll(ctx context.Context, before func() error) error
}

// OffsetTracker persists, per dataset, how many local lines the remote store
// has already acknowledged.
type OffsetTracker interface {
	// Get returns the offset of d, or 0 when none was recorded.
	Get(ctx context.Context, d models.Dataset) (models.SyncOffset, error)

	// Set records the offset of d.
	Set(ctx context.Context, d models.Dataset, offset models.SyncOffset) error

	// ClearAll forgets every recorded offset.
	ClearAll(ctx context.Context) error
}
