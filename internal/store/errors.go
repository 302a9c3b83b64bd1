package store

import "errors"

// Sentinel errors returned by the storage layer. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrStorageOpen is returned when a dataset file or the data directory
	// cannot be opened or read. It is never folded into an empty result:
	// an empty dataset and an inaccessible one are different outcomes.
	ErrStorageOpen = errors.New("could not access dataset storage")

	// ErrStorageWrite is returned when writing, syncing, renaming or
	// removing a dataset file fails.
	ErrStorageWrite = errors.New("could not write dataset storage")

	// ErrInvalidLine is returned when a line is empty, longer than
	// models.MaxLineLength or contains a line terminator, which would break
	// positional offsets.
	ErrInvalidLine = errors.New("invalid dataset line")

	// ErrNotMirror is returned when a full overwrite targets an
	// append-only dataset.
	ErrNotMirror = errors.New("dataset is append-only and cannot be overwritten")

	// ErrDataDirLocked is returned when another process already owns the
	// data directory.
	ErrDataDirLocked = errors.New("data directory is locked by another process")
)

// Offset tracker errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query or statement fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan sync offset row")

	// ErrCorruptOffset is returned when a persisted offset does not fit the
	// uint16 offset range.
	ErrCorruptOffset = errors.New("persisted sync offset is out of range")
)
