package service

import "errors"

var (
	// ErrSyncAlreadyRunning is returned when a cycle or wipe is requested
	// while another one holds the engine.
	ErrSyncAlreadyRunning = errors.New("sync cycle already running")
	// ErrOffsetExhausted is returned when a dataset grows past the range of
	// a sync offset. The dataset must be wiped before it can sync again.
	ErrOffsetExhausted = errors.New("sync offset exhausted")
	// ErrAlreadyRegistered is returned when a registration id is already
	// present in PendingList or AllowList.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrInvalidDataProvided is returned for empty ids, uids or entries and
	// for values that contain separators.
	ErrInvalidDataProvided = errors.New("invalid data provided")
	// ErrVersionIsNotSpecified is returned when the agent is built without
	// a version.
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// errPartialBatch marks a push the remote store did not fully accept.
	errPartialBatch = errors.New("remote store accepted a partial batch")
)
