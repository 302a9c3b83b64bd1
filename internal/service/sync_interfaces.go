package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-attendance-sync/models"
)

//go:generate mockgen -source=sync_interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncEngine runs replication cycles between the local datasets and the
// remote store. At most one cycle runs at a time.
type SyncEngine interface {
	// RunCycle pushes the unsynced tails of PendingList and ActivityLog and then
	// mirrors the remote approved and pending lists into AllowList and
	// PendingList. Remote failures are retried after a forced reconnect until
	// the cycle succeeds or ctx is cancelled. Local storage and offset failures
	// end the cycle and are returned.
	//
	// Returns ErrSyncAlreadyRunning without touching any dataset or offset
	// when another cycle or a wipe is in progress.
	RunCycle(ctx context.Context) (models.CycleReport, error)

	// Wipe clears every dataset and every offset together. It fails with
	// ErrSyncAlreadyRunning while a cycle is running.
	Wipe(ctx context.Context) error

	// Running reports whether a cycle is currently in progress.
	Running() bool

	// Exhausted lists the datasets the last cycle could not push because
	// their offset range is used up. Only a wipe recovers them.
	Exhausted() []models.Dataset
}

// AttendanceService is the foreground query surface used by the scan and
// registration front end. Every call is synchronous and lock-scoped.
type AttendanceService interface {
	// IsRegistered reports whether id appears as the id field of a record in
	// PendingList or AllowList.
	IsRegistered(ctx context.Context, id string) (bool, error)

	// IsApproved reports whether uid appears as the uid field of a record in
	// AllowList.
	IsApproved(ctx context.Context, uid string) (bool, error)

	// AddPendingRegistration appends "id,uid" to PendingList. Returns
	// ErrAlreadyRegistered if id is already known.
	AddPendingRegistration(ctx context.Context, id, uid string) error

	// AppendActivity appends one entry to ActivityLog.
	AppendActivity(ctx context.Context, entry string) error

	// HandleScan records an activity entry for an approved uid and reports
	// whether the uid was approved.
	HandleScan(ctx context.Context, uid string) (models.ScanResult, error)

	// ReadDataset returns the raw content of d.
	ReadDataset(ctx context.Context, d models.Dataset) (string, error)
}

// SyncJob drives the SyncEngine in the background.
type SyncJob interface {
	// Start launches the background goroutine. It runs a cycle every interval,
	// defaulting to 5 minutes if interval is zero or negative, and whenever
	// Trigger is called. Any previously running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Trigger requests an immediate cycle without blocking. Requests made
	// while one is already pending are coalesced.
	Trigger()

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// AppInfoService exposes build information of the running agent.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
