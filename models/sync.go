package models

import "time"

// UserLists is the retrieval document served by the remote store: two named
// record groups, each an array of ["id","uid"] tuples.
type UserLists struct {
	Approved []UserRecord `json:"approved"`
	Pending  []UserRecord `json:"pending"`
}

// SyncOffset counts the local lines of a dataset already acknowledged by the
// remote store.
type SyncOffset = uint16

// CycleReport summarises one completed sync cycle.
type CycleReport struct {
	// Pushed holds the number of lines acknowledged per pushed dataset.
	Pushed map[Dataset]int
	// Approved and Pending are the sizes of the mirrored lists after pull.
	Approved int
	Pending  int
	// PushAttempts and PullAttempts count whole-phase attempts, 1 when the
	// phase succeeded on the first try.
	PushAttempts int
	PullAttempts int
	// Exhausted lists datasets skipped because their offset range is used up.
	Exhausted []Dataset
	StartedAt time.Time
	Duration  time.Duration
}
