package models

import "time"

// Scan is a tag read reported by the scan front end.
type Scan struct {
	UID string `json:"uid"`
}

// ScanResult describes the outcome of a scan.
type ScanResult struct {
	UID       string    `json:"uid"`
	Approved  bool      `json:"approved"`
	Entry     string    `json:"entry,omitempty"`
	ScannedAt time.Time `json:"scanned_at"`
}

// Registration is a request to add a person to the pending-registration list.
type Registration struct {
	ID  string `json:"id"`
	UID string `json:"uid"`
}

// Record returns the registration as a [UserRecord].
func (r Registration) Record() UserRecord {
	return UserRecord{ID: r.ID, UID: r.UID}
}
