// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// MaxLineLength is the longest line a dataset accepts, terminator excluded.
const MaxLineLength = 4 * 1024

// ErrUnknownDataset is returned when a dataset identifier or name does not
// match any of the fixed datasets the device keeps.
var ErrUnknownDataset = errors.New("unknown dataset")

// Dataset identifies one of the three logical logs persisted on the device.
//
// AllowList and PendingList are mirrors: the remote store is authoritative and
// the local copy is fully replaced on every pull. ActivityLog is append-only
// and device-authoritative: it is only ever pushed.
type Dataset uint8

const (
	// AllowList holds approved "id,uid" records.
	AllowList Dataset = iota
	// PendingList holds "id,uid" registration requests awaiting approval.
	PendingList
	// ActivityLog holds free-form scan events.
	ActivityLog
)

// AllDatasets lists every dataset in the fixed order used for bulk locking.
var AllDatasets = []Dataset{AllowList, PendingList, ActivityLog}

// PushDatasets lists the datasets replicated local→remote, in push order.
var PushDatasets = []Dataset{PendingList, ActivityLog}

type datasetInfo struct {
	name     string
	fileName string
	action   string
	mirror   bool
}

var datasets = map[Dataset]datasetInfo{
	AllowList:   {name: "allow_list", fileName: "allow_list.csv", mirror: true},
	PendingList: {name: "pending_list", fileName: "pending_list.csv", action: "addMultipleUsers", mirror: true},
	ActivityLog: {name: "activity_log", fileName: "activity_log.csv", action: "addMultipleLogs"},
}

// Valid reports whether d is one of the known datasets.
func (d Dataset) Valid() bool {
	_, ok := datasets[d]
	return ok
}

// String returns the dataset name, which doubles as its offset key.
func (d Dataset) String() string {
	if info, ok := datasets[d]; ok {
		return info.name
	}
	return fmt.Sprintf("dataset(%d)", uint8(d))
}

// OffsetKey returns the key under which the dataset's sync offset is persisted.
func (d Dataset) OffsetKey() string {
	return d.String()
}

// FileName returns the name of the file backing the dataset.
func (d Dataset) FileName() string {
	return datasets[d].fileName
}

// RemoteAction returns the query action the remote store expects when a batch
// of this dataset is submitted. Empty for datasets that are never pushed.
func (d Dataset) RemoteAction() string {
	return datasets[d].action
}

// IsMirror reports whether the dataset is fully replaced from the remote on pull.
func (d Dataset) IsMirror() bool {
	return datasets[d].mirror
}

// ParseDataset resolves a dataset by its name.
func ParseDataset(name string) (Dataset, error) {
	for d, info := range datasets {
		if info.name == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}
