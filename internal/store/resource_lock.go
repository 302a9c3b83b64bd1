package store

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-attendance-sync/models"
)

// Locker guards dataset files. Lock and Unlock scope a single storage call;
// LockAll/UnlockAll are used only by bulk maintenance.
type Locker interface {
	Lock(d models.Dataset) error
	Unlock(d models.Dataset)
	LockAll()
	UnlockAll()
}

// ResourceLocks owns one non-reentrant mutex per dataset. The map is filled
// once at construction and never reallocated.
type ResourceLocks struct {
	mutexes map[models.Dataset]*sync.Mutex
}

// NewResourceLocks creates a mutex for every dataset in [models.AllDatasets].
func NewResourceLocks() *ResourceLocks {
	mutexes := make(map[models.Dataset]*sync.Mutex, len(models.AllDatasets))
	for _, d := range models.AllDatasets {
		mutexes[d] = new(sync.Mutex)
	}
	return &ResourceLocks{mutexes: mutexes}
}

// Lock acquires the mutex of d. It fails without blocking if d is unknown.
func (l *ResourceLocks) Lock(d models.Dataset) error {
	mu, ok := l.mutexes[d]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrUnknownDataset, d)
	}
	mu.Lock()
	return nil
}

// Unlock releases the mutex of d. Unknown datasets are ignored.
func (l *ResourceLocks) Unlock(d models.Dataset) {
	if mu, ok := l.mutexes[d]; ok {
		mu.Unlock()
	}
}

// LockAll acquires every dataset mutex in [models.AllDatasets] order.
func (l *ResourceLocks) LockAll() {
	for _, d := range models.AllDatasets {
		l.mutexes[d].Lock()
	}
}

// UnlockAll releases every dataset mutex in reverse acquisition order.
func (l *ResourceLocks) UnlockAll() {
	for i := len(models.AllDatasets) - 1; i >= 0; i-- {
		l.mutexes[models.AllDatasets[i]].Unlock()
	}
}
