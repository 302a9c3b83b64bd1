package store

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const dataDirLockName = ".device.lock"

// LockDataDir takes an exclusive advisory lock on dir so that only one agent
// process owns the datasets stored there. The returned lock must be released
// with Unlock on shutdown.
func LockDataDir(dir string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(dir, dataDirLockName))

	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: lock data dir %s: %w", ErrStorageOpen, dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrDataDirLocked, dir)
	}

	return lock, nil
}
