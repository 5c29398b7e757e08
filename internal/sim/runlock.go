package sim

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning indicates another run holds the lock for the same
// events file.
var ErrAlreadyRunning = errors.New("another run is already writing this events file")

// RunLock is an exclusive file lock held for the duration of a run so
// two concurrent runs never interleave records in one events log.
type RunLock struct {
	lock *flock.Flock
}

// AcquireRunLock takes the lock at path without blocking. Uses
// gofrs/flock for cross-platform behavior and to avoid the TOCTOU
// race a check-then-create PID file would have.
func AcquireRunLock(path string) (*RunLock, error) {
	l := flock.New(path)
	locked, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring run lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}
	return &RunLock{lock: l}, nil
}

// Release drops the lock. Safe to call on a released lock.
func (r *RunLock) Release() {
	if r.lock != nil {
		_ = r.lock.Unlock()
	}
}
