package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning is returned when another sweep holds the run lock
var ErrAlreadyRunning = errors.New("another tvrarcleanup run is in progress")

// RunLock guards a sweep against concurrent runs on the same config dir,
// whether they come from another process or from this one
type RunLock struct {
	path string

	mu   sync.Mutex
	held *flock.Flock // nil while unlocked
}

// NewRunLock creates a lock backed by the file at path
func NewRunLock(path string) *RunLock {
	return &RunLock{path: path}
}

// Path returns the lock file location
func (l *RunLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. A second Acquire before Release
// fails with ErrAlreadyRunning, even from the same process.
func (l *RunLock) Acquire() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held != nil {
		return ErrAlreadyRunning
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	// A flock instance reports success when it already holds the lock, so
	// every acquisition opens its own
	fileLock := flock.New(l.path)
	ok, err := fileLock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}

	l.held = fileLock
	return nil
}

// Release gives the lock back. Releasing an unlocked RunLock does nothing.
func (l *RunLock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held == nil {
		return nil
	}
	err := l.held.Unlock()
	l.held = nil
	return err
}
