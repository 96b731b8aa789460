// Package lock keeps two runs from writing into the same output directory.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld is returned when another process holds the lock.
var ErrHeld = errors.New("lock held by another run")

// RunLock is an exclusive advisory lock tied to an output directory. The lock
// file lives beside the directory so it never lands in a bucket.
type RunLock struct {
	flock *flock.Flock
	path  string
}

func PathFor(outDir string) string {
	clean := filepath.Clean(outDir)
	return filepath.Join(filepath.Dir(clean), "."+filepath.Base(clean)+".lock")
}

func New(outDir string) *RunLock {
	path := PathFor(outDir)
	return &RunLock{flock: flock.New(path), path: path}
}

func (l *RunLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking.
func (l *RunLock) Acquire() error {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	if !acquired {
		return ErrHeld
	}
	return nil
}

// Release unlocks and removes the lock file.
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file %s: %w", l.path, err)
	}
	return nil
}
