// Package runlock serializes sort runs against a target tree. The
// collision check and the subsequent placement are not atomic, so two
// concurrent runs could overwrite each other; an advisory lock file under
// the target root keeps the single-writer assumption honest across
// processes.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".dcmsort.lock"

// Lock holds the advisory lock for one run.
type Lock struct {
	fl   *flock.Flock
	path string
}

// Acquire takes a non-blocking lock under targetRoot, creating the
// directory if needed. A held lock means another run is in progress.
func Acquire(targetRoot string) (*Lock, error) {
	if targetRoot == "" || targetRoot == "." {
		targetRoot = "."
	} else if err := os.MkdirAll(targetRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create target root %q: %w", targetRoot, err)
	}

	path := filepath.Join(targetRoot, lockFileName)
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("another sort is already running against %s", targetRoot)
	}
	return &Lock{fl: fl, path: path}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock and removes the lock file. Removal is best effort;
// a leftover empty lock file does not block future runs.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	err := l.fl.Unlock()
	_ = os.Remove(l.path)
	return err
}
