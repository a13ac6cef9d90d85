package runlock_test

import (
	"os"
	"path/filepath"
	"testing"

	"dcmsort/internal/runlock"
)

func TestAcquireCreatesRootAndLockFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "sorted")
	lock, err := runlock.Acquire(root)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lock.Release()

	if _, err := os.Stat(lock.Path()); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}
}

func TestSecondAcquireFails(t *testing.T) {
	root := t.TempDir()
	lock, err := runlock.Acquire(root)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lock.Release()

	if _, err := runlock.Acquire(root); err == nil {
		t.Fatal("expected second acquire to fail while lock is held")
	}
}

func TestReleaseAllowsReacquire(t *testing.T) {
	root := t.TempDir()
	lock, err := runlock.Acquire(root)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	again, err := runlock.Acquire(root)
	if err != nil {
		t.Fatalf("re-Acquire: %v", err)
	}
	defer again.Release()
}
