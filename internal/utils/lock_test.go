package utils

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestRunLockExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tvrarcleanup.lock")

	first := NewRunLock(path)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	second := NewRunLock(path)
	if err := second.Acquire(); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := second.Acquire(); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = second.Release()
}

func TestRunLockRefusesSecondAcquireOnSameInstance(t *testing.T) {
	lock := NewRunLock(filepath.Join(t.TempDir(), "tvrarcleanup.lock"))

	if err := lock.Acquire(); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if err := lock.Acquire(); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning from the holder itself, got %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
	if err := lock.Acquire(); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = lock.Release()
}
