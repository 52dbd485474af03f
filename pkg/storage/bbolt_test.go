package storage

import (
	"path/filepath"
	"testing"
)

func TestBboltBackend(t *testing.T) {
	backendTestSuite(t, func(t *testing.T) Backend {
		backend, err := NewBboltBackend(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("failed to open bbolt backend: %v", err)
		}
		return backend
	})
}
