package storage

import (
	"bytes"
	"testing"
)

// backendTestSuite runs the conformance suite against a Backend
// implementation.
func backendTestSuite(t *testing.T, newBackend func(t *testing.T) Backend) {
	t.Run("PutAndGet", func(t *testing.T) {
		backend := newBackend(t)
		defer backend.Close()

		if err := backend.Put([]byte("runs"), []byte("k1"), []byte("v1")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, err := backend.Get([]byte("runs"), []byte("k1"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("v1")) {
			t.Errorf("Get returned %s, want v1", got)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		backend := newBackend(t)
		defer backend.Close()

		// Missing bucket and missing key both yield nil, nil.
		got, err := backend.Get([]byte("nope"), []byte("k"))
		if err != nil || got != nil {
			t.Errorf("Get on missing bucket = (%v, %v), want (nil, nil)", got, err)
		}

		backend.Put([]byte("runs"), []byte("k1"), []byte("v1"))
		got, err = backend.Get([]byte("runs"), []byte("other"))
		if err != nil || got != nil {
			t.Errorf("Get on missing key = (%v, %v), want (nil, nil)", got, err)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		backend := newBackend(t)
		defer backend.Close()

		backend.Put([]byte("runs"), []byte("k1"), []byte("old"))
		backend.Put([]byte("runs"), []byte("k1"), []byte("new"))

		got, err := backend.Get([]byte("runs"), []byte("k1"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("new")) {
			t.Errorf("Get returned %s, want new", got)
		}
	})

	t.Run("ForEach", func(t *testing.T) {
		backend := newBackend(t)
		defer backend.Close()

		want := map[string]string{"a": "1", "b": "2", "c": "3"}
		for k, v := range want {
			if err := backend.Put([]byte("runs"), []byte(k), []byte(v)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
		}

		collected := make(map[string]string)
		err := backend.ForEach([]byte("runs"), func(k, v []byte) error {
			collected[string(k)] = string(v)
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach failed: %v", err)
		}

		if len(collected) != len(want) {
			t.Errorf("ForEach collected %d items, want %d", len(collected), len(want))
		}
		for k, v := range want {
			if collected[k] != v {
				t.Errorf("key %s = %s, want %s", k, collected[k], v)
			}
		}
	})

	t.Run("ForEachMissingBucket", func(t *testing.T) {
		backend := newBackend(t)
		defer backend.Close()

		err := backend.ForEach([]byte("nope"), func(k, v []byte) error {
			t.Errorf("unexpected entry %s", k)
			return nil
		})
		if err != nil {
			t.Errorf("ForEach on missing bucket failed: %v", err)
		}
	})

	t.Run("ValueIsolation", func(t *testing.T) {
		backend := newBackend(t)
		defer backend.Close()

		value := []byte("original")
		backend.Put([]byte("runs"), []byte("k"), value)
		value[0] = 'X'

		got, err := backend.Get([]byte("runs"), []byte("k"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("original")) {
			t.Errorf("stored value was mutated through the caller's slice: %s", got)
		}
	})
}
