// Package storage provides the key-value persistence surface used to keep
// completed analysis runs, with a bbolt implementation for durable history
// and an in-memory implementation for tests.
package storage

import "encoding/json"

// Backend is the minimal bucketed key-value store run persistence needs.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Put stores a value under bucket/key, creating the bucket on demand.
	Put(bucket, key, value []byte) error

	// Get retrieves a value. A missing bucket or key yields (nil, nil).
	Get(bucket, key []byte) ([]byte, error)

	// ForEach iterates every key-value pair in a bucket. A missing bucket
	// iterates nothing.
	ForEach(bucket []byte, fn func(k, v []byte) error) error

	Close() error
}

// EncodeJSON serializes a value for storage.
func EncodeJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeJSON deserializes a stored value.
func DecodeJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
