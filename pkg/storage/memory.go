package storage

import "sync"

// MemoryBackend implements Backend with in-memory maps. Not persistent;
// intended for tests and for runs without a configured database.
type MemoryBackend struct {
	buckets map[string]map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		buckets: make(map[string]map[string][]byte),
	}
}

func (m *MemoryBackend) Put(bucket, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, ok := m.buckets[string(bucket)]
	if !ok {
		bkt = make(map[string][]byte)
		m.buckets[string(bucket)] = bkt
	}

	// Copy so later caller mutations don't leak into the store.
	cp := make([]byte, len(value))
	copy(cp, value)
	bkt[string(key)] = cp

	return nil
}

func (m *MemoryBackend) Get(bucket, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, ok := m.buckets[string(bucket)]
	if !ok {
		return nil, nil
	}

	value, ok := bkt[string(key)]
	if !ok {
		return nil, nil
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	return cp, nil
}

func (m *MemoryBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for k, v := range m.buckets[string(bucket)] {
		if err := fn([]byte(k), v); err != nil {
			return err
		}
	}

	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
