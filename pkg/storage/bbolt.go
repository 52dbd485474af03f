package storage

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// BboltBackend implements Backend on a bbolt database file.
type BboltBackend struct {
	db *bolt.DB
}

// NewBboltBackend opens (or creates) the database at path.
func NewBboltBackend(path string) (*BboltBackend, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return &BboltBackend{db: db}, nil
}

func (b *BboltBackend) Put(bucket, key, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}

		return bkt.Put(key, value)
	})
}

func (b *BboltBackend) Get(bucket, key []byte) ([]byte, error) {
	var value []byte

	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return nil
		}

		// Copy: bolt values are only valid inside the transaction.
		if v := bkt.Get(key); v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}

		return nil
	})

	return value, err
}

func (b *BboltBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return nil
		}

		return bkt.ForEach(fn)
	})
}

func (b *BboltBackend) Close() error {
	return b.db.Close()
}
