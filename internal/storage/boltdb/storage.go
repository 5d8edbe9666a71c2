// Package boltdb implements the terminal's local persistence on BoltDB.
package boltdb

import (
	"fmt"

	"go.etcd.io/bbolt"
)

// BoltDB bucket names
var (
	bucketDirectory = []byte("directory")
)

// Storage represents the BoltDB storage of the terminal
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets creates the required buckets if they don't exist yet
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketDirectory); err != nil {
			return fmt.Errorf("failed to create directory bucket: %w", err)
		}
		return nil
	})
}
