package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/zargony/touch-n-drink/internal/models"
	"github.com/zargony/touch-n-drink/internal/storage"
)

const keySnapshot = "snapshot"

var _ storage.SnapshotStore = (*Storage)(nil)

// SaveSnapshot stores the directory snapshot, replacing any previous one
func (s *Storage) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDirectory)
		if bucket == nil {
			return fmt.Errorf("directory bucket not found")
		}
		return bucket.Put([]byte(keySnapshot), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the stored directory snapshot
// Returns storage.ErrSnapshotNotFound if none has been stored yet
func (s *Storage) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	var snapshot *models.Snapshot

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDirectory)
		if bucket == nil {
			return fmt.Errorf("directory bucket not found")
		}

		data := bucket.Get([]byte(keySnapshot))
		if data == nil {
			return storage.ErrSnapshotNotFound
		}

		snapshot = &models.Snapshot{}
		if err := json.Unmarshal(data, snapshot); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}
