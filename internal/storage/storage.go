// Package storage defines the local persistence interface of the terminal.
// The only persisted state is the last directory snapshot, so a rebooted
// terminal can serve purchases before its first refresh completes (the hard
// TTL fail-closed rule still applies to the restored snapshot's age).
package storage

import (
	"context"

	"github.com/zargony/touch-n-drink/internal/models"
)

//go:generate moq -out storage_mock.go . SnapshotStore

// SnapshotStore persists directory snapshots across restarts.
type SnapshotStore interface {
	// SaveSnapshot stores the given snapshot, replacing any previous one.
	SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error

	// LoadSnapshot returns the stored snapshot.
	// Returns ErrSnapshotNotFound if none has been stored yet.
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)
}
