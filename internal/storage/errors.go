package storage

import "errors"

// Common storage errors
var (
	// ErrSnapshotNotFound indicates that no directory snapshot has been
	// persisted yet (first boot or wiped database)
	ErrSnapshotNotFound = errors.New("directory snapshot not found")
)
