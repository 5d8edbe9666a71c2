package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zargony/touch-n-drink/internal/models"
	"github.com/zargony/touch-n-drink/internal/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestSnapshot_SaveAndLoad(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	snapshot := &models.Snapshot{
		Users: []models.User{
			{ID: 1, Name: "Alice", TagIDs: []models.TagID{"04a1b2c3"}},
		},
		Articles: []models.Article{
			{ID: "1", Name: "Cola", Price: 150},
		},
		LastRefreshed: time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC),
		Generation:    7,
	}

	require.NoError(t, s.SaveSnapshot(ctx, snapshot))

	loaded, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Users, loaded.Users)
	assert.Equal(t, snapshot.Articles, loaded.Articles)
	assert.True(t, snapshot.LastRefreshed.Equal(loaded.LastRefreshed))
	assert.Equal(t, uint64(7), loaded.Generation)
}

func TestSnapshot_LoadEmpty(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)
}

func TestSnapshot_SaveReplaces(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, &models.Snapshot{Generation: 1}))
	require.NoError(t, s.SaveSnapshot(ctx, &models.Snapshot{Generation: 2}))

	loaded, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), loaded.Generation)
}
