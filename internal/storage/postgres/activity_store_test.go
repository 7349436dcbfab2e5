package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-telemetry-lab/internal/domain"
	"activity-telemetry-lab/internal/storage"
)

func TestActivityStore_InsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewActivityStore(pool)
	ctx := context.Background()

	activity := &domain.Activity{
		UploadID:     "upload-001",
		FileName:     "morning_run.fit",
		Format:       "fit",
		RowCount:     1200,
		UploadedAtMs: 1700000000000,
	}

	err := store.Insert(ctx, activity)
	require.NoError(t, err)

	retrieved, err := store.GetByID(ctx, "upload-001")
	require.NoError(t, err)

	assert.Equal(t, activity.UploadID, retrieved.UploadID)
	assert.Equal(t, activity.FileName, retrieved.FileName)
	assert.Equal(t, activity.Format, retrieved.Format)
	assert.Equal(t, activity.RowCount, retrieved.RowCount)
	assert.Equal(t, activity.UploadedAtMs, retrieved.UploadedAtMs)
}

func TestActivityStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewActivityStore(pool)
	ctx := context.Background()

	activity := &domain.Activity{
		UploadID:     "upload-dup",
		FileName:     "ride.tcx",
		Format:       "tcx",
		RowCount:     33,
		UploadedAtMs: 1700000000000,
	}

	err := store.Insert(ctx, activity)
	require.NoError(t, err)

	err = store.Insert(ctx, activity)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestActivityStore_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewActivityStore(pool)
	ctx := context.Background()

	_, err := store.GetByID(ctx, "no-such-upload")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestActivityStore_ListNewestFirst(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewActivityStore(pool)
	ctx := context.Background()

	uploads := []*domain.Activity{
		{UploadID: "upload-a", FileName: "a.fit", Format: "fit", RowCount: 10, UploadedAtMs: 1700000001000},
		{UploadID: "upload-b", FileName: "b.tcx", Format: "tcx", RowCount: 20, UploadedAtMs: 1700000003000},
		{UploadID: "upload-c", FileName: "c.fit", Format: "fit", RowCount: 30, UploadedAtMs: 1700000002000},
	}
	for _, a := range uploads {
		require.NoError(t, store.Insert(ctx, a))
	}

	listed, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	assert.Equal(t, "upload-b", listed[0].UploadID)
	assert.Equal(t, "upload-c", listed[1].UploadID)
	assert.Equal(t, "upload-a", listed[2].UploadID)
}

func TestActivityStore_ListLimit(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewActivityStore(pool)
	ctx := context.Background()

	for _, a := range []*domain.Activity{
		{UploadID: "upload-1", FileName: "1.fit", Format: "fit", RowCount: 1, UploadedAtMs: 1700000001000},
		{UploadID: "upload-2", FileName: "2.fit", Format: "fit", RowCount: 2, UploadedAtMs: 1700000002000},
	} {
		require.NoError(t, store.Insert(ctx, a))
	}

	listed, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "upload-2", listed[0].UploadID)
}
