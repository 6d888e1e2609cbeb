package review

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "review.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveCheckpoint(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	value := "Jonathan Smith"
	editedAt := time.Now().UTC()
	cp := Checkpoint{
		ResultID: "extraction-1",
		SavedAt:  time.Now().UTC(),
		Fields: []FieldDelta{
			{VehicleID: "v1", FieldName: "Owner Name", Value: &value, Edited: true, EditedAt: &editedAt},
			{VehicleID: "v1", FieldName: "Make", Value: nil, Edited: true, EditedAt: &editedAt},
		},
	}

	require.NoError(t, store.SaveCheckpoint(ctx, cp))

	n, err := store.CheckpointCount(ctx, "extraction-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSaveCheckpointAppends(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	cp := Checkpoint{ResultID: "extraction-2", SavedAt: time.Now().UTC()}
	require.NoError(t, store.SaveCheckpoint(ctx, cp))
	require.NoError(t, store.SaveCheckpoint(ctx, cp))

	n, err := store.CheckpointCount(ctx, "extraction-2")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	other, err := store.CheckpointCount(ctx, "extraction-3")
	require.NoError(t, err)
	assert.Equal(t, 0, other)
}

func TestNoopStoreHonorsContext(t *testing.T) {
	s := &NoopStore{Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.SaveCheckpoint(ctx, Checkpoint{}), context.Canceled)
}
