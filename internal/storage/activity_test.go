package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOpen_OrdersMostRecentFirst(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, WithClock(steppingClock()))
	ctx := context.Background()

	for _, p := range []string{"a.md", "b.md", "c.md", "a.md"} {
		require.NoError(t, store.RecordOpen(ctx, p))
	}

	files, err := store.RecentFiles(ctx, 10)
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"a.md", "c.md", "b.md"}, paths)
	assert.Equal(t, 2, files[0].OpenCount)
	assert.Equal(t, 1, files[1].OpenCount)
}

func TestRecentFiles_Limit(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, WithClock(steppingClock()))
	ctx := context.Background()

	for _, p := range []string{"a.md", "b.md", "c.md"} {
		require.NoError(t, store.RecordOpen(ctx, p))
	}

	files, err := store.RecentFiles(ctx, 2)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "c.md", files[0].Path)
	assert.Equal(t, "b.md", files[1].Path)

	files, err = store.RecentFiles(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRecordOpen_EmptyPath(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	assert.Error(t, store.RecordOpen(context.Background(), ""))
}

func TestForgetFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, WithClock(steppingClock()))
	ctx := context.Background()

	require.NoError(t, store.RecordOpen(ctx, "a.md"))
	require.NoError(t, store.RecordOpen(ctx, "b.md"))
	require.NoError(t, store.ForgetFile(ctx, "a.md"))
	require.NoError(t, store.ForgetFile(ctx, "missing.md"))

	files, err := store.RecentFiles(ctx, 10)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "b.md", files[0].Path)
}
