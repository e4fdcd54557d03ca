package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/leitner/internal/fact"
)

func TestFileBackend_LoadMissingStartsEmpty(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "leitner.json"), nil)
	b.now = func() time.Time { return t0 }

	repo, err := b.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, repo.Count())
	require.True(t, repo.CreatedAt().Equal(t0))
}

func TestFileBackend_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "leitner.json")
	b := NewFileBackend(path, nil)
	ctx := context.Background()

	repo := New(t0)
	added := repo.Add(fact.New("What is 2+2?", "4").WithLevel(5))
	require.NoError(t, b.Save(ctx, repo))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.False(t, info.IsDir())

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	require.True(t, loaded.CreatedAt().Equal(t0))
	require.Equal(t, 1, loaded.Count())

	got, err := loaded.Get(added.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Level())
	require.Equal(t, "What is 2+2?", got.Question)
}

func TestFileBackend_SaveOverwritesWithoutLeavingTempFiles(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(filepath.Join(dir, "leitner.json"), nil)
	ctx := context.Background()

	repo := New(t0)
	require.NoError(t, b.Save(ctx, repo))
	repo.Add(fact.New("q", "a"))
	require.NoError(t, b.Save(ctx, repo))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.False(t, strings.HasSuffix(entries[0].Name(), ".tmp"))

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Count())
}

func TestFileBackend_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leitner.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileBackend(path, nil).Load(context.Background())
	require.Error(t, err)
}

func TestFileBackend_CancelledContext(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "leitner.json"), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, b.Save(ctx, New(t0)), context.Canceled)
}
