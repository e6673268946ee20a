package filestore

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage() (*Storage, afero.Fs) {
	fsys := afero.NewMemMapFs()
	return New(fsys, "/data/browsers"), fsys
}

func TestStorage_StoreAndLoad(t *testing.T) {
	s, fsys := newTestStorage()
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "abc-123", map[string]string{"admin_token": "t", "admin_user": "{}"}, time.Hour))

	exists, err := afero.Exists(fsys, "/data/browsers/abc-123.json")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := s.Load(ctx, "abc-123", "admin_token", "admin_user")
	require.NoError(t, err)
	assert.Equal(t, "t", got["admin_token"])
	assert.Equal(t, "{}", got["admin_user"])
}

func TestStorage_RemoveDeletesEmptyFile(t *testing.T) {
	s, fsys := newTestStorage()
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "b", map[string]string{"admin_token": "t", "admin_user": "{}"}, 0))
	require.NoError(t, s.Remove(ctx, "b", "admin_token", "admin_user"))

	exists, err := afero.Exists(fsys, "/data/browsers/b.json")
	require.NoError(t, err)
	assert.False(t, exists)

	// Removing again is a no-op.
	require.NoError(t, s.Remove(ctx, "b", "admin_token", "admin_user"))
}

func TestStorage_Expired(t *testing.T) {
	s, _ := newTestStorage()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "b", map[string]string{"admin_token": "t"}, time.Minute))
	now = now.Add(2 * time.Minute)

	got, err := s.Load(ctx, "b", "admin_token")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStorage_CorruptFile(t *testing.T) {
	s, fsys := newTestStorage()
	ctx := context.Background()
	require.NoError(t, fsys.MkdirAll("/data/browsers", 0o700))
	require.NoError(t, afero.WriteFile(fsys, "/data/browsers/b.json", []byte("{not json"), 0o600))

	_, err := s.Load(ctx, "b", "admin_token")
	assert.Error(t, err)

	require.NoError(t, s.Remove(ctx, "b", "admin_token"))
	exists, _ := afero.Exists(fsys, "/data/browsers/b.json")
	assert.False(t, exists)

	require.NoError(t, s.Store(ctx, "b", map[string]string{"admin_token": "t"}, 0))
	got, err := s.Load(ctx, "b", "admin_token")
	require.NoError(t, err)
	assert.Equal(t, "t", got["admin_token"])
}

func TestStorage_RejectsPathTraversal(t *testing.T) {
	s, _ := newTestStorage()
	ctx := context.Background()

	assert.Error(t, s.Store(ctx, "../etc/passwd", map[string]string{"k": "v"}, 0))
	_, err := s.Load(ctx, "a/b", "k")
	assert.Error(t, err)
}
