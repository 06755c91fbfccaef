package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFSAssetStore(t *testing.T) {
	_, err := NewFSAssetStore("")
	assert.Error(t, err)

	root := filepath.Join(t.TempDir(), "assets")
	s, err := NewFSAssetStore(root)
	require.NoError(t, err)
	assert.DirExists(t, root)
	assert.Equal(t, root, s.root)
}

func TestFSAssetStore_RoundTrip(t *testing.T) {
	root := t.TempDir()
	s, err := NewFSAssetStore(root)
	require.NoError(t, err)
	ctx := context.Background()

	key := "7/Photo/20240115%2F001/abc"
	require.NoError(t, s.PutAsset(ctx, key, []byte("first")))
	require.NoError(t, s.PutAsset(ctx, key, []byte("second")))

	data, err := s.GetAsset(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
	assert.FileExists(t, filepath.Join(root, "7", "Photo", "20240115%2F001", "abc"))

	// временные файлы не остаются рядом
	entries, err := os.ReadDir(filepath.Join(root, "7", "Photo", "20240115%2F001"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, s.DeleteAsset(ctx, key))
	_, err = s.GetAsset(ctx, key)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestFSAssetStore_DeleteMissingSucceeds(t *testing.T) {
	s, err := NewFSAssetStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, s.DeleteAsset(context.Background(), "7/Photo/none/sum"))
}

func TestFSAssetStore_RejectsEscapingKeys(t *testing.T) {
	s, err := NewFSAssetStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../outside", "/abs/path", "a/../../b", `a\b`, ""} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, s.PutAsset(ctx, key, []byte("x")))
			_, err := s.GetAsset(ctx, key)
			assert.Error(t, err)
			assert.Error(t, s.DeleteAsset(ctx, key))
		})
	}
}
