package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSAssetStore keeps record assets as files under root, one file per key.
type FSAssetStore struct {
	root string
}

// NewFSAssetStore returns an [AssetStore] rooted at root.
func NewFSAssetStore(root string) (*FSAssetStore, error) {
	if root == "" {
		return nil, errors.New("asset directory is not set")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("error creating asset directory: %w", err)
	}
	return &FSAssetStore{root: root}, nil
}

func (s *FSAssetStore) PutAsset(_ context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func (s *FSAssetStore) GetAsset(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading asset: %w", err)
	}
	return data, nil
}

func (s *FSAssetStore) DeleteAsset(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing asset: %w", err)
	}
	return nil
}

func (s *FSAssetStore) path(key string) (string, error) {
	if !fs.ValidPath(key) || strings.Contains(key, "\\") {
		return "", fmt.Errorf("invalid asset key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// writeFileAtomic replaces path with data through a temporary sibling and a
// rename, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("error syncing file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("error setting file mode: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error moving file into place: %w", err)
	}
	return nil
}
