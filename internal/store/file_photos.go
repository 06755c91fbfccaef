package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-diary/internal/entity"
)

// PhotoFiles stores photo JPEGs under root/yyyyMMdd/NNN.jpg.
type PhotoFiles struct {
	root string
}

// NewPhotoFiles returns a photo file store rooted at root.
func NewPhotoFiles(root string) *PhotoFiles {
	return &PhotoFiles{root: root}
}

// Root returns the document root.
func (f *PhotoFiles) Root() string {
	return f.root
}

// ReadPhoto returns the JPEG bytes of the photo id.
func (f *PhotoFiles) ReadPhoto(id string) ([]byte, error) {
	path, err := entity.PhotoPath(f.root, id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
		}
		return nil, fmt.Errorf("error reading photo file: %w", err)
	}
	return data, nil
}

// WritePhoto replaces the JPEG of the photo id with data. Writing the same
// bytes twice leaves the same file.
func (f *PhotoFiles) WritePhoto(id string, data []byte) error {
	path, err := entity.PhotoPath(f.root, id)
	if err != nil {
		return err
	}
	if err = writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("error writing photo %s: %w", id, err)
	}
	return nil
}

// RemovePhoto deletes the JPEG of the photo id. A missing file is not an
// error. The date directory is removed once it is empty.
func (f *PhotoFiles) RemovePhoto(id string) error {
	path, err := entity.PhotoPath(f.root, id)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing photo file: %w", err)
	}

	// fails while other photos of the day remain
	_ = os.Remove(filepath.Dir(path))
	return nil
}
