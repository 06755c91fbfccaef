package store

import (
	"context"

	"github.com/MKhiriev/go-diary/internal/entity"
)

// TableTx is the view of one entity table inside an open local transaction.
type TableTx[T entity.Syncable] interface {
	// Get returns the entity stored under key and whether it exists.
	Get(ctx context.Context, key string) (T, bool, error)

	// Upsert inserts e or overwrites every field of the stored entity.
	Upsert(ctx context.Context, e T) error

	// Delete physically removes the entity stored under key. Deleting a
	// missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// PendingChanges is the local change set of one table awaiting upload.
type PendingChanges[T entity.Syncable] struct {
	// Upserts holds entities, tombstones included, written after the
	// watermark.
	Upserts []T

	// Deletes holds keys of tombstones older than the grace period.
	Deletes []string
}
