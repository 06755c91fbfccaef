package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-diary/models"
)

// RecordRow is a record as kept by [RecordRepository]. The asset body lives
// in an [AssetStore] under AssetKey.
type RecordRow struct {
	models.Record

	// AssetKey is empty when the record carries no asset.
	AssetKey      string
	AssetChecksum string
}

// RecordRepository persists the records of every owner in PostgreSQL.
type RecordRepository interface {
	// Query returns up to q.Limit records of q.RecordType modified after
	// q.ModifiedAfter, continuing from q.Cursor. The returned cursor is
	// empty on the last page.
	Query(ctx context.Context, ownerID int64, q models.Query) ([]RecordRow, string, error)

	// Modify saves and deletes records of one type in a single transaction.
	// It returns the saved rows with their new modification time and the
	// asset keys no row references any longer.
	Modify(ctx context.Context, ownerID int64, recordType, savePolicy string, save []RecordRow, deleteNames []string) ([]RecordRow, []string, error)

	// IsRetryable reports whether err is a transient database failure.
	IsRetryable(err error) bool
}

// AssetStore keeps record asset bodies by key.
type AssetStore interface {
	PutAsset(ctx context.Context, key string, data []byte) error
	// GetAsset returns [ErrAssetNotFound] for a missing key.
	GetAsset(ctx context.Context, key string) ([]byte, error)
	// DeleteAsset succeeds for a missing key.
	DeleteAsset(ctx context.Context, key string) error
}

// RecordStorage combines [RecordRepository] and [AssetStore] into the
// record service persistence used by the service layer.
type RecordStorage interface {
	Query(ctx context.Context, ownerID int64, q models.Query) (models.QueryPage, error)
	Modify(ctx context.Context, ownerID int64, req models.ModifyRequest) (models.ModifyResult, error)
	IsRetryable(err error) bool
}
