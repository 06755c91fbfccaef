package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
)

// Storages groups the record service persistence.
type Storages struct {
	RecordStorage RecordStorage

	db *DB
}

// NewStorages connects to PostgreSQL, applies the record service schema and
// opens the configured asset store.
func NewStorages(ctx context.Context, cfg config.ServerStorage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.MigrateServer(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	assets, err := NewAssetStore(ctx, cfg.Assets)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		RecordStorage: NewRecordStorage(NewRecordRepository(db, log), assets, log),
		db:            db,
	}, nil
}

// NewAssetStore opens the asset store selected by cfg.Backend.
func NewAssetStore(ctx context.Context, cfg config.Assets) (AssetStore, error) {
	switch cfg.Backend {
	case config.AssetsBackendFS, "":
		return NewFSAssetStore(cfg.Dir)
	case config.AssetsBackendS3:
		return NewS3AssetStore(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown asset backend %q", cfg.Backend)
	}
}

// Close closes the database.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
