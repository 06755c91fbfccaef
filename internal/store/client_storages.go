package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
)

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.MigrateClient].
//  3. Returns a [LocalStore] whose photos live under cfg.PhotoDir.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*LocalStore, error) {
	log.Info().Msg("opening local diary store...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateClient(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewLocalStore(db, NewPhotoFiles(cfg.PhotoDir), log), nil
}
