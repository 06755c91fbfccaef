package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/migrations"
)

// DB is a database handle shared by the repositories of one side. builder
// carries the placeholder format of the driver.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	builder            sq.StatementBuilderType
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database call may succeed when
// repeated.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// IsRetryable reports whether err was classified as transient.
func (db *DB) IsRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

// MigrateClient applies the local store schema.
func (db *DB) MigrateClient() error {
	return migrations.MigrateClient(db.DB)
}

// MigrateServer applies the record service schema.
func (db *DB) MigrateServer() error {
	return migrations.MigrateServer(db.DB)
}
