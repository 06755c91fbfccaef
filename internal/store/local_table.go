package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-diary/internal/entity"
	"github.com/MKhiriev/go-diary/internal/logger"
)

const (
	columnDeleted  = "deleted"
	columnModified = "modified"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// tableSchema maps an entity type onto its SQLite table.
type tableSchema[T entity.Syncable] struct {
	recordType string
	table      string
	key        string
	// columns lists every column, key first; values must follow the same
	// order.
	columns []string
	scan    func(row rowScanner) (T, error)
	values  func(e T) []any

	// afterUpsert and afterDelete run inside the transaction after the row
	// was written; an error rolls the transaction back.
	afterUpsert func(e T) error
	afterDelete func(key string) error
}

// LocalTable is the local store view of one entity type.
type LocalTable[T entity.Syncable] struct {
	db     *DB
	schema tableSchema[T]
	logger *logger.Logger
}

func newLocalTable[T entity.Syncable](db *DB, schema tableSchema[T], log *logger.Logger) *LocalTable[T] {
	return &LocalTable[T]{db: db, schema: schema, logger: log}
}

// RecordType returns the remote record type stored in the table.
func (t *LocalTable[T]) RecordType() string {
	return t.schema.recordType
}

// Update runs fn inside a single transaction. The transaction commits when
// fn returns nil and rolls back otherwise.
func (t *LocalTable[T]) Update(ctx context.Context, fn func(tx TableTx[T]) error) error {
	log := logger.FromContext(ctx)

	sqlTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "LocalTable.Update").
			Str("table", t.schema.table).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer sqlTx.Rollback()

	if err = fn(&tableTx[T]{table: t, tx: sqlTx}); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		log.Err(err).
			Str("func", "LocalTable.Update").
			Str("table", t.schema.table).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// Get returns the entity stored under key.
func (t *LocalTable[T]) Get(ctx context.Context, key string) (T, error) {
	var (
		found T
		ok    bool
	)
	err := t.Update(ctx, func(tx TableTx[T]) error {
		var err error
		found, ok, err = tx.Get(ctx, key)
		return err
	})
	if err != nil {
		return found, err
	}
	if !ok {
		return found, fmt.Errorf("%w: %s %s", ErrEntityNotFound, t.schema.table, key)
	}
	return found, nil
}

// Pending snapshots the local change set in one read transaction.
//
// Tombstones modified before tombstoneCutoff are returned as deletes; every
// other entity modified after since is returned as an upsert, live or not.
// A key is never returned in both lists.
func (t *LocalTable[T]) Pending(ctx context.Context, since, tombstoneCutoff time.Time) (PendingChanges[T], error) {
	log := logger.FromContext(ctx)

	var pending PendingChanges[T]

	sqlTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "LocalTable.Pending").Str("table", t.schema.table).Msg("failed to begin transaction")
		return pending, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer sqlTx.Rollback()

	cutoff := tombstoneCutoff.UnixNano()
	expired := sq.And{sq.Eq{columnDeleted: 1}, sq.Lt{columnModified: cutoff}}
	notExpired := sq.Or{sq.NotEq{columnDeleted: 1}, sq.GtOrEq{columnModified: cutoff}}

	upserts := t.db.builder.
		Select(t.schema.columns...).
		From(t.schema.table).
		Where(notExpired).
		OrderBy(t.schema.key)
	// before the first sync every row is pending
	if !since.IsZero() {
		upserts = upserts.Where(sq.Gt{columnModified: since.UnixNano()})
	}

	query, args, err := upserts.ToSql()
	if err != nil {
		return pending, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if pending.Upserts, err = t.queryEntities(ctx, sqlTx, query, args...); err != nil {
		log.Err(err).Str("func", "LocalTable.Pending").Str("table", t.schema.table).Msg("failed to select pending upserts")
		return pending, err
	}

	query, args, err = t.db.builder.
		Select(t.schema.key).
		From(t.schema.table).
		Where(expired).
		OrderBy(t.schema.key).
		ToSql()
	if err != nil {
		return pending, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := sqlTx.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "LocalTable.Pending").Str("table", t.schema.table).Msg("failed to select expired tombstones")
		return pending, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return pending, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		pending.Deletes = append(pending.Deletes, key)
	}
	if err = rows.Err(); err != nil {
		return pending, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	log.Debug().
		Str("func", "LocalTable.Pending").
		Str("table", t.schema.table).
		Int("upserts", len(pending.Upserts)).
		Int("deletes", len(pending.Deletes)).
		Msg("local change set collected")

	return pending, nil
}

// Purge physically removes the entities stored under keys.
func (t *LocalTable[T]) Purge(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	return t.Update(ctx, func(tx TableTx[T]) error {
		for _, key := range keys {
			if err := tx.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns every entity matching where, ordered by orderBy.
func (t *LocalTable[T]) List(ctx context.Context, where sq.Sqlizer, orderBy string) ([]T, error) {
	builder := t.db.builder.Select(t.schema.columns...).From(t.schema.table).OrderBy(orderBy)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return t.queryEntities(ctx, t.db, query, args...)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (t *LocalTable[T]) queryEntities(ctx context.Context, q queryer, query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, scanErr := t.schema.scan(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return items, nil
}

// tableTx implements [TableTx] over an open *sql.Tx.
type tableTx[T entity.Syncable] struct {
	table *LocalTable[T]
	tx    *sql.Tx
}

func (x *tableTx[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	s := x.table.schema

	query, args, err := x.table.db.builder.
		Select(s.columns...).
		From(s.table).
		Where(sq.Eq{s.key: key}).
		ToSql()
	if err != nil {
		return zero, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := s.scan(x.tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return item, true, nil
}

func (x *tableTx[T]) Upsert(ctx context.Context, e T) error {
	s := x.table.schema

	updates := make([]string, 0, len(s.columns)-1)
	for _, col := range s.columns[1:] {
		updates = append(updates, col+" = excluded."+col)
	}

	query, args, err := x.table.db.builder.
		Insert(s.table).
		Columns(s.columns...).
		Values(s.values(e)...).
		Suffix(fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s", s.key, strings.Join(updates, ", "))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = x.tx.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "tableTx.Upsert").
			Str("table", s.table).
			Str("key", e.PrimaryKey()).
			Msg("failed to upsert entity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if s.afterUpsert != nil {
		return s.afterUpsert(e)
	}
	return nil
}

func (x *tableTx[T]) Delete(ctx context.Context, key string) error {
	s := x.table.schema

	query, args, err := x.table.db.builder.
		Delete(s.table).
		Where(sq.Eq{s.key: key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = x.tx.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "tableTx.Delete").
			Str("table", s.table).
			Str("key", key).
			Msg("failed to delete entity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if s.afterDelete != nil {
		return s.afterDelete(key)
	}
	return nil
}

func fromUnixNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
