// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/models"
)

const recordsTable = "records"

var recordColumns = []string{"record_name", "fields", "asset_key", "asset_checksum", "modified_at"}

// recordRepository is the PostgreSQL implementation of [RecordRepository].
//
// Every statement is scoped by owner_id, so owners never see each other's
// records. modified_at is set by the database with clock_timestamp() on
// every write and drives both the change predicate and the keyset order
// (modified_at, record_name) of query pages.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository returns a [RecordRepository] over db.
func NewRecordRepository(db *DB, log *logger.Logger) RecordRepository {
	return &recordRepository{DB: db, logger: log}
}

// Query implements [RecordRepository]. It fetches one row past the limit to
// learn whether another page exists.
func (r *recordRepository) Query(ctx context.Context, ownerID int64, q models.Query) ([]RecordRow, string, error) {
	log := logger.FromContext(ctx)

	builder := r.builder.
		Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"record_type": q.RecordType}).
		Where(sq.Gt{"modified_at": q.ModifiedAfter}).
		OrderBy("modified_at", "record_name").
		Limit(uint64(q.Limit) + 1)

	if q.Cursor != "" {
		after, err := decodeRecordCursor(q.Cursor)
		if err != nil {
			return nil, "", err
		}
		if after.RecordType != q.RecordType {
			return nil, "", fmt.Errorf("%w: cursor of %q used for %q", ErrInvalidCursor, after.RecordType, q.RecordType)
		}
		builder = builder.Where(sq.Expr("(modified_at, record_name) > (?, ?)", after.ModifiedAt, after.RecordName))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "recordRepository.Query").Msg("failed to create query")
		return nil, "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Query").
			Int64("owner_id", ownerID).
			Str("record_type", q.RecordType).
			Msg("failed to execute query for changed records")
		return nil, "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]RecordRow, 0, q.Limit+1)
	for rows.Next() {
		row, scanErr := scanRecordRow(rows, q.RecordType)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.Query").
				Int64("owner_id", ownerID).
				Msg("failed to scan record row")
			return nil, "", scanErr
		}
		results = append(results, row)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "recordRepository.Query").Msg("error occurred during rows iteration")
		return nil, "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if len(results) <= q.Limit {
		return results, "", nil
	}

	results = results[:q.Limit]
	last := results[len(results)-1]
	next, err := encodeRecordCursor(recordCursor{
		RecordType: q.RecordType,
		ModifiedAt: last.ModifiedAt,
		RecordName: last.RecordName,
	})
	if err != nil {
		return nil, "", err
	}
	return results, next, nil
}

// Modify implements [RecordRepository].
func (r *recordRepository) Modify(ctx context.Context, ownerID int64, recordType, savePolicy string, save []RecordRow, deleteNames []string) ([]RecordRow, []string, error) {
	log := logger.FromContext(ctx)

	conflictClause, err := upsertConflictClause(savePolicy)
	if err != nil {
		return nil, nil, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Modify").
			Int64("owner_id", ownerID).
			Msg("failed to begin transaction")
		return nil, nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var orphaned []string

	saved := make([]RecordRow, 0, len(save))
	for idx, row := range save {
		log.Debug().
			Str("func", "recordRepository.Modify").
			Int("iteration", idx+1).
			Int("total", len(save)).
			Str("record_name", row.RecordName).
			Msg("saving record in transaction")

		previousKey, err := r.lockAssetKey(ctx, tx, ownerID, recordType, row.RecordName)
		if err != nil {
			return nil, nil, err
		}

		stored, err := r.upsert(ctx, tx, ownerID, recordType, conflictClause, row)
		if err != nil {
			log.Err(err).
				Str("func", "recordRepository.Modify").
				Str("record_name", row.RecordName).
				Msg("failed to upsert record")
			return nil, nil, err
		}

		if previousKey != "" && previousKey != stored.AssetKey {
			orphaned = append(orphaned, previousKey)
		}
		saved = append(saved, stored)
	}

	if len(deleteNames) > 0 {
		keys, err := r.delete(ctx, tx, ownerID, recordType, deleteNames)
		if err != nil {
			log.Err(err).
				Str("func", "recordRepository.Modify").
				Int("count", len(deleteNames)).
				Msg("failed to delete records")
			return nil, nil, err
		}
		orphaned = append(orphaned, keys...)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "recordRepository.Modify").
			Int64("owner_id", ownerID).
			Msg("failed to commit transaction")
		return nil, nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return saved, orphaned, nil
}

func (r *recordRepository) lockAssetKey(ctx context.Context, tx *sql.Tx, ownerID int64, recordType, name string) (string, error) {
	query, args, err := r.builder.
		Select("asset_key").
		From(recordsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"record_type": recordType}).
		Where(sq.Eq{"record_name": name}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var key sql.NullString
	err = tx.QueryRowContext(ctx, query, args...).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return key.String, nil
}

func (r *recordRepository) upsert(ctx context.Context, tx *sql.Tx, ownerID int64, recordType, conflictClause string, row RecordRow) (RecordRow, error) {
	fields := row.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return RecordRow{}, fmt.Errorf("error encoding record fields: %w", err)
	}

	query, args, err := r.builder.
		Insert(recordsTable).
		Columns("owner_id", "record_type", "record_name", "fields", "asset_key", "asset_checksum", "modified_at").
		Values(ownerID, recordType, row.RecordName, string(encoded), nullString(row.AssetKey), nullString(row.AssetChecksum), sq.Expr("clock_timestamp()")).
		Suffix(conflictClause).
		Suffix("RETURNING record_name, fields, asset_key, asset_checksum, modified_at").
		ToSql()
	if err != nil {
		return RecordRow{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return scanRecordRow(tx.QueryRowContext(ctx, query, args...), recordType)
}

func (r *recordRepository) delete(ctx context.Context, tx *sql.Tx, ownerID int64, recordType string, names []string) ([]string, error) {
	query, args, err := r.builder.
		Delete(recordsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"record_type": recordType}).
		Where(sq.Eq{"record_name": names}).
		Suffix("RETURNING asset_key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key sql.NullString
		if err = rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if key.Valid && key.String != "" {
			keys = append(keys, key.String)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return keys, nil
}

// upsertConflictClause returns the ON CONFLICT clause of a save policy.
// changed_keys merges the sent keys into the stored fields and keeps the
// stored asset when none is sent; all_keys replaces both.
func upsertConflictClause(savePolicy string) (string, error) {
	const target = "ON CONFLICT (owner_id, record_type, record_name) DO UPDATE SET "

	switch savePolicy {
	case models.SavePolicyChangedKeys, "":
		return target + "fields = records.fields || EXCLUDED.fields, " +
			"asset_key = COALESCE(EXCLUDED.asset_key, records.asset_key), " +
			"asset_checksum = COALESCE(EXCLUDED.asset_checksum, records.asset_checksum), " +
			"modified_at = EXCLUDED.modified_at", nil
	case models.SavePolicyAllKeys:
		return target + "fields = EXCLUDED.fields, " +
			"asset_key = EXCLUDED.asset_key, " +
			"asset_checksum = EXCLUDED.asset_checksum, " +
			"modified_at = EXCLUDED.modified_at", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrSavePolicyUnknown, savePolicy)
	}
}

func scanRecordRow(row rowScanner, recordType string) (RecordRow, error) {
	var (
		result   = RecordRow{Record: models.Record{RecordType: recordType}}
		fields   []byte
		key      sql.NullString
		checksum sql.NullString
	)

	if err := row.Scan(&result.RecordName, &fields, &key, &checksum, &result.ModifiedAt); err != nil {
		return RecordRow{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if err := json.Unmarshal(fields, &result.Fields); err != nil {
		return RecordRow{}, fmt.Errorf("%w: record %s has malformed fields: %w", ErrScanningRow, result.RecordName, err)
	}
	result.AssetKey = key.String
	result.AssetChecksum = checksum.String
	result.ModifiedAt = result.ModifiedAt.UTC()

	return result, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// recordCursor is the position after the last record of a page.
type recordCursor struct {
	RecordType string    `json:"t"`
	ModifiedAt time.Time `json:"m"`
	RecordName string    `json:"n"`
}

func encodeRecordCursor(c recordCursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("error encoding cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeRecordCursor(s string) (recordCursor, error) {
	var c recordCursor

	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}
	if err = json.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}
	if c.RecordType == "" || c.RecordName == "" {
		return c, fmt.Errorf("%w: incomplete position", ErrInvalidCursor)
	}
	return c, nil
}
