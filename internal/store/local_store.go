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
	syncStateTable  = "sync_state"
	watermarkKey    = "last_sync"
	photoIDSequence = "%s%03d"
)

// LocalStore is the embedded diary database of the client together with the
// photo files under the document root.
type LocalStore struct {
	db      *DB
	files   *PhotoFiles
	entries *LocalTable[entity.Entry]
	photos  *LocalTable[entity.Photo]
	now     func() time.Time
	logger  *logger.Logger
}

// NewLocalStore wires the entry and photo tables over db. Photo JPEGs live
// under files.
func NewLocalStore(db *DB, files *PhotoFiles, log *logger.Logger) *LocalStore {
	return &LocalStore{
		db:      db,
		files:   files,
		entries: newLocalTable(db, entrySchema(), log),
		photos:  newLocalTable(db, photoSchema(files), log),
		now:     time.Now,
		logger:  log,
	}
}

// Entries returns the entry table.
func (s *LocalStore) Entries() *LocalTable[entity.Entry] {
	return s.entries
}

// Photos returns the photo table.
func (s *LocalStore) Photos() *LocalTable[entity.Photo] {
	return s.photos
}

// Files returns the photo file store. It reads assets for upload.
func (s *LocalStore) Files() *PhotoFiles {
	return s.files
}

// Watermark returns the time of the last fully successful sync. The zero
// time is returned when no sync has completed yet.
func (s *LocalStore) Watermark(ctx context.Context) (time.Time, error) {
	query, args, err := s.db.builder.
		Select("value").
		From(syncStateTable).
		Where(sq.Eq{"key": watermarkKey}).
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "LocalStore.Watermark").Msg("failed to read watermark")
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	watermark, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("stored watermark %q is malformed: %w", value, err)
	}
	return watermark, nil
}

// SetWatermark persists the time of a fully successful sync.
func (s *LocalStore) SetWatermark(ctx context.Context, watermark time.Time) error {
	query, args, err := s.db.builder.
		Insert(syncStateTable).
		Columns("key", "value").
		Values(watermarkKey, watermark.UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "LocalStore.SetWatermark").Msg("failed to store watermark")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// ── Diary writes ─────────────────────────────────────────────────────────────

// SaveEntry stores text and the photo list as the live entry of the day of
// date, stamping it with the current time.
func (s *LocalStore) SaveEntry(ctx context.Context, date time.Time, text string, photoIDs []string) (entity.Entry, error) {
	e := entity.NewEntry(date)
	e.Text = text
	e.Photos = strings.Join(photoIDs, ",")
	e.ModifiedAt = s.now().UTC()

	err := s.entries.Update(ctx, func(tx TableTx[entity.Entry]) error {
		return tx.Upsert(ctx, e)
	})
	return e, err
}

// DeleteEntry turns the entry of date into a tombstone. Its photos are
// tombstoned in the same transaction.
func (s *LocalStore) DeleteEntry(ctx context.Context, date string) error {
	now := s.now().UTC()

	return s.update(ctx, func(entries TableTx[entity.Entry], photos TableTx[entity.Photo]) error {
		e, ok, err := entries.Get(ctx, date)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: entries %s", ErrEntityNotFound, date)
		}

		ids := splitPhotoList(e.Photos)
		for _, id := range ids {
			if _, err = entity.PhotoPath(s.files.Root(), id); err != nil {
				return err
			}
		}

		// the entry row goes first: photo tombstones remove files on write
		e.Text = ""
		e.Photos = ""
		e.Deleted = true
		e.ModifiedAt = now
		if err = entries.Upsert(ctx, e); err != nil {
			return err
		}
		return tombstonePhotos(ctx, photos, ids, now)
	})
}

// GetEntry returns the live entry stored for date.
func (s *LocalStore) GetEntry(ctx context.Context, date string) (entity.Entry, error) {
	e, err := s.entries.Get(ctx, date)
	if err != nil {
		return e, err
	}
	if e.Deleted {
		return entity.Entry{}, fmt.Errorf("%w: entries %s", ErrEntityNotFound, date)
	}
	return e, nil
}

// ListEntries returns the live entries between from and to inclusive,
// newest first.
func (s *LocalStore) ListEntries(ctx context.Context, from, to time.Time) ([]entity.Entry, error) {
	return s.entries.List(ctx, sq.And{
		sq.NotEq{columnDeleted: 1},
		sq.GtOrEq{"date": from.Format(entity.DateLayout)},
		sq.LtOrEq{"date": to.Format(entity.DateLayout)},
	}, "date DESC")
}

// SavePhoto stores data as the next photo of the day of date and returns it.
func (s *LocalStore) SavePhoto(ctx context.Context, date time.Time, data []byte) (entity.Photo, error) {
	// the only connection is held by an open transaction, so the sequence
	// is read before it starts
	id, err := s.nextPhotoID(ctx, date.Format(entity.DateLayout))
	if err != nil {
		return entity.Photo{}, err
	}

	p := entity.Photo{ID: id, Data: data, ModifiedAt: s.now().UTC()}
	err = s.photos.Update(ctx, func(tx TableTx[entity.Photo]) error {
		return tx.Upsert(ctx, p)
	})
	return p, err
}

// DeletePhoto turns the photo id into a tombstone and removes its file.
func (s *LocalStore) DeletePhoto(ctx context.Context, id string) error {
	if _, err := entity.PhotoPath(s.files.Root(), id); err != nil {
		return err
	}

	now := s.now().UTC()
	return s.photos.Update(ctx, func(tx TableTx[entity.Photo]) error {
		return tombstonePhotos(ctx, tx, []string{id}, now)
	})
}

func tombstonePhotos(ctx context.Context, tx TableTx[entity.Photo], ids []string, now time.Time) error {
	for _, id := range ids {
		if err := tx.Upsert(ctx, entity.Photo{ID: id, Deleted: true, ModifiedAt: now}); err != nil {
			return err
		}
	}
	return nil
}

// update runs fn with views of both tables over one transaction.
func (s *LocalStore) update(ctx context.Context, fn func(entries TableTx[entity.Entry], photos TableTx[entity.Photo]) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "LocalStore.update").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer sqlTx.Rollback()

	if err = fn(&tableTx[entity.Entry]{table: s.entries, tx: sqlTx}, &tableTx[entity.Photo]{table: s.photos, tx: sqlTx}); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "LocalStore.update").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// nextPhotoID returns the first free sequence of a day, counting tombstones
// as taken.
func (s *LocalStore) nextPhotoID(ctx context.Context, partition string) (string, error) {
	query, args, err := s.db.builder.
		Select("COALESCE(MAX(CAST(substr(id, 9) AS INTEGER)), 0)").
		From("photos").
		Where(sq.Like{"id": partition + "%"}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var last int
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&last); err != nil {
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if last >= 999 {
		return "", fmt.Errorf("no free photo sequence left for %s", partition)
	}
	return fmt.Sprintf(photoIDSequence, partition, last+1), nil
}

// Close closes the database.
func (s *LocalStore) Close() error {
	return s.db.Close()
}

func splitPhotoList(list string) []string {
	if list == "" {
		return nil
	}
	return strings.Split(list, ",")
}
