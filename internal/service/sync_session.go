// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-diary/internal/adapter"
	"github.com/MKhiriev/go-diary/internal/entity"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/store"
	"github.com/MKhiriev/go-diary/models"
)

// SyncState is the phase of a table sync session.
type SyncState int32

const (
	StateNotStarted SyncState = iota
	StateDownloading
	StateDownloaded
	StateUploading
	StateUploaded
	// StateError is absorbing: a failed session is never resumed.
	StateError
)

func (s SyncState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateDownloading:
		return "downloading"
	case StateDownloaded:
		return "downloaded"
	case StateUploading:
		return "uploading"
	case StateUploaded:
		return "uploaded"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("SyncState(%d)", int32(s))
	}
}

func (s SyncState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SyncContext is frozen at the start of a run and shared by its sessions.
type SyncContext struct {
	// LastSync is the watermark read once at the start of the run.
	LastSync time.Time
	Remote   adapter.RemoteService
	Retry    RetryPolicy

	// TombstoneCutoff separates tombstones still uploaded as records from
	// those deleted remotely and purged locally.
	TombstoneCutoff time.Time
	PageSize        int
}

// TableStats summarises what one session did.
type TableStats struct {
	RecordType string    `json:"record_type"`
	State      SyncState `json:"state"`

	Downloaded int `json:"downloaded"`
	Applied    int `json:"applied"`
	// Stale counts downloaded records older than their local copy.
	Stale int `json:"stale"`
	// Skipped counts downloaded records that could not be decoded.
	Skipped int `json:"skipped"`
	// Failed counts downloaded records whose local write failed.
	Failed int `json:"failed"`
	// Unsent counts local entities left out of the upload because they
	// could not be encoded.
	Unsent   int `json:"unsent"`
	Uploaded int `json:"uploaded"`
	Purged   int `json:"purged"`

	Err error `json:"-"`
}

// SyncTable is the local store view a session replicates.
type SyncTable[T entity.Syncable] interface {
	Update(ctx context.Context, fn func(tx store.TableTx[T]) error) error
	Pending(ctx context.Context, since, tombstoneCutoff time.Time) (store.PendingChanges[T], error)
	Purge(ctx context.Context, keys []string) error
}

// Session is one entity type's download and upload cycle as seen by the
// [Coordinator].
type Session interface {
	RecordType() string
	Download(ctx context.Context) error
	Upload(ctx context.Context) error
	State() SyncState
	Stats() TableStats
}

// SessionFactory opens a session against the frozen context of a run.
type SessionFactory func(ctx context.Context, sc SyncContext) (Session, error)

// NewSessionFactory returns a factory of [TableSync] sessions over table.
func NewSessionFactory[T entity.Syncable](table SyncTable[T], codec entity.Codec[T]) SessionFactory {
	return func(ctx context.Context, sc SyncContext) (Session, error) {
		return NewTableSync(ctx, table, codec, sc)
	}
}

// TableSync replicates one entity table.
//
// The local change set is captured when the session is created. Download
// applies remote changes under the last-write-wins rule and withdraws every
// key it overwrote from that change set, so a stale local write is never
// uploaded on top of a newer remote one. Upload sends what is left in a
// single batch.
type TableSync[T entity.Syncable] struct {
	table SyncTable[T]
	codec entity.Codec[T]
	sc    SyncContext

	mu    sync.Mutex
	state SyncState
	stats TableStats

	upserts     map[string]T
	upsertOrder []string
	deletes     map[string]struct{}
	deleteOrder []string
}

// NewTableSync snapshots the pending change set of table and returns a
// session in [StateNotStarted].
func NewTableSync[T entity.Syncable](ctx context.Context, table SyncTable[T], codec entity.Codec[T], sc SyncContext) (*TableSync[T], error) {
	pending, err := table.Pending(ctx, sc.LastSync, sc.TombstoneCutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: collect local changes: %w", codec.RecordType(), err)
	}

	s := &TableSync[T]{
		table:   table,
		codec:   codec,
		sc:      sc,
		stats:   TableStats{RecordType: codec.RecordType()},
		upserts: make(map[string]T, len(pending.Upserts)),
		deletes: make(map[string]struct{}, len(pending.Deletes)),
	}
	for _, e := range pending.Upserts {
		key := e.PrimaryKey()
		s.upserts[key] = e
		s.upsertOrder = append(s.upsertOrder, key)
	}
	for _, key := range pending.Deletes {
		s.deletes[key] = struct{}{}
		s.deleteOrder = append(s.deleteOrder, key)
	}

	return s, nil
}

func (s *TableSync[T]) RecordType() string {
	return s.codec.RecordType()
}

func (s *TableSync[T]) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *TableSync[T]) Stats() TableStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := s.stats
	stats.State = s.state
	return stats
}

// Download pulls every record changed remotely since the watermark, page by
// page, and applies it locally.
func (s *TableSync[T]) Download(ctx context.Context) error {
	if err := s.advance(StateNotStarted, StateDownloading); err != nil {
		return err
	}

	log := s.logger(ctx)
	q := models.Query{
		RecordType:    s.RecordType(),
		ModifiedAfter: s.sc.LastSync,
		Limit:         s.sc.PageSize,
	}

	for pages := 1; ; pages++ {
		var page models.QueryPage
		err := s.sc.Retry.Do(ctx, "query "+q.RecordType, func(ctx context.Context) error {
			var err error
			page, err = s.sc.Remote.Query(ctx, q)
			return err
		})
		if err != nil {
			log.Err(err).
				Str("func", "TableSync.Download").
				Int("page", pages).
				Msg("remote query failed")
			return s.fail(fmt.Errorf("%w: %s: %w", ErrDownloadFailed, q.RecordType, err))
		}

		s.count(func(st *TableStats) { st.Downloaded += len(page.Records) })
		for _, record := range page.Records {
			s.apply(ctx, record)
		}

		if !page.HasMore() {
			log.Debug().
				Str("func", "TableSync.Download").
				Int("pages", pages).
				Msg("download finished")
			break
		}
		q.Cursor = page.Cursor
	}

	return s.advance(StateDownloading, StateDownloaded)
}

// apply writes one downloaded record under the last-write-wins rule: the
// remote record wins unless the local entity is strictly newer.
func (s *TableSync[T]) apply(ctx context.Context, record models.Record) {
	log := s.logger(ctx)

	remote, err := s.codec.FromRecord(record)
	if err != nil {
		log.Warn().Err(err).
			Str("func", "TableSync.apply").
			Str("record_name", record.RecordName).
			Msg("skipping undecodable record")
		s.count(func(st *TableStats) { st.Skipped++ })
		return
	}

	key := remote.PrimaryKey()
	changed := false
	err = s.table.Update(ctx, func(tx store.TableTx[T]) error {
		local, ok, err := tx.Get(ctx, key)
		if err != nil {
			return err
		}
		if ok && remote.Modified().Before(local.Modified()) {
			return nil
		}

		if remote.IsDeleted() {
			err = tx.Delete(ctx, key)
		} else {
			err = tx.Upsert(ctx, remote)
		}
		if err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "TableSync.apply").
			Str("record_name", key).
			Msg("failed to apply remote record")
		s.count(func(st *TableStats) { st.Failed++ })
		return
	}

	if !changed {
		s.count(func(st *TableStats) { st.Stale++ })
		return
	}

	s.mu.Lock()
	s.stats.Applied++
	delete(s.upserts, key)
	delete(s.deletes, key)
	s.mu.Unlock()
}

// Upload sends the remaining local change set in one batch and purges the
// tombstones the remote confirmed as deleted.
func (s *TableSync[T]) Upload(ctx context.Context) error {
	if err := s.advance(StateDownloaded, StateUploading); err != nil {
		return err
	}

	log := s.logger(ctx)
	req := s.buildBatch(ctx)

	if req.IsEmpty() {
		log.Debug().Str("func", "TableSync.Upload").Msg("nothing to upload")
		return s.advance(StateUploading, StateUploaded)
	}

	err := s.sc.Retry.Do(ctx, "modify "+req.RecordType, func(ctx context.Context) error {
		_, err := s.sc.Remote.Modify(ctx, req)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "TableSync.Upload").
			Int("save", len(req.Save)).
			Int("delete", len(req.Delete)).
			Msg("remote modify failed")
		return s.fail(fmt.Errorf("%w: %s: %w", ErrUploadFailed, req.RecordType, err))
	}
	s.count(func(st *TableStats) { st.Uploaded = len(req.Save) })

	if err = s.table.Purge(ctx, req.Delete); err != nil {
		log.Err(err).
			Str("func", "TableSync.Upload").
			Strs("keys", req.Delete).
			Msg("failed to purge confirmed tombstones")
		return s.fail(fmt.Errorf("%w: %s: purge: %w", ErrUploadFailed, req.RecordType, err))
	}
	s.count(func(st *TableStats) { st.Purged = len(req.Delete) })

	log.Info().
		Str("func", "TableSync.Upload").
		Int("saved", len(req.Save)).
		Int("deleted", len(req.Delete)).
		Msg("upload finished")

	return s.advance(StateUploading, StateUploaded)
}

func (s *TableSync[T]) buildBatch(ctx context.Context) models.ModifyRequest {
	req := models.ModifyRequest{
		RecordType: s.RecordType(),
		SavePolicy: models.SavePolicyChangedKeys,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range s.upsertOrder {
		e, ok := s.upserts[key]
		if !ok {
			continue
		}
		record, err := s.codec.ToRecord(e)
		if err != nil {
			s.logger(ctx).Warn().Err(err).
				Str("func", "TableSync.buildBatch").
				Str("record_name", key).
				Msg("local entity cannot be encoded, leaving it out of the upload")
			s.stats.Unsent++
			continue
		}
		req.Save = append(req.Save, record)
	}
	for _, key := range s.deleteOrder {
		if _, ok := s.deletes[key]; ok {
			req.Delete = append(req.Delete, key)
		}
	}

	return req
}

func (s *TableSync[T]) advance(from, to SyncState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != from {
		return fmt.Errorf("%w: %s session is %s, want %s", ErrInvalidSyncState, s.stats.RecordType, s.state, from)
	}
	s.state = to
	return nil
}

func (s *TableSync[T]) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateError
	s.stats.Err = err
	return err
}

func (s *TableSync[T]) count(fn func(st *TableStats)) {
	s.mu.Lock()
	fn(&s.stats)
	s.mu.Unlock()
}

func (s *TableSync[T]) logger(ctx context.Context) *logger.Logger {
	return logger.FromContext(ctx).WithField("record_type", s.stats.RecordType)
}
