package service

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/entity"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/store"
	"github.com/MKhiriev/go-diary/models"
)

var (
	testNow      = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	testSyncConf = config.ClientSync{
		MaxRetries:     3,
		MaxBackoff:     time.Second,
		TombstoneGrace: config.DefaultTombstoneGrace,
		PageSize:       2,
	}
)

func newTestLocalStore(t *testing.T) *store.LocalStore {
	t.Helper()
	dir := t.TempDir()

	s, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		DB:       config.ClientDB{DSN: filepath.Join(dir, "diary.db")},
		PhotoDir: filepath.Join(dir, "docs"),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// newTestCoordinator собирает координатор над реальным SQLite-хранилищем с
// зафиксированными часами
func newTestCoordinator(t *testing.T, local *store.LocalStore, remote *memoryRemote) *Coordinator {
	t.Helper()
	c := NewCoordinator(local, remote, testSyncConf, logger.Nop(),
		NewSessionFactory[entity.Entry](local.Entries(), entity.NewEntryCodec()),
		NewSessionFactory[entity.Photo](local.Photos(), entity.NewPhotoCodec(local.Files())),
	)
	c.now = func() time.Time { return testNow }
	return c
}

func entryAt(date string, text string, modified time.Time) entity.Entry {
	day, err := time.ParseInLocation(entity.DateLayout, date, time.Local)
	if err != nil {
		panic(err)
	}
	e := entity.NewEntry(day)
	e.Text = text
	e.ModifiedAt = modified
	return e
}

func putEntries(t *testing.T, local *store.LocalStore, entries ...entity.Entry) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, local.Entries().Update(ctx, func(tx store.TableTx[entity.Entry]) error {
		for _, e := range entries {
			if err := tx.Upsert(ctx, e); err != nil {
				return err
			}
		}
		return nil
	}))
}

func putPhotos(t *testing.T, local *store.LocalStore, photos ...entity.Photo) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, local.Photos().Update(ctx, func(tx store.TableTx[entity.Photo]) error {
		for _, p := range photos {
			if err := tx.Upsert(ctx, p); err != nil {
				return err
			}
		}
		return nil
	}))
}

func entryRecord(t *testing.T, e entity.Entry) models.Record {
	t.Helper()
	record, err := entity.NewEntryCodec().ToRecord(e)
	require.NoError(t, err)
	return record
}

// memoryRemote is an in-memory record service. Records are kept per type and
// stamped with the server clock on save; queries page through them in
// (ModifiedAt, RecordName) order.
type memoryRemote struct {
	mu      sync.Mutex
	clock   func() time.Time
	records map[string]map[string]models.Record

	events   []string
	modifies []models.ModifyRequest

	queryErr  map[string]error
	modifyErr map[string]error

	// beforeQuery runs outside the lock before every query.
	beforeQuery func(recordType string)
}

func newMemoryRemote() *memoryRemote {
	return &memoryRemote{
		clock:     func() time.Time { return testNow.Add(-time.Second) },
		records:   make(map[string]map[string]models.Record),
		queryErr:  make(map[string]error),
		modifyErr: make(map[string]error),
	}
}

// seed stores records as if another device uploaded them at modifiedAt.
func (m *memoryRemote) seed(modifiedAt time.Time, records ...models.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		r.ModifiedAt = modifiedAt
		m.table(r.RecordType)[r.RecordName] = r
	}
}

func (m *memoryRemote) get(recordType, name string) (models.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[recordType][name]
	return r, ok
}

func (m *memoryRemote) table(recordType string) map[string]models.Record {
	t, ok := m.records[recordType]
	if !ok {
		t = make(map[string]models.Record)
		m.records[recordType] = t
	}
	return t
}

func (m *memoryRemote) Query(_ context.Context, q models.Query) (models.QueryPage, error) {
	if m.beforeQuery != nil {
		m.beforeQuery(q.RecordType)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, "query:"+q.RecordType)
	if err := m.queryErr[q.RecordType]; err != nil {
		return models.QueryPage{}, err
	}

	var matched []models.Record
	for _, r := range m.records[q.RecordType] {
		if r.ModifiedAt.After(q.ModifiedAfter) {
			matched = append(matched, r)
		}
	}
	slices.SortFunc(matched, func(a, b models.Record) int {
		if c := a.ModifiedAt.Compare(b.ModifiedAt); c != 0 {
			return c
		}
		return strings.Compare(a.RecordName, b.RecordName)
	})

	offset := 0
	if q.Cursor != "" {
		offset, _ = strconv.Atoi(q.Cursor)
	}
	end := len(matched)
	if q.Limit > 0 && offset+q.Limit < end {
		end = offset + q.Limit
	}

	page := models.QueryPage{Records: matched[offset:end]}
	if end < len(matched) {
		page.Cursor = strconv.Itoa(end)
	}
	return page, nil
}

func (m *memoryRemote) Modify(_ context.Context, req models.ModifyRequest) (models.ModifyResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, "modify:"+req.RecordType)
	if err := m.modifyErr[req.RecordType]; err != nil {
		return models.ModifyResult{}, err
	}
	m.modifies = append(m.modifies, req)

	t := m.table(req.RecordType)
	result := models.ModifyResult{Deleted: req.Delete}
	for _, r := range req.Save {
		stored, ok := t[r.RecordName]
		if !ok || req.SavePolicy == models.SavePolicyAllKeys {
			stored = models.Record{RecordType: req.RecordType, RecordName: r.RecordName, Fields: map[string]any{}}
		}
		fields := make(map[string]any, len(stored.Fields)+len(r.Fields))
		maps.Copy(fields, stored.Fields)
		maps.Copy(fields, r.Fields)
		stored.Fields = fields
		if r.Asset != nil {
			stored.Asset = r.Asset
		}
		stored.ModifiedAt = m.clock()
		t[r.RecordName] = stored
		result.Saved = append(result.Saved, stored)
	}
	for _, name := range req.Delete {
		delete(t, name)
	}
	return result, nil
}

func (m *memoryRemote) snapshotEvents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.events)
}

func (m *memoryRemote) modifyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.modifies)
}
