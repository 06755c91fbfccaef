package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// ── newLogger ───────────────────────────────────────────────────────────────

func TestNewLogger_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "sync")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "sync", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "hello", entry["message"])
}

func TestNewLogger_GlobalSettings(t *testing.T) {
	require.NotNil(t, NewLogger("server"))
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// ── NewClientLogger ─────────────────────────────────────────────────────────

func TestNewClientLogger_WritesIntoDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	l := NewClientLogger("sync", dir)
	l.Info().Msg("sync started")

	raw, err := os.ReadFile(filepath.Join(dir, ClientLogFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "sync started")
}

func TestNewClientLogger_EmptyDirFallsBackToStdout(t *testing.T) {
	// не должен паниковать и не должен создавать файл в текущей директории
	l := NewClientLogger("sync", "")
	require.NotNil(t, l)

	_, err := os.Stat(ClientLogFile)
	assert.True(t, os.IsNotExist(err))
}

// ── Nop / children ──────────────────────────────────────────────────────────

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "inherited-role")

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)

	child.Info().Msg("child message")
	assert.Equal(t, "inherited-role", decodeEntry(t, &buf)["role"])
}

func TestWithField_AddsField(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "sync").WithField("table", "Entry")

	l.Debug().Msg("page applied")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "Entry", entry["table"])
	assert.Equal(t, "sync", entry["role"])
}

// ── context helpers ─────────────────────────────────────────────────────────

func TestFromContext_NotNilWithoutLogger(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("run", "42").Logger()
	ctx := zl.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")

	assert.Equal(t, "42", decodeEntry(t, &buf)["run"])
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()

	req := httptest.NewRequest(http.MethodPost, "/api/records/query", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "abc", decodeEntry(t, &buf)["trace_id"])
}
