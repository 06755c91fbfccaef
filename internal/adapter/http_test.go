// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/models"
)

// newTestRemote создаёт httpRemoteService, направленный на тестовый сервер
func newTestRemote(t *testing.T, serverURL string) *httpRemoteService {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}
	appCfg := config.ClientApp{Token: " test-token "}

	r, err := NewHTTPRemoteService(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return r.(*httpRemoteService)
}

func TestNewHTTPRemoteService_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRemoteService(config.ClientAdapter{}, config.ClientApp{}, logger.Nop())
	require.Error(t, err)
}

// ── Query ───────────────────────────────────────────────────────────────────

func TestQuery_Success(t *testing.T) {
	watermark := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/records/query", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var q models.Query
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.Equal(t, models.RecordTypeEntry, q.RecordType)
		assert.True(t, q.ModifiedAfter.Equal(watermark))
		assert.Equal(t, "c1", q.Cursor)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records":[{"record_type":"Entry","record_name":"20240115","fields":{"text":"hi","deleted":0}}],"cursor":"c2"}`))
	}))
	defer srv.Close()

	page, err := newTestRemote(t, srv.URL).Query(context.Background(), models.Query{
		RecordType:    models.RecordTypeEntry,
		ModifiedAfter: watermark,
		Cursor:        "c1",
	})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "20240115", page.Records[0].RecordName)
	assert.Equal(t, "hi", page.Records[0].Fields["text"])
	assert.True(t, page.HasMore())
	assert.Equal(t, "c2", page.Cursor)
}

func TestQuery_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"records":`))
	}))
	defer srv.Close()

	_, err := newTestRemote(t, srv.URL).Query(context.Background(), models.Query{RecordType: models.RecordTypeEntry})
	require.Error(t, err)
	_, retry := RetryAfter(err)
	assert.False(t, retry)
}

func TestQuery_RateLimitedCarriesRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	_, err := newTestRemote(t, srv.URL).Query(context.Background(), models.Query{RecordType: models.RecordTypePhoto})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRequests)

	after, ok := RetryAfter(err)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, after)
}

func TestQuery_UnavailableWithoutHintIsTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestRemote(t, srv.URL).Query(context.Background(), models.Query{RecordType: models.RecordTypePhoto})
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	_, ok := RetryAfter(err)
	assert.False(t, ok)
}

// ── Modify ──────────────────────────────────────────────────────────────────

func TestModify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/records/modify", r.URL.Path)

		var req models.ModifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.SavePolicyChangedKeys, req.SavePolicy)
		require.Len(t, req.Save, 1)
		require.NotNil(t, req.Save[0].Asset)
		assert.Equal(t, []byte("jpeg"), req.Save[0].Asset.Data)
		assert.Equal(t, []string{"20240101001"}, req.Delete)

		_, _ = w.Write([]byte(`{"saved":[{"record_type":"Photo","record_name":"20240115001","fields":{}}],"deleted":["20240101001"]}`))
	}))
	defer srv.Close()

	result, err := newTestRemote(t, srv.URL).Modify(context.Background(), models.ModifyRequest{
		RecordType: models.RecordTypePhoto,
		SavePolicy: models.SavePolicyChangedKeys,
		Save: []models.Record{{
			RecordType: models.RecordTypePhoto,
			RecordName: "20240115001",
			Fields:     map[string]any{"deleted": 0},
			Asset:      &models.Asset{Data: []byte("jpeg"), Checksum: "sum"},
		}},
		Delete: []string{"20240101001"},
	})
	require.NoError(t, err)
	require.Len(t, result.Saved, 1)
	assert.Equal(t, []string{"20240101001"}, result.Deleted)
}

func TestModify_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"too large", http.StatusRequestEntityTooLarge, ErrPayloadTooLarge},
		{"internal", http.StatusInternalServerError, ErrInternalServerError},
		{"bad gateway", http.StatusBadGateway, ErrBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestRemote(t, srv.URL).Modify(context.Background(), models.ModifyRequest{RecordType: models.RecordTypeEntry})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestModify_ServiceUnavailableCarriesRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestRemote(t, srv.URL).Modify(context.Background(), models.ModifyRequest{RecordType: models.RecordTypeEntry})
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	after, ok := RetryAfter(err)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, after)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		value  string
		want   time.Duration
		wantOK bool
	}{
		{"seconds", "120", 2 * time.Minute, true},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, false},
		{"http date", now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second, true},
		{"date in the past", now.Add(-time.Minute).Format(http.TimeFormat), 0, true},
		{"empty", "", 0, false},
		{"garbage", "soon", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseRetryAfter(tt.value, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
