package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-diary/models"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{
			name:     "query page",
			data:     models.QueryPage{Records: []models.Record{}, Cursor: "c1"},
			status:   http.StatusOK,
			wantBody: `{"records":[],"cursor":"c1"}`,
		},
		{
			name: "record",
			data: models.Record{
				RecordType: models.RecordTypeEntry,
				RecordName: "20240115",
				Fields:     map[string]any{"text": "hi"},
				ModifiedAt: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			},
			status:   http.StatusCreated,
			wantBody: `{"record_type":"Entry","record_name":"20240115","fields":{"text":"hi"},"modified_at":"2024-01-15T00:00:00Z"}`,
		},
		{name: "nil", data: nil, status: http.StatusOK, wantBody: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)
			require.NoError(t, err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, w.Body.Len(), n)
		})
	}
}

func TestWriteJSON_Unmarshalable(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, map[string]any{"fn": func() {}}, http.StatusOK)
	require.Error(t, err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Header().Get("Content-Type"), "application/json")
}
