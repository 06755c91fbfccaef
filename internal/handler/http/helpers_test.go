package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/mock"
	"github.com/MKhiriev/go-diary/internal/service"
	"github.com/MKhiriev/go-diary/internal/utils"
	"github.com/MKhiriev/go-diary/models"
)

const testOwner = int64(7)

var testTokenConf = config.ServerApp{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "diary-records-test",
	TokenDuration: time.Hour,
}

// testDeps: моки сервисов, из которых собирается Handler
type testDeps struct {
	records *mock.MockRecordService
	appInfo *mock.MockAppInfoService
	auth    service.AuthService
}

func newTestHandler(t *testing.T, cfg config.Server) (*Handler, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		records: mock.NewMockRecordService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
		auth:    service.NewAuthService(testTokenConf, logger.Nop()),
	}

	if cfg.RateLimit == "" {
		cfg.RateLimit = "1000-S"
	}
	h, err := NewHandler(&service.Services{
		RecordService:  deps.records,
		AuthService:    deps.auth,
		AppInfoService: deps.appInfo,
	}, cfg, logger.Nop())
	require.NoError(t, err)
	return h, deps
}

func bearer(t *testing.T, ownerID int64) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(testTokenConf.TokenIssuer, ownerID, time.Hour, testTokenConf.TokenSignKey)
	require.NoError(t, err)
	return "Bearer " + token.String()
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

// withNopLogger кладёт nop-логгер в контекст запроса, как это делает withTraceID
func withNopLogger(r *http.Request) *http.Request {
	nop := zerolog.Nop()
	return r.WithContext(nop.WithContext(r.Context()))
}

func withOwner(r *http.Request, ownerID int64) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), utils.OwnerIDCtxKey, ownerID))
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func entryRecord(name, text string) models.Record {
	return models.Record{
		RecordType: models.RecordTypeEntry,
		RecordName: name,
		Fields:     map[string]any{"text": text},
	}
}
