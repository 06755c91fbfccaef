package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/service"
	"github.com/MKhiriev/go-diary/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:                     http.StatusBadRequest,
	ErrRequestTooLarge:                 http.StatusRequestEntityTooLarge,
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrInvalidCursor:     http.StatusBadRequest,
	store.ErrSavePolicyUnknown: http.StatusBadRequest,
	store.ErrAssetNotFound:     http.StatusInternalServerError,
	store.ErrAssetChecksum:     http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its mapped status. Server-side
// failures the record service reports as transient become 503 with a
// Retry-After hint.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError && h.services.RecordService.IsRetryable(err) {
		status = http.StatusServiceUnavailable
		setRetryAfter(w, h.retryAfter)
	}

	event := logger.FromRequest(r).Err(err).Str("func", fn).Int("status", status)
	if status >= http.StatusInternalServerError {
		event.Msg("request failed")
	} else {
		event.Msg("request rejected")
	}

	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		message = err.Error()
	}
	http.Error(w, message, status)
}

// setRetryAfter writes d as whole delay seconds, rounded up and at least 1.
func setRetryAfter(w http.ResponseWriter, d time.Duration) {
	seconds := int64((d + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
}
