package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"

	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/utils"
)

// withRateLimit throttles each owner with the handler's limiter. It must run
// after auth. A throttled request gets 429 and a Retry-After of the seconds
// left until the window resets.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return stdlib.NewMiddleware(h.limiter,
		stdlib.WithKeyGetter(ownerRateKey),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			after := time.Second
			if reset, err := strconv.ParseInt(w.Header().Get("X-RateLimit-Reset"), 10, 64); err == nil {
				after = time.Until(time.Unix(reset, 0))
			}
			setRetryAfter(w, after)

			logger.FromRequest(r).Warn().
				Str("func", "Handler.withRateLimit").
				Str("key", ownerRateKey(r)).
				Str("retry_after", w.Header().Get("Retry-After")).
				Msg("rate limit reached")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.FromRequest(r).Err(err).Str("func", "Handler.withRateLimit").Msg("rate limiter failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}),
	).Handler(next)
}

// ownerRateKey keys the limiter by owner; requests without one share a key.
func ownerRateKey(r *http.Request) string {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		return "anonymous"
	}
	return "owner:" + strconv.FormatInt(ownerID, 10)
}
