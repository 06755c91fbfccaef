package http

import (
	"fmt"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/service"
)

// Handler serves the record service API.
type Handler struct {
	services *service.Services

	// limiter throttles requests per owner.
	limiter *limiter.Limiter
	// retryAfter is sent with 503 responses for transient storage failures.
	retryAfter time.Duration
	timeout    time.Duration
	// maxBody caps a request body in bytes.
	maxBody int64

	logger *logger.Logger
}

// NewHandler builds a Handler; cfg.RateLimit must be in ulule/limiter format
// ("<limit>-<S|M|H|D>").
func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handler, error) {
	rateLimit := cfg.RateLimit
	if rateLimit == "" {
		rateLimit = config.DefaultRateLimit
	}
	rate, err := limiter.NewRateFromFormatted(rateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rateLimit, err)
	}

	retryAfter := cfg.RetryAfter
	if retryAfter <= 0 {
		retryAfter = config.DefaultRetryAfter
	}

	maxBody := cfg.MaxRequestBody
	if maxBody <= 0 {
		maxBody = config.DefaultMaxRequestBody
	}

	return &Handler{
		services:   services,
		limiter:    limiter.New(memory.NewStore(), rate),
		retryAfter: retryAfter,
		timeout:    cfg.RequestTimeout,
		maxBody:    maxBody,
		logger:     logger,
	}, nil
}
