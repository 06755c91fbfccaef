package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
)

func TestNewHandler_Defaults(t *testing.T) {
	h, err := NewHandler(nil, config.Server{}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, config.DefaultRetryAfter, h.retryAfter)
	assert.Equal(t, config.DefaultMaxRequestBody, h.maxBody)
	assert.Equal(t, int64(600), h.limiter.Rate.Limit)
	assert.Equal(t, time.Minute, h.limiter.Rate.Period)
}

func TestNewHandler_Config(t *testing.T) {
	h, err := NewHandler(nil, config.Server{
		RateLimit:      "5-S",
		RetryAfter:     30 * time.Second,
		RequestTimeout: 10 * time.Second,
		MaxRequestBody: 1 << 20,
	}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, int64(5), h.limiter.Rate.Limit)
	assert.Equal(t, time.Second, h.limiter.Rate.Period)
	assert.Equal(t, 30*time.Second, h.retryAfter)
	assert.Equal(t, 10*time.Second, h.timeout)
	assert.Equal(t, int64(1<<20), h.maxBody)
}

func TestNewHandler_InvalidRate(t *testing.T) {
	for _, rate := range []string{"600", "ten-M", "5-W"} {
		_, err := NewHandler(nil, config.Server{RateLimit: rate}, logger.Nop())
		assert.Error(t, err, rate)
	}
}
