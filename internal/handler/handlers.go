// Package handler builds the transport handlers of the record service.
package handler

import (
	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/handler/http"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/service"
)

// Handlers groups the transport handlers.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the handlers enabled by cfg.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	httpHandler, err := http.NewHandler(services, cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("address", cfg.HTTPAddress).Msg("HTTP handler created")
	return &Handlers{HTTP: httpHandler}, nil
}
