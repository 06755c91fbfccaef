package server

import (
	"context"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/handler"
	"github.com/MKhiriev/go-diary/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may finish after a stop
// signal.
const shutdownTimeout = 15 * time.Second

type server struct {
	httpServer      *httpServer
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

// NewServer creates the listeners for the enabled handlers.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.Run(ctx)
}

func (s *server) Run(ctx context.Context) error {
	l, err := s.httpServer.listen()
	if err != nil {
		return err
	}
	return s.serve(ctx, l)
}

func (s *server) serve(ctx context.Context, l net.Listener) error {
	served := make(chan error, 1)
	go func() {
		served <- s.httpServer.serve(l)
	}()

	select {
	case err := <-served:
		// listener died on its own
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.shutdown(shutdownCtx); err != nil {
		s.logger.Err(err).Str("func", "server.serve").Msg("graceful shutdown failed")
		return err
	}
	if err := <-served; err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
