package client

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/service"
)

// App is the sync client process.
type App struct {
	syncer Syncer
	jobs   Runner
	once   bool
	logger *logger.Logger
}

// NewApp creates the client runtime. With once set, Run performs a single
// sync and returns its error; otherwise it runs jobs until stopped.
func NewApp(syncer Syncer, jobs Runner, once bool, log *logger.Logger) (*App, error) {
	if syncer == nil {
		return nil, errors.New("client app needs a syncer")
	}
	if !once && jobs == nil {
		return nil, errors.New("client app needs background jobs")
	}
	return &App{syncer: syncer, jobs: jobs, once: once, logger: log}, nil
}

// Run blocks until the work is done or SIGINT, SIGTERM or SIGQUIT arrives.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	if a.once {
		result, err := a.syncer.Sync(ctx)
		a.report(result)
		return err
	}

	a.syncer.OnComplete(a.report)
	err := a.jobs.Run(ctx)
	// the job loop is gone, but a run it started may still be writing
	a.syncer.Wait()

	if err != nil {
		return err
	}
	a.logger.Info().Msg("client stopped")
	return nil
}

// report logs one line per table and a summary of the run.
func (a *App) report(result service.Result) {
	for _, table := range result.Tables {
		event := a.logger.Info()
		if table.Err != nil {
			event = a.logger.Warn().Err(table.Err)
		}
		event.
			Str("record_type", table.RecordType).
			Stringer("state", table.State).
			Int("downloaded", table.Downloaded).
			Int("applied", table.Applied).
			Int("stale", table.Stale).
			Int("skipped", table.Skipped).
			Int("failed", table.Failed).
			Int("unsent", table.Unsent).
			Int("uploaded", table.Uploaded).
			Int("purged", table.Purged).
			Msg("table synced")
	}

	event := a.logger.Info()
	if result.Err != nil {
		event = a.logger.Error().Err(result.Err)
	}
	event.
		Bool("advanced", result.Advanced).
		Time("watermark", result.Watermark).
		Msg("sync run finished")
}
