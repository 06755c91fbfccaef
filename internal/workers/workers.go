package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-diary/internal/logger"
)

// Workers runs a fixed set of workers.
type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewWorkers groups workers. Nil entries are skipped.
func NewWorkers(logger *logger.Logger, workers ...Worker) *Workers {
	w := &Workers{logger: logger}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Run starts every worker and blocks until all of them return. The first
// failing worker cancels the others and its error is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}

	w.logger.Info().Int("count", len(w.workers)).Msg("workers started")
	err := g.Wait()
	if err != nil {
		w.logger.Err(err).Str("func", "Workers.Run").Msg("worker failed")
		return err
	}

	w.logger.Info().Msg("workers stopped")
	return nil
}
