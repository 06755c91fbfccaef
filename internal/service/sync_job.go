package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-diary/internal/config"
)

// SyncJob triggers a sync run once when started and then on every tick.
type SyncJob struct {
	starter  SyncStarter
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob ticking every interval. A zero or negative
// interval means [config.DefaultSyncInterval]. The job is idle until Start
// or Run is called.
func NewSyncJob(starter SyncStarter, interval time.Duration) *SyncJob {
	if interval <= 0 {
		interval = config.DefaultSyncInterval
	}
	return &SyncJob{starter: starter, interval: interval}
}

// Start stops a previously started loop and launches a new one. The loop
// exits when ctx is cancelled or Stop is called.
func (j *SyncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		j.starter.StartSync(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.starter.StartSync(jobCtx)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit. Calling Stop on an idle job
// does nothing.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Run starts the loop and blocks until ctx is done.
func (j *SyncJob) Run(ctx context.Context) error {
	j.Start(ctx)
	<-ctx.Done()
	j.Stop()
	return nil
}
