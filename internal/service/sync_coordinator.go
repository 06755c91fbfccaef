// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-diary/internal/adapter"
	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/utils"
)

// Result describes a finished sync run.
type Result struct {
	// Advanced is true when every session uploaded and the watermark moved.
	Advanced bool `json:"advanced"`
	// Watermark is the watermark in effect after the run.
	Watermark time.Time    `json:"watermark"`
	Tables    []TableStats `json:"tables"`
	Err       error        `json:"-"`
}

// Coordinator runs one session per entity type through a download phase and
// then an upload phase, and persists the watermark after a run in which
// every session succeeded.
//
// At most one run is active at a time. Starting a run while another one is
// in progress does nothing.
type Coordinator struct {
	watermark Watermark
	remote    adapter.RemoteService
	sessions  []SessionFactory
	retry     RetryPolicy
	grace     time.Duration
	pageSize  int
	now       func() time.Time
	newRunID  func() string
	logger    *logger.Logger

	mu         sync.Mutex
	running    bool
	onComplete func(Result)
	wg         sync.WaitGroup
}

// NewCoordinator constructs a Coordinator replicating the tables produced by
// sessions.
func NewCoordinator(watermark Watermark, remote adapter.RemoteService, cfg config.ClientSync, log *logger.Logger, sessions ...SessionFactory) *Coordinator {
	return &Coordinator{
		watermark: watermark,
		remote:    remote,
		sessions:  sessions,
		retry:     NewRetryPolicy(cfg),
		grace:     cfg.TombstoneGrace,
		pageSize:  cfg.PageSize,
		now:       time.Now,
		newRunID:  utils.SortableID,
		logger:    log,
	}
}

// OnComplete registers fn to be called with the result of every run.
func (c *Coordinator) OnComplete(fn func(Result)) {
	c.mu.Lock()
	c.onComplete = fn
	c.mu.Unlock()
}

// IsRunning reports whether a run is in progress.
func (c *Coordinator) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// StartSync starts a run in the background and reports whether it did. It
// returns false without side effects when a run is already in progress.
func (c *Coordinator) StartSync(ctx context.Context) bool {
	if !c.acquire() {
		c.logger.Debug().Str("func", "Coordinator.StartSync").Msg("sync already running")
		return false
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_, _ = c.runAndRelease(ctx)
	}()
	return true
}

// Sync performs a run and waits for its result. It returns
// [ErrSyncInProgress] when a run is already in progress.
func (c *Coordinator) Sync(ctx context.Context) (Result, error) {
	if !c.acquire() {
		return Result{}, ErrSyncInProgress
	}
	return c.runAndRelease(ctx)
}

// Wait blocks until every run started by StartSync has finished.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return false
	}
	c.running = true
	return true
}

func (c *Coordinator) runAndRelease(ctx context.Context) (Result, error) {
	log := c.logger.WithField("sync_run", c.newRunID())
	ctx = log.WithContext(ctx)

	started := c.now()
	result, err := c.run(ctx)
	result.Err = err

	event := log.Info()
	if err != nil {
		event = log.Warn().Err(err)
	}
	event.
		Str("func", "Coordinator.run").
		Bool("advanced", result.Advanced).
		Time("watermark", result.Watermark).
		Dur("took", c.now().Sub(started)).
		Any("tables", result.Tables).
		Msg("sync run finished")

	c.mu.Lock()
	c.running = false
	onComplete := c.onComplete
	c.mu.Unlock()

	if onComplete != nil {
		onComplete(result)
	}
	return result, err
}

func (c *Coordinator) run(ctx context.Context) (result Result, err error) {
	lastSync, err := c.watermark.Watermark(ctx)
	if err != nil {
		return result, fmt.Errorf("read watermark: %w", err)
	}
	result.Watermark = lastSync

	sc := SyncContext{
		LastSync:        lastSync,
		Remote:          c.remote,
		Retry:           c.retry,
		TombstoneCutoff: c.now().Add(-c.grace),
		PageSize:        c.pageSize,
	}

	sessions := make([]Session, 0, len(c.sessions))
	for _, open := range c.sessions {
		s, err := open(ctx, sc)
		if err != nil {
			return result, err
		}
		sessions = append(sessions, s)
	}
	defer func() {
		result.Tables = make([]TableStats, 0, len(sessions))
		for _, s := range sessions {
			result.Tables = append(result.Tables, s.Stats())
		}
	}()

	if err = runPhase(ctx, sessions, Session.Download); err != nil {
		return result, err
	}
	if err = runPhase(ctx, sessions, Session.Upload); err != nil {
		return result, err
	}

	var notApplied error
	for _, s := range sessions {
		stats := s.Stats()
		if stats.Failed > 0 {
			notApplied = errors.Join(notApplied, fmt.Errorf("%w: %s: %d records", ErrRecordsNotApplied, s.RecordType(), stats.Failed))
		}
		if stats.Unsent > 0 {
			notApplied = errors.Join(notApplied, fmt.Errorf("%w: %s: %d records", ErrRecordsNotSent, s.RecordType(), stats.Unsent))
		}
	}
	if notApplied != nil {
		return result, notApplied
	}

	next := c.now().UTC()
	if next.Before(lastSync) {
		next = lastSync
	}
	if err = c.watermark.SetWatermark(ctx, next); err != nil {
		return result, fmt.Errorf("persist watermark: %w", err)
	}
	result.Advanced = true
	result.Watermark = next

	return result, nil
}

// runPhase runs step for every session concurrently and returns once all of
// them have finished. A failing session does not cancel the others.
func runPhase(ctx context.Context, sessions []Session, step func(Session, context.Context) error) error {
	var g errgroup.Group
	for _, s := range sessions {
		g.Go(func() error {
			return step(s, ctx)
		})
	}
	return g.Wait()
}
