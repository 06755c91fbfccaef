// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-diary/internal/adapter"
	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
)

// RetryPolicy decides whether a failed remote operation is repeated.
//
// Only failures carrying a server retry-after hint are retried, and always
// with the same parameters after exactly the hinted delay. Everything else is
// terminal. MaxRetries bounds the number of repeats of one operation and
// MaxBackoff bounds the total time spent waiting for it; zero MaxBackoff
// disables the ceiling.
type RetryPolicy struct {
	MaxRetries uint64
	MaxBackoff time.Duration
}

// NewRetryPolicy builds the policy from the client sync settings.
func NewRetryPolicy(cfg config.ClientSync) RetryPolicy {
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return RetryPolicy{MaxRetries: uint64(maxRetries), MaxBackoff: cfg.MaxBackoff}
}

// Decide returns the delay after which the operation that failed with err
// may be repeated. ok is false for terminal failures.
func (p RetryPolicy) Decide(err error) (delay time.Duration, ok bool) {
	return adapter.RetryAfter(err)
}

// Do runs op until it succeeds, fails terminally, ctx is done or the retry
// budget runs out. A budget overrun wraps the last failure in
// [ErrRetryBudgetExceeded].
func (p RetryPolicy) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	var (
		hint    time.Duration
		waited  time.Duration
		attempt int
	)

	backoff := retry.WithMaxRetries(p.MaxRetries, retry.BackoffFunc(func() (time.Duration, bool) {
		if p.MaxBackoff > 0 && waited+hint > p.MaxBackoff {
			return 0, true
		}
		waited += hint
		return hint, false
	}))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}

		delay, ok := p.Decide(err)
		if !ok {
			return err
		}

		hint = delay
		log.Debug().
			Str("func", "RetryPolicy.Do").
			Str("operation", name).
			Int("attempt", attempt).
			Dur("retry_after", delay).
			Msg("remote asked to retry later")

		return retry.RetryableError(err)
	})
	if err == nil {
		return nil
	}

	if _, retryable := p.Decide(err); retryable {
		log.Warn().Err(err).
			Str("func", "RetryPolicy.Do").
			Str("operation", name).
			Int("attempts", attempt).
			Dur("waited", waited).
			Msg("giving up on retries")
		return fmt.Errorf("%w: %s after %d attempts: %w", ErrRetryBudgetExceeded, name, attempt, err)
	}
	return err
}
