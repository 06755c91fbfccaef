package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-diary/internal/adapter"
	"github.com/MKhiriev/go-diary/internal/config"
)

func retryLater(after time.Duration) error {
	return &adapter.RetryAfterError{Err: adapter.ErrTooManyRequests, After: after}
}

func TestNewRetryPolicy(t *testing.T) {
	p := NewRetryPolicy(config.ClientSync{MaxRetries: 3, MaxBackoff: time.Minute})
	assert.Equal(t, uint64(3), p.MaxRetries)
	assert.Equal(t, time.Minute, p.MaxBackoff)

	assert.Equal(t, uint64(0), NewRetryPolicy(config.ClientSync{MaxRetries: -1}).MaxRetries)
}

func TestRetryPolicy_Decide(t *testing.T) {
	p := RetryPolicy{}

	delay, ok := p.Decide(retryLater(2 * time.Second))
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, delay)

	_, ok = p.Decide(adapter.ErrTooManyRequests)
	assert.False(t, ok, "без подсказки Retry-After ошибка терминальная")

	_, ok = p.Decide(errors.New("boom"))
	assert.False(t, ok)
}

func TestRetryPolicy_Do_RetriesUntilSuccess(t *testing.T) {
	p := RetryPolicy{MaxRetries: 5, MaxBackoff: time.Second}

	calls := 0
	err := p.Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return retryLater(time.Millisecond)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_Do_TerminalErrorIsNotRetried(t *testing.T) {
	p := RetryPolicy{MaxRetries: 5}
	boom := errors.New("boom")

	calls := 0
	err := p.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrRetryBudgetExceeded)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_Do_MaxRetries(t *testing.T) {
	p := RetryPolicy{MaxRetries: 2}

	calls := 0
	err := p.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return retryLater(time.Millisecond)
	})
	assert.ErrorIs(t, err, ErrRetryBudgetExceeded)
	assert.ErrorIs(t, err, adapter.ErrTooManyRequests)
	assert.Equal(t, 3, calls, "первая попытка и два повтора")
}

func TestRetryPolicy_Do_MaxBackoffIsCumulative(t *testing.T) {
	p := RetryPolicy{MaxRetries: 10, MaxBackoff: 25 * time.Millisecond}

	calls := 0
	err := p.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return retryLater(10 * time.Millisecond)
	})
	assert.ErrorIs(t, err, ErrRetryBudgetExceeded)
	// 10ms + 10ms укладываются в потолок, третья пауза уже нет
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_Do_HintAboveCeilingFailsImmediately(t *testing.T) {
	p := RetryPolicy{MaxRetries: 10, MaxBackoff: time.Second}

	calls := 0
	err := p.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return retryLater(time.Hour)
	})
	assert.ErrorIs(t, err, ErrRetryBudgetExceeded)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_Do_ContextCancelledDuringWait(t *testing.T) {
	p := RetryPolicy{MaxRetries: 10}
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := p.Do(ctx, "op", func(context.Context) error {
		calls++
		cancel()
		return retryLater(time.Minute)
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
