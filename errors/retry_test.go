package errors

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

// attemptLog records attempt instants from the retry goroutine safely.
type attemptLog struct {
	mu    sync.Mutex
	times []time.Time
}

func (a *attemptLog) record(t time.Time) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.times = append(a.times, t)
	return len(a.times)
}

func (a *attemptLog) snapshot() []time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]time.Time(nil), a.times...)
}

// waitFor blocks until n attempts are recorded, then settles briefly so the
// retry goroutine reaches its backoff timer before the mock clock advances.
func (a *attemptLog) waitFor(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		a.mu.Lock()
		defer a.mu.Unlock()
		return len(a.times) >= n
	}, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	req := require.New(t)
	mock := clock.NewMock()

	var log attemptLog
	op := func() error {
		if log.record(mock.Now()) < 3 {
			return fmt.Errorf("connection reset")
		}
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- Retry(context.Background(), mock, RetryConfig{
			MaxRetries: 5,
			BaseDelay:  100 * time.Millisecond,
			Multiplier: 2,
		}, op)
	}()

	// Backoff doubles between attempts: 100ms then 200ms.
	log.waitFor(t, 1)
	mock.Add(100 * time.Millisecond)
	log.waitFor(t, 2)
	mock.Add(200 * time.Millisecond)
	log.waitFor(t, 3)

	req.NoError(<-done)
	times := log.snapshot()
	req.Len(times, 3)
	req.Equal(100*time.Millisecond, times[1].Sub(times[0]))
	req.Equal(200*time.Millisecond, times[2].Sub(times[1]))
}

func TestRetry_NonRetryableStopsImmediately(t *testing.T) {
	req := require.New(t)
	mock := clock.NewMock()

	calls := 0
	err := Retry(context.Background(), mock, RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		Multiplier: 2,
	}, func() error {
		calls++
		return ErrEmptyContent
	})

	req.ErrorIs(err, ErrEmptyContent)
	req.Equal(1, calls)
}

func TestRetry_ExhaustionReturnsLastError(t *testing.T) {
	req := require.New(t)
	mock := clock.NewMock()

	var calls atomic.Int32
	var log attemptLog
	done := make(chan error, 1)
	go func() {
		done <- Retry(context.Background(), mock, RetryConfig{
			MaxRetries: 2,
			BaseDelay:  50 * time.Millisecond,
			Multiplier: 2,
			OnAttempt: func(attempt int, _ error) {
				log.record(mock.Now())
			},
		}, func() error {
			return fmt.Errorf("network down (%d)", calls.Add(1))
		})
	}()

	log.waitFor(t, 1)
	mock.Add(50 * time.Millisecond)
	log.waitFor(t, 2)
	mock.Add(100 * time.Millisecond)
	log.waitFor(t, 3)

	err := <-done
	req.EqualError(err, "network down (3)")
	req.Equal(int32(3), calls.Load())
}

func TestRetry_ContextCancellation(t *testing.T) {
	req := require.New(t)
	mock := clock.NewMock()
	ctx, cancel := context.WithCancel(context.Background())

	var log attemptLog
	done := make(chan error, 1)
	go func() {
		done <- Retry(ctx, mock, RetryConfig{
			MaxRetries: 10,
			BaseDelay:  time.Minute,
			Multiplier: 2,
		}, func() error {
			log.record(mock.Now())
			return fmt.Errorf("timeout talking to peer")
		})
	}()

	log.waitFor(t, 1)
	cancel()

	req.ErrorIs(<-done, context.Canceled)
	req.Len(log.snapshot(), 1)
}
