package errors

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// RetryConfig bounds a retry sequence. The delay before attempt n+1 is
// BaseDelay * Multiplier^n.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	Multiplier float64
	// OnAttempt, when set, is invoked before every attempt with its
	// 1-based number and the error of the previous one (nil on the first).
	OnAttempt func(attempt int, lastErr error)
}

// Retry re-invokes op on retryable failure with exponentially increasing
// delay. It stops on the first success, on a non-retryable error, on
// context cancellation, or once MaxRetries extra attempts are spent; the
// last observed error is returned to the caller. A retry sequence is not
// externally cancellable except through ctx.
func Retry(ctx context.Context, c clock.Clock, cfg RetryConfig, op func() error) error {
	delay := cfg.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxRetries+1; attempt++ {
		if cfg.OnAttempt != nil {
			cfg.OnAttempt(attempt, lastErr)
		}
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !Retryable(lastErr) || attempt == cfg.MaxRetries+1 {
			return lastErr
		}
		timer := c.Timer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = time.Duration(float64(delay) * cfg.Multiplier)
	}
	return lastErr
}
