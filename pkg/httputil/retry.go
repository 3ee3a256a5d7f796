package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. Upstream clients wrap
// timeouts, connection failures, 5xx and 429 responses with it; anything
// else (a 404, a decode error) fails immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay between tries.
// Only errors wrapped in [RetryableError] are retried; the first
// non-retryable error is returned as-is. A cancelled context interrupts
// the backoff wait and returns ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for left := attempts; left > 0; left-- {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !errors.As(lastErr, new(*RetryableError)) {
			return lastErr
		}
		if left == 1 {
			break
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		delay *= 2
	}
	return lastErr
}

// RetryWithBackoff is [Retry] with the defaults the upstream clients use:
// three attempts starting at one second.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

// sleep waits out the backoff delay unless the context ends first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
