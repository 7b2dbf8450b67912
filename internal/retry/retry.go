// Package retry provides a bounded fixed-delay retry wrapper for failable
// operations.
package retry

import (
	"context"
	"time"
)

// Do runs fn up to maxAttempts times, waiting delay between failed attempts.
// The first success returns immediately; there is no delay after the final
// attempt. When every attempt fails, the error from the last attempt is
// returned. A maxAttempts below 1 is treated as 1. The delay wait is
// context-aware: cancellation aborts with ctx.Err().
func Do[T any](ctx context.Context, maxAttempts int, delay time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var zero T
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxAttempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return zero, lastErr
}
