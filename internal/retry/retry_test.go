package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockbar/internal/retry"
)

func TestDo_FirstSuccessReturnsImmediately(t *testing.T) {
	t.Parallel()

	calls := 0
	result, err := retry.Do(context.Background(), 5, time.Hour, func(context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, result)
	require.Equal(t, 1, calls)
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	result, err := retry.Do(context.Background(), 5, time.Millisecond, func(context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", result)
	require.Equal(t, 3, calls)
}

func TestDo_AllAttemptsFailReturnsLastError(t *testing.T) {
	t.Parallel()

	calls := 0
	lastErr := errors.New("attempt 4")
	_, err := retry.Do(context.Background(), 4, time.Millisecond, func(context.Context) (int, error) {
		calls++
		if calls == 4 {
			return 0, lastErr
		}
		return 0, errors.New("earlier")
	})
	require.ErrorIs(t, err, lastErr)
	require.Equal(t, 4, calls)
}

func TestDo_DelaysBetweenAttemptsOnly(t *testing.T) {
	t.Parallel()

	const delay = 100 * time.Millisecond
	start := time.Now()
	_, err := retry.Do(context.Background(), 3, delay, func(context.Context) (int, error) {
		return 0, errors.New("always")
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	// Two delays between three attempts, none after the last.
	require.GreaterOrEqual(t, elapsed, 2*delay)
	require.Less(t, elapsed, 3*delay)
}

func TestDo_ContextCancelledDuringDelay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := retry.Do(ctx, 5, time.Hour, func(context.Context) (int, error) {
			calls++
			return 0, errors.New("fail")
		})
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancellation")
	}
	require.Equal(t, 1, calls)
}

func TestDo_AttemptFloorIsOne(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := retry.Do(context.Background(), 0, time.Millisecond, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("fail")
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}
