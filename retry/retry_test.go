package retry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	failure := errors.New("persistent")
	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return failure
	})

	require.Error(t, err)
	assert.Equal(t, failure, err)
	assert.Equal(t, 3, calls)
}

func TestDoNonRetryableError(t *testing.T) {
	fatal := errors.New("fatal")
	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Retryable:   func(err error) bool { return !errors.Is(err, fatal) },
	}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return fatal
	})

	require.Error(t, err)
	assert.Equal(t, fatal, err)
	assert.Equal(t, 1, calls)
}

func TestDoInvalidMaxAttempts(t *testing.T) {
	policy := Policy{MaxAttempts: 0, BaseDelay: time.Millisecond}

	err := policy.Do(context.Background(), func() error { return nil })

	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestDoContextCancelledDuringBackoff(t *testing.T) {
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	calls := 0
	err := policy.Do(ctx, func() error {
		calls++
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDoContextAlreadyCancelled(t *testing.T) {
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := policy.Do(ctx, func() error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestDoLogsThroughInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	policy := Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: logger}

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "operation failed, will retry")
	assert.Contains(t, buf.String(), "operation succeeded after retry")
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, 3, policy.MaxAttempts)
	assert.Equal(t, 2*time.Second, policy.BaseDelay)
	assert.Nil(t, policy.Retryable)
}
