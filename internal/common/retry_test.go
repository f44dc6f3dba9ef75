package common

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hindsight-cli/hindsight/internal/service"
)

func TestWithRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return nil
	}, service.RetryOptions{MaxAttempts: 3})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetrySucceedsAfterFailure(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 2 {
			return &RetryableError{Err: errors.New("malformed"), Retryable: true}
		}
		return nil
	}, service.RetryOptions{MaxAttempts: 3})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errors.New("malformed"), Retryable: true}
	}, service.RetryOptions{MaxAttempts: 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 2, calls)
}

func TestWithRetryNonRetryableShortCircuits(t *testing.T) {
	calls := 0
	fatal := errors.New("bad credentials")
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: fatal, Retryable: false}
	}, service.RetryOptions{MaxAttempts: 5})

	require.Error(t, err)
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestWithRetryDefaultsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errors.New("nope"), Retryable: true}
	}, service.RetryOptions{})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return &RetryableError{Err: errors.New("malformed"), Retryable: true}
	}, service.RetryOptions{MaxAttempts: 5})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
