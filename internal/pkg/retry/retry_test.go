package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
)

var errTransient = errors.New("transient error")

func transientOnly(err error) bool {
	return errors.Is(err, errTransient)
}

func TestRetry_Success_FirstAttempt(t *testing.T) {
	// Arrange
	ctx := context.Background()
	config := retry.DefaultConfig()
	attemptCount := 0

	fn := func(ctx context.Context) error {
		attemptCount++
		return nil
	}

	// Act
	err := retry.Do(ctx, config, fn)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1, attemptCount)
}

func TestRetry_Success_AfterRetries(t *testing.T) {
	// Arrange
	ctx := context.Background()
	config := retry.Config{
		MaxAttempts:     5,
		InitialInterval: time.Millisecond * 10,
		MaxInterval:     time.Millisecond * 100,
		Multiplier:      2.0,
		RetryIf:         transientOnly,
	}
	attemptCount := 0
	failUntil := 3

	fn := func(ctx context.Context) error {
		attemptCount++
		if attemptCount < failUntil {
			return errTransient
		}
		return nil
	}

	// Act
	err := retry.Do(ctx, config, fn)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, failUntil, attemptCount)
}

func TestRetry_Failure_MaxAttemptsReached(t *testing.T) {
	// Arrange
	ctx := context.Background()
	config := retry.Config{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond * 10,
		MaxInterval:     time.Millisecond * 100,
		Multiplier:      2.0,
		RetryIf:         transientOnly,
	}
	attemptCount := 0

	fn := func(ctx context.Context) error {
		attemptCount++
		return errTransient
	}

	// Act
	err := retry.Do(ctx, config, fn)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, retry.ErrMaxRetriesExceeded)
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, attemptCount)
}

func TestRetry_NonRetryableError_ReturnsImmediately(t *testing.T) {
	// Arrange
	ctx := context.Background()
	config := retry.Config{
		MaxAttempts:     5,
		InitialInterval: time.Millisecond * 10,
		MaxInterval:     time.Millisecond * 100,
		Multiplier:      2.0,
		RetryIf:         transientOnly,
	}
	attemptCount := 0
	permanentErr := errors.New("permanent error")

	fn := func(ctx context.Context) error {
		attemptCount++
		return permanentErr
	}

	// Act
	err := retry.Do(ctx, config, fn)

	// Assert
	assert.Equal(t, permanentErr, err)
	assert.Equal(t, 1, attemptCount)
}

func TestRetry_ContextCanceled(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	config := retry.Config{
		MaxAttempts:     10,
		InitialInterval: time.Millisecond * 100,
		MaxInterval:     time.Second,
		Multiplier:      2.0,
		RetryIf:         transientOnly,
	}
	attemptCount := 0

	fn := func(ctx context.Context) error {
		attemptCount++
		if attemptCount == 2 {
			cancel()
		}
		return errTransient
	}

	// Act
	err := retry.Do(ctx, config, fn)

	// Assert
	assert.Error(t, err)
	assert.True(t, attemptCount <= 3)
}

func TestRetry_DoWithValue(t *testing.T) {
	// Arrange
	ctx := context.Background()
	config := retry.Config{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond * 10,
		MaxInterval:     time.Millisecond * 100,
		Multiplier:      2.0,
		RetryIf:         transientOnly,
	}
	attemptCount := 0

	// Act
	result, err := retry.DoWithValue(ctx, config, func(ctx context.Context) (int, error) {
		attemptCount++
		if attemptCount < 2 {
			return 0, errTransient
		}
		return 42, nil
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 2, attemptCount)
}
