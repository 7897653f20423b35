package circuitbreaker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/circuitbreaker"
	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker_Closed_Success(t *testing.T) {
	// Arrange
	cb := circuitbreaker.NewCircuitBreaker("test", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     time.Second * 30,
	})

	ctx := context.Background()

	// Act
	result, err := cb.Execute(ctx, func() (interface{}, error) {
		return "success", nil
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_OpenAfterFailures(t *testing.T) {
	// Arrange
	cb := circuitbreaker.NewCircuitBreaker("test", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     time.Second * 1,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	ctx := context.Background()
	failFunc := func() (interface{}, error) {
		return nil, errors.New("test error")
	}

	// Act - trigger failures to open circuit
	for i := 0; i < 3; i++ {
		_, err := cb.Execute(ctx, failFunc)
		assert.Error(t, err)
	}

	// Assert - circuit should be open now
	assert.Equal(t, circuitbreaker.StateOpen, cb.State())

	// Further calls should fail immediately with ErrCircuitOpen
	_, err := cb.Execute(ctx, failFunc)
	assert.Equal(t, circuitbreaker.ErrCircuitOpen, err)
}

func TestCircuitBreaker_HalfOpen_Recovery(t *testing.T) {
	// Arrange
	cb := circuitbreaker.NewCircuitBreaker("test", circuitbreaker.Config{
		MaxRequests: 2,
		Interval:    time.Second * 10,
		Timeout:     time.Millisecond * 500,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	ctx := context.Background()
	failFunc := func() (interface{}, error) {
		return nil, errors.New("test error")
	}
	successFunc := func() (interface{}, error) {
		return "success", nil
	}

	// Act - open circuit
	for i := 0; i < 2; i++ {
		cb.Execute(ctx, failFunc)
	}
	assert.Equal(t, circuitbreaker.StateOpen, cb.State())

	// Wait for timeout to transition to half-open
	time.Sleep(time.Millisecond * 600)

	// Try successful requests in half-open state
	_, err := cb.Execute(ctx, successFunc)
	assert.NoError(t, err)

	_, err = cb.Execute(ctx, successFunc)
	assert.NoError(t, err)

	// Assert - circuit should be closed now
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_ResultValueNotCountedAsFailure(t *testing.T) {
	// Arrange: 결과 값으로 에러를 반환하는 패턴은 실패로 집계되지 않습니다
	cb := circuitbreaker.NewCircuitBreaker("test", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     time.Second * 1,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	ctx := context.Background()
	domainErr := errors.New("not found")

	// Act
	for i := 0; i < 5; i++ {
		result, err := cb.Execute(ctx, func() (interface{}, error) {
			return domainErr, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, domainErr, result)
	}

	// Assert
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}
