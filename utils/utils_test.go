package utils

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

// Circuit Breaker Tests

func TestCircuitBreaker_NewCircuitBreaker(t *testing.T) {
	cb := NewCircuitBreaker("test", 5, 30*time.Second)

	assert.Equal(t, "test", cb.Name())
	assert.Equal(t, uint32(5), cb.maxFailures)
	assert.Equal(t, 30*time.Second, cb.timeout)
	assert.Equal(t, StateClosed, cb.State())

	assert.Equal(t, uint32(1), NewCircuitBreaker("zero", 0, time.Second).maxFailures)
}

func TestCircuitBreaker_DoSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)
	ctx := context.Background()

	called := false
	err := cb.Do(ctx, func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().Requests)
	assert.Equal(t, uint32(1), cb.Counts().TotalSuccesses)
	assert.Equal(t, uint32(0), cb.Counts().TotalFailures)
}

func TestCircuitBreaker_DoFailure(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)
	ctx := context.Background()

	expectedError := errors.New("test error")
	err := cb.Do(ctx, func(ctx context.Context) error {
		return expectedError
	})

	assert.Equal(t, expectedError, err)
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().TotalFailures)
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}

func TestCircuitBreaker_StateTransitions(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, 10*time.Millisecond)
	ctx := context.Background()
	fail := func(ctx context.Context) error { return errors.New("fail") }
	succeed := func(ctx context.Context) error { return nil }

	assert.Error(t, cb.Do(ctx, fail))
	assert.Equal(t, StateClosed, cb.State())

	assert.Error(t, cb.Do(ctx, fail))
	assert.Equal(t, StateOpen, cb.State())

	assert.ErrorIs(t, cb.Do(ctx, succeed), ErrBreakerOpen)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, cb.State())

	assert.NoError(t, cb.Do(ctx, succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)
	ctx := context.Background()
	fail := func(ctx context.Context) error { return errors.New("fail") }

	assert.Error(t, cb.Do(ctx, fail))
	assert.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, cb.State())

	assert.Error(t, cb.Do(ctx, fail))
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute)
	ctx := context.Background()

	assert.Error(t, cb.Do(ctx, func(ctx context.Context) error { return errors.New("fail") }))
	assert.NoError(t, cb.Do(ctx, func(ctx context.Context) error { return nil }))
	assert.Error(t, cb.Do(ctx, func(ctx context.Context) error { return errors.New("fail") }))

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(2), cb.Counts().TotalFailures)
}

func TestCircuitBreaker_HalfOpenAllowsSingleProbe(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)
	ctx := context.Background()

	assert.Error(t, cb.Do(ctx, func(ctx context.Context) error { return errors.New("fail") }))
	time.Sleep(20 * time.Millisecond)

	probing := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = cb.Do(ctx, func(ctx context.Context) error {
			close(probing)
			<-release
			return nil
		})
	}()

	<-probing
	assert.ErrorIs(t, cb.Do(ctx, func(ctx context.Context) error { return nil }), ErrTooManyRequests)
	close(release)
	wg.Wait()

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_PanicRecovery(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = cb.Do(ctx, func(ctx context.Context) error {
			panic("test panic")
		})
	})

	assert.Equal(t, uint32(1), cb.Counts().TotalFailures)
}

func TestCircuitBreaker_ConcurrentAccess(t *testing.T) {
	cb := NewCircuitBreaker("test", 1000, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	numGoroutines := 10
	requestsPerGoroutine := 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < requestsPerGoroutine; j++ {
				_ = cb.Do(ctx, func(ctx context.Context) error { return nil })
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, uint32(numGoroutines*requestsPerGoroutine), cb.Counts().Requests)
	assert.Equal(t, uint32(numGoroutines*requestsPerGoroutine), cb.Counts().TotalSuccesses)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}

// Redis Health Check Tests

func TestRedisHealthCheck_Success(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	mock.ExpectPing().SetVal("PONG")

	err := RedisHealthCheck(context.Background(), db)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisHealthCheck_Failure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	mock.ExpectPing().SetErr(errors.New("connection failed"))

	err := RedisHealthCheck(context.Background(), db)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis health check failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
