package retry

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		Enabled:       true,
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestExecuteWithRetryEventuallySucceeds(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient write failure")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetryExhaustsBudget(t *testing.T) {
	attempts := 0
	wantErr := errors.New("still failing")
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		return wantErr
	})

	assert.Equal(t, wantErr, err)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetryStopsOnPermanentError(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		return fs.ErrPermission
	})

	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, 1, attempts)
}

func TestExecuteWithRetryDisabledRunsOnce(t *testing.T) {
	cfg := fastConfig()
	cfg.Enabled = false

	attempts := 0
	err := ExecuteWithRetry(context.Background(), cfg, func(ctx context.Context) error {
		attempts++
		return errors.New("boom")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestExecuteWithRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ExecuteWithRetry(ctx, fastConfig(), func(ctx context.Context) error {
		t.Fatal("fn must not run after cancellation")
		return nil
	})

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestIsRetryableError(t *testing.T) {
	cfg := fastConfig()

	assert.False(t, IsRetryableError(nil, cfg))
	assert.False(t, IsRetryableError(context.Canceled, cfg))
	assert.False(t, IsRetryableError(fs.ErrPermission, cfg))
	assert.False(t, IsRetryableError(errors.New("open data/orders.csv: permission denied"), cfg))
	assert.True(t, IsRetryableError(errors.New("write data/orders.csv: input/output error"), cfg))

	cfg.RetryPredicate = func(err error) bool { return true }
	assert.True(t, IsRetryableError(fs.ErrPermission, cfg))
}

func TestExponentialBackoffWithJitterBounds(t *testing.T) {
	cfg := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}

	assert.Equal(t, time.Duration(0), ExponentialBackoffWithJitter(0, cfg))

	for attempt := 1; attempt <= 10; attempt++ {
		d := ExponentialBackoffWithJitter(attempt, cfg)
		assert.GreaterOrEqual(t, d, time.Duration(0))
		// 1.2x jitter over the 2s cap
		assert.LessOrEqual(t, d, 2400*time.Millisecond)
	}

	cfg.JitterEnabled = false
	assert.Equal(t, 200*time.Millisecond, ExponentialBackoffWithJitter(2, cfg))
	assert.Equal(t, 2*time.Second, ExponentialBackoffWithJitter(10, cfg))
}
