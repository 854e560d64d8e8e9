// Package retry wraps an operation with bounded exponential backoff.
// The flat-file store uses it to ride out transient filesystem errors
// without turning a best-effort write into a hard failure.
package retry

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/realyassine/SouqFX/config"
)

// Config controls retry behaviour for one operation class.
type Config struct {
	Enabled       bool
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterEnabled bool

	// RetryPredicate, when set, short-circuits the default
	// classification: returning true forces a retry.
	RetryPredicate func(error) bool
}

// DefaultConfig suits short local file operations.
var DefaultConfig = Config{
	Enabled:       true,
	MaxAttempts:   3,
	InitialDelay:  50 * time.Millisecond,
	MaxDelay:      500 * time.Millisecond,
	BackoffFactor: 2.0,
	JitterEnabled: true,
}

// FromStoreConfig builds a retry Config from the store section of the
// application configuration.
func FromStoreConfig(retryConfig config.RetryConfig) Config {
	return Config{
		Enabled:       retryConfig.Enabled,
		MaxAttempts:   retryConfig.MaxAttempts,
		InitialDelay:  retryConfig.InitialDelay,
		MaxDelay:      retryConfig.MaxDelay,
		BackoffFactor: retryConfig.BackoffFactor,
		JitterEnabled: retryConfig.JitterEnabled,
	}
}

// ExponentialBackoffWithJitter computes the delay before the given
// attempt, capped at MaxDelay, with a 0.8x to 1.2x jitter spread when
// enabled.
func ExponentialBackoffWithJitter(attempt int, config Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	if config.JitterEnabled {
		jitterFactor := 0.8 + rand.Float64()*0.4
		delay = delay * jitterFactor
	}
	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}

// IsRetryableError classifies an error. Context cancellation and
// permission problems never retry; anything else hitting a local file
// is treated as transient.
func IsRetryableError(err error, config Config) bool {
	if err == nil {
		return false
	}
	if config.RetryPredicate != nil && config.RetryPredicate(err) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "read-only file system") {
		return false
	}

	return true
}

// ExecuteWithRetry runs fn until it succeeds, the error is classified
// as permanent, the attempt budget runs out or the context ends.
func ExecuteWithRetry(ctx context.Context, config Config, fn func(ctx context.Context) error) error {
	if !config.Enabled {
		return fn(ctx)
	}

	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryableError(err, config) || attempt == config.MaxAttempts {
			break
		}

		delay := ExponentialBackoffWithJitter(attempt, config)
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	return lastErr
}
