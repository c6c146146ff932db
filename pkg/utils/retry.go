package utils

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryOptions contains configuration for retry behavior.
type RetryOptions struct {
	MaxElapsedTime  time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
}

// GetThrottleRetryOptions returns retry options for rate-limited baseline fetches.
// Throttled platforms expect a fixed wait, so the interval does not grow between attempts.
func GetThrottleRetryOptions(wait time.Duration, maxRetries uint64) RetryOptions {
	return RetryOptions{
		MaxElapsedTime:  time.Duration(maxRetries+1) * (wait + time.Minute),
		InitialInterval: wait,
		MaxInterval:     wait,
		MaxRetries:      maxRetries,
	}
}

// WithRetry executes the given operation with backoff using provided options.
func WithRetry[T any](ctx context.Context, operation func() (T, error), opts RetryOptions) (T, error) {
	var result T

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(opts.MaxElapsedTime),
		backoff.WithInitialInterval(opts.InitialInterval),
		backoff.WithMaxInterval(opts.MaxInterval),
		backoff.WithMultiplier(1),
		backoff.WithRandomizationFactor(0),
	), opts.MaxRetries)

	backoffOperation := func() error {
		var err error
		result, err = operation()
		return err
	}

	err := backoff.Retry(backoffOperation, backoff.WithContext(b, ctx))
	return result, err
}
