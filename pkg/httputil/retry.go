// Package httputil provides shared HTTP plumbing for the data.gov.uk
// client: transient-failure classification and bounded retry with
// exponential backoff.
//
// Only errors wrapped in [RetryableError] are retried. Wrap transient
// failures (connection errors, timeouts, 5xx responses) with this type;
// logical failures such as a missing organization must not be wrapped,
// so they surface to the caller immediately.
package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient so [Retry] will attempt the
// operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a RetryableError. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Retry executes fn up to attempts times, doubling delay between failed
// attempts. Errors not wrapped with [RetryableError] abort immediately.
// It returns the last error if every attempt fails, or ctx.Err() if the
// context is cancelled while waiting to retry.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !errors.As(err, new(*RetryableError)) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff runs fn with the package defaults: two attempts with a
// one second pause before the second. The provider is a shared public
// service, so the retry budget is deliberately small.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 2, time.Second, fn)
}
