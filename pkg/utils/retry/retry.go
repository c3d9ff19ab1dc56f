package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRetry tells Blocking to call the function again.
var ErrRetry = errors.New("retry")

// ErrGaveUp is returned by a Backoff created with Limit when retries are exhausted.
var ErrGaveUp = errors.New("gave up retrying")

// Backoff is a (blocking) function returns when to retry.
//
// # Args
//
// - context: context. If context is canceled, Backoff should return ctx.Err().
//
// # Returns
//
// - error: nil if retry, non-nil if not.
type Backoff func(context.Context) error

// StaticBackoff waits for a fixed interval.
func StaticBackoff(interval time.Duration) Backoff {
	return ExponentialBackoff(interval, 1)
}

// ExponentialBackoff returns a Backoff function that waits with exponential backoff.
//
// For N-th call, it waits for `initialInterval * r^N` or context to be done.
func ExponentialBackoff(initialInterval time.Duration, r float64) Backoff {
	interval := initialInterval
	return func(ctx context.Context) error {
		timer := time.NewTimer(interval)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			interval = time.Duration(float64(interval) * r)
			return nil
		}
	}
}

// Limit allows b to be waited at most n times.
//
// After that, it returns ErrGaveUp without waiting.
func Limit(n int, b Backoff) Backoff {
	count := 0
	return func(ctx context.Context) error {
		if n <= count {
			return ErrGaveUp
		}
		count += 1
		return b(ctx)
	}
}

// Blocking calls f until it returns nil or non-retry error.
//
// # Args
//
// - ctx: context
//
// - b: backoff function, waited between calls of f
//
// - f: function to be called. If f returns an error wrapping ErrRetry,
// Blocking calls f again after backoff.
//
// # Returns
//
// - T: last return value of f
//
// - error: error returned by f, or error of backoff joined with the last error of f.
func Blocking[T any](ctx context.Context, b Backoff, f func() (T, error)) (T, error) {
	for {
		last, err := f()
		if err == nil {
			return last, nil
		}
		if !errors.Is(err, ErrRetry) {
			return last, err
		}
		if berr := b(ctx); berr != nil {
			return last, fmt.Errorf("%w (last error: %w)", berr, err)
		}
	}
}
