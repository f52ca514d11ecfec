// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package retry runs an operation a bounded number of times with a backoff
// between attempts.
//
// It serves the "optimistic insert, retry on conflict" pattern: the operation
// signals a retryable outcome by returning an error wrapping [ErrRetry].
package retry

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrRetry marks an attempt that may succeed if tried again.
	ErrRetry = errors.New("retry")

	// ErrExhausted is returned when every attempt asked for a retry.
	ErrExhausted = errors.New("retry: attempts exhausted")
)

// Backoff blocks until the next attempt may start. It returns ctx.Err() when
// the context is done first.
type Backoff func(ctx context.Context) error

// StaticBackoff waits a fixed interval between attempts.
func StaticBackoff(interval time.Duration) Backoff {
	return ExponentialBackoff(interval, 1)
}

// ExponentialBackoff waits initialInterval, then multiplies the wait by r after
// every call.
func ExponentialBackoff(initialInterval time.Duration, r float64) Backoff {
	interval := initialInterval
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ctx.Err()
		}

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

// Attempts calls f up to n times. The first call is immediate; b runs before
// each following one. f receives the zero-based attempt number.
//
// It returns the first successful value, the first non-retry error, or
// [ErrExhausted] joined with the last retry error.
func Attempts[T any](ctx context.Context, n int, b Backoff, f func(attempt int) (T, error)) (T, error) {
	var zero T
	var last error

	for attempt := 0; attempt < n; attempt++ {
		if attempt > 0 {
			if err := b(ctx); err != nil {
				return zero, err
			}
		}

		value, err := f(attempt)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, ErrRetry) {
			return zero, err
		}
		last = err
	}

	return zero, errors.Join(ErrExhausted, last)
}
