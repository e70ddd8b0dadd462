// Package client implements the pieces behind the terminal chat client: the
// retrying network client, the persisted history and settings store, and the
// connectivity monitor.
package client

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

const (
	// DefaultMaxAttempts caps the retry loop at three total attempts.
	DefaultMaxAttempts = 3
	// baseDelay is the wait before the first retry; each subsequent wait
	// doubles it.
	baseDelay = time.Second
)

// newBackOff builds a deterministic exponential schedule: 1s, 2s, 4s...
// with no jitter, stopping after maxAttempts total attempts.
func newBackOff(maxAttempts int) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = baseDelay
	expo.Multiplier = 2
	expo.RandomizationFactor = 0
	expo.MaxInterval = time.Minute
	expo.MaxElapsedTime = 0
	return backoff.WithMaxRetries(expo, uint64(maxAttempts-1))
}

// WithRetry runs op until it succeeds or maxAttempts attempts have failed,
// then returns the last error. Every failure is retried, including HTTP 4xx
// responses. TODO: skip retrying 4xx, a rejected prompt stays rejected.
func WithRetry(ctx context.Context, maxAttempts int, op func() error) error {
	return retryWithTimer(ctx, maxAttempts, op, nil)
}

// retryWithTimer is WithRetry with an injectable timer so tests can observe
// the delays without sleeping. A nil timer uses the real clock.
func retryWithTimer(ctx context.Context, maxAttempts int, op func() error, timer backoff.Timer) error {
	bo := backoff.WithContext(newBackOff(maxAttempts), ctx)
	return backoff.RetryNotifyWithTimer(op, bo, nil, timer)
}
