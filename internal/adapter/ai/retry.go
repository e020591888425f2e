// Package ai wraps the external generative model behind a resilient
// gateway: bounded retry with backoff, audit logging, and the three call
// shapes the pipeline needs.
package ai

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// RetryPolicy is an explicit, injectable retry contract for model calls.
// Making it a value (instead of decorating call sites) keeps the policy
// testable and substitutable.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultRetryPolicy matches the pipeline contract: 3 attempts total,
// exponential backoff starting at 2s and capped at 10s between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialInterval: 2 * time.Second, MaxInterval: 10 * time.Second, Multiplier: 2.0}
}

// NoRetryPolicy performs a single attempt; intended for unit tests.
func NoRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 1, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1.0}
}

// Backoff builds the context-aware backoff schedule for one call.
func (p RetryPolicy) Backoff(ctx context.Context) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = p.InitialInterval
	expo.MaxInterval = p.MaxInterval
	expo.Multiplier = p.Multiplier
	expo.RandomizationFactor = 0
	expo.MaxElapsedTime = 0 // attempts, not wall clock, bound the loop
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(expo, uint64(attempts-1)), ctx)
}
