// Package retry provides a bounded retry-with-backoff decorator for
// network calls. Which operations get wrapped is the caller's choice;
// local deterministic steps such as signing should not be.
package retry

import (
	"context"
	"errors"
	"time"
)

// Config controls how Do behaves. The zero value is usable and retries
// any error up to DefaultMaxAttempts.
type Config struct {
	// MaxAttempts is the total number of calls, including the first.
	MaxAttempts int

	// BaseDelay is the sleep before the second attempt. Each further
	// retry multiplies the delay by Multiplier.
	BaseDelay  time.Duration
	Multiplier float64

	// Retryable lists the errors worth retrying, matched with
	// errors.Is. Empty means every error is retryable. Anything not in
	// the set propagates immediately on first occurrence.
	Retryable []error

	// Sleep is swapped out in tests; nil means time.Sleep honoring ctx.
	Sleep func(context.Context, time.Duration) error
}

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
	DefaultMultiplier  = 2.0
)

// Do calls op up to MaxAttempts times, backing off between attempts, and
// returns the last error when every attempt fails.
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	delay := cfg.BaseDelay
	if delay <= 0 {
		delay = DefaultBaseDelay
	}
	mult := cfg.Multiplier
	if mult <= 0 {
		mult = DefaultMultiplier
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var zero T
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if !retryable(cfg.Retryable, err) {
			return zero, err
		}
		lastErr = err
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
		delay = time.Duration(float64(delay) * mult)
	}
	return zero, lastErr
}

func retryable(set []error, err error) bool {
	if len(set) == 0 {
		return true
	}
	for _, target := range set {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
