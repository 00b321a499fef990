package providerutils

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis_rate/v10"
)

const defaultBackoffBase = 200 * time.Millisecond

// RateLimiter is satisfied by *redis_rate.Limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// Policy is the per provider call budget.
type Policy struct {
	Name         string
	Timeout      time.Duration
	MaxRetries   int
	RateLimitRPS int
	Limiter      RateLimiter
	BackoffBase  time.Duration
}

// Do runs call under the provider timeout. Every attempt takes a token from
// the distributed rate limit first. Internal provider errors are retried
// with exponential backoff, anything else is returned as is.
func Do(ctx context.Context, policy Policy, call func(ctx context.Context) error) error {
	if policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
	}

	backoffBase := policy.BackoffBase
	if backoffBase <= 0 {
		backoffBase = defaultBackoffBase
	}

	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if err := policy.allow(ctx); err != nil {
			return err
		}

		err := call(ctx)
		if err == nil {
			return nil
		}

		if !errors.Is(err, ErrProviderInternalError) {
			return err
		}

		lastErr = err
		slog.ErrorContext(ctx, "provider call failed", "provider", policy.Name,
			"attempt", attempt+1, "error", err)

		if attempt < policy.MaxRetries {
			// Exponential backoff: base * 2^attempt
			backoff := backoffBase * time.Duration(1<<attempt)
			slog.InfoContext(ctx, "retrying with exponential backoff", "provider", policy.Name,
				"backoff", backoff, "next_attempt", attempt+2)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("context cancelled or timeout: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed after retries: %w", ErrRetryExceeded.WithCause(lastErr))
}

func (p Policy) allow(ctx context.Context) error {
	if p.Limiter == nil || p.RateLimitRPS <= 0 {
		return nil
	}

	// distributed rate limit using leaky bucket
	res, err := p.Limiter.Allow(ctx, fmt.Sprintf("limit:%s", p.Name),
		redis_rate.PerSecond(p.RateLimitRPS))
	if err != nil {
		return fmt.Errorf("failed to rate limit: %w", err)
	}

	if res.Allowed == 0 {
		return ErrProviderRateLimitExceeded
	}

	return nil
}
