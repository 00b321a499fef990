package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisTracker shares generations between service instances. Counters
// expire after ttl of inactivity.
type RedisTracker struct {
	redis RedisClient
	ttl   time.Duration
}

func NewRedisTracker(redis RedisClient, ttl time.Duration) *RedisTracker {
	return &RedisTracker{
		redis: redis,
		ttl:   ttl,
	}
}

func (t *RedisTracker) key(scope string) string {
	return "generation:" + scope
}

func (t *RedisTracker) Next(ctx context.Context, scope string) (Generation, error) {
	value, err := t.redis.Incr(ctx, t.key(scope)).Result()
	if err != nil {
		return Generation{}, fmt.Errorf("failed to advance generation: %w", err)
	}

	if t.ttl > 0 {
		if err := t.redis.Expire(ctx, t.key(scope), t.ttl).Err(); err != nil {
			return Generation{}, fmt.Errorf("failed to set generation expiry: %w", err)
		}
	}

	return Generation{Scope: scope, Value: value}, nil
}

// IsCurrent treats an expired counter as superseded.
func (t *RedisTracker) IsCurrent(ctx context.Context, gen Generation) (bool, error) {
	value, err := t.redis.Get(ctx, t.key(gen.Scope)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read generation: %w", err)
	}

	return value == gen.Value, nil
}
