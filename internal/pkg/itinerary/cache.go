package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// BundleCache keeps chain results per leg plan and preferences so repeated
// searches do not spend provider calls again.
type BundleCache struct {
	redis RedisClient
}

func NewBundleCache(redis RedisClient) *BundleCache {
	return &BundleCache{
		redis: redis,
	}
}

func (c *BundleCache) GetLockKey(legs []dto.Leg, prefs dto.Preferences) string {
	return "itinerary:lock:" + searchKey(legs, prefs)
}

func (c *BundleCache) GetCacheKey(legs []dto.Leg, prefs dto.Preferences) string {
	return "itinerary:cache:" + searchKey(legs, prefs)
}

func (c *BundleCache) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, "1", timeout).Result()
}

func (c *BundleCache) ReleaseLock(ctx context.Context, key string) error {
	return c.redis.Del(ctx, key).Err()
}

func (c *BundleCache) SetChain(ctx context.Context, key string, result ChainResult, expiration time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal chain result: %w", err)
	}

	if err := c.redis.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set chain result: %w", err)
	}

	return nil
}

// GetChain returns redis.Nil when nothing is cached under key.
func (c *BundleCache) GetChain(ctx context.Context, key string) (ChainResult, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return ChainResult{}, err
	}

	var result ChainResult
	if err := json.Unmarshal(data, &result); err != nil {
		return ChainResult{}, fmt.Errorf("failed to unmarshal chain result: %w", err)
	}

	return result, nil
}

func searchKey(legs []dto.Leg, prefs dto.Preferences) string {
	parts := make([]string, 0, len(legs)+1)
	for _, leg := range legs {
		parts = append(parts, fmt.Sprintf("%s>%s@%s", leg.DepartureAirports, leg.ArrivalAirports, leg.TravelDate))
	}

	stops := "any"
	if prefs.MaxStops != nil {
		stops = fmt.Sprint(*prefs.MaxStops)
	}
	parts = append(parts, fmt.Sprintf("%s:%d:%s:%s", prefs.CabinClass, prefs.Adults, prefs.Currency, stops))

	return strings.Join(parts, "|")
}
