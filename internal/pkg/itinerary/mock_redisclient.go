package itinerary

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockRedisClient is a mock type for the RedisClient type
type MockRedisClient struct {
	mock.Mock
}

// SetNX provides a mock function with given fields: ctx, key, value, expiration
func (_m *MockRedisClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	ret := _m.Called(ctx, key, value, expiration)

	var r0 *redis.BoolCmd
	if rf, ok := ret.Get(0).(func(context.Context, string, interface{}, time.Duration) *redis.BoolCmd); ok {
		r0 = rf(ctx, key, value, expiration)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*redis.BoolCmd)
	}

	return r0
}

// Del provides a mock function with given fields: ctx, keys
func (_m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := []interface{}{ctx}
	for _, key := range keys {
		args = append(args, key)
	}
	ret := _m.Called(args...)

	var r0 *redis.IntCmd
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*redis.IntCmd)
	}

	return r0
}

// Set provides a mock function with given fields: ctx, key, value, expiration
func (_m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	ret := _m.Called(ctx, key, value, expiration)

	var r0 *redis.StatusCmd
	if rf, ok := ret.Get(0).(func(context.Context, string, interface{}, time.Duration) *redis.StatusCmd); ok {
		r0 = rf(ctx, key, value, expiration)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*redis.StatusCmd)
	}

	return r0
}

// Get provides a mock function with given fields: ctx, key
func (_m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	ret := _m.Called(ctx, key)

	var r0 *redis.StringCmd
	if rf, ok := ret.Get(0).(func(context.Context, string) *redis.StringCmd); ok {
		r0 = rf(ctx, key)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*redis.StringCmd)
	}

	return r0
}

// NewMockRedisClient creates a new instance of MockRedisClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockRedisClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRedisClient {
	m := &MockRedisClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
