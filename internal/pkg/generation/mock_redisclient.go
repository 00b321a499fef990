package generation

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

// Incr provides a mock function with given fields: ctx, key
func (_m *MockRedisClient) Incr(ctx context.Context, key string) *redis.IntCmd {
	ret := _m.Called(ctx, key)

	var r0 *redis.IntCmd
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*redis.IntCmd)
	}

	return r0
}

// Expire provides a mock function with given fields: ctx, key, expiration
func (_m *MockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	ret := _m.Called(ctx, key, expiration)

	var r0 *redis.BoolCmd
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*redis.BoolCmd)
	}

	return r0
}

// Get provides a mock function with given fields: ctx, key
func (_m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	ret := _m.Called(ctx, key)

	var r0 *redis.StringCmd
	if ret.Get(0) != nil {
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
