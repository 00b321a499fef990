package providerutils

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
	"github.com/stretchr/testify/mock"
)

// MockRateLimiter is a mock type for the RateLimiter type
type MockRateLimiter struct {
	mock.Mock
}

// Allow provides a mock function with given fields: ctx, key, limit
func (_m *MockRateLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	ret := _m.Called(ctx, key, limit)

	var r0 *redis_rate.Result
	if rf, ok := ret.Get(0).(func(context.Context, string, redis_rate.Limit) *redis_rate.Result); ok {
		r0 = rf(ctx, key, limit)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*redis_rate.Result)
	}

	return r0, ret.Error(1)
}

// NewMockRateLimiter creates a new instance of MockRateLimiter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockRateLimiter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRateLimiter {
	m := &MockRateLimiter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
