package distance

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock type for the Provider type
type MockProvider struct {
	mock.Mock
}

// Distance provides a mock function with given fields: ctx, origin, destination, mode
func (_m *MockProvider) Distance(ctx context.Context, origin string, destination string, mode Mode) (Result, error) {
	ret := _m.Called(ctx, origin, destination, mode)

	var r0 Result
	if rf, ok := ret.Get(0).(func(context.Context, string, string, Mode) Result); ok {
		r0 = rf(ctx, origin, destination, mode)
	} else {
		r0 = ret.Get(0).(Result)
	}

	return r0, ret.Error(1)
}

// NewMockProvider creates a new instance of MockProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProvider {
	m := &MockProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
