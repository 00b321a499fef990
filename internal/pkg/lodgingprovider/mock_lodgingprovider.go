package lodgingprovider

import (
	"context"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/stretchr/testify/mock"
)

// MockLodgingProvider is a mock type for the LodgingProvider type
type MockLodgingProvider struct {
	mock.Mock
}

// Search provides a mock function with given fields: ctx, query
func (_m *MockLodgingProvider) Search(ctx context.Context, query dto.LodgingQuery) ([]dto.LodgingCandidate, error) {
	ret := _m.Called(ctx, query)

	var r0 []dto.LodgingCandidate
	if rf, ok := ret.Get(0).(func(context.Context, dto.LodgingQuery) []dto.LodgingCandidate); ok {
		r0 = rf(ctx, query)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]dto.LodgingCandidate)
	}

	return r0, ret.Error(1)
}

// NewMockLodgingProvider creates a new instance of MockLodgingProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockLodgingProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLodgingProvider {
	m := &MockLodgingProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
