package flightprovider

import (
	"context"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/stretchr/testify/mock"
)

// MockFlightSearchProvider is a mock type for the FlightSearchProvider type
type MockFlightSearchProvider struct {
	mock.Mock
}

// Search provides a mock function with given fields: ctx, shape, prefs
func (_m *MockFlightSearchProvider) Search(ctx context.Context, shape []dto.Leg, prefs dto.Preferences) ([]dto.FlightLegOption, error) {
	ret := _m.Called(ctx, shape, prefs)

	var r0 []dto.FlightLegOption
	if rf, ok := ret.Get(0).(func(context.Context, []dto.Leg, dto.Preferences) []dto.FlightLegOption); ok {
		r0 = rf(ctx, shape, prefs)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]dto.FlightLegOption)
	}

	return r0, ret.Error(1)
}

// Continue provides a mock function with given fields: ctx, token, remaining, prefs
func (_m *MockFlightSearchProvider) Continue(ctx context.Context, token string, remaining []dto.Leg, prefs dto.Preferences) ([]dto.FlightLegOption, error) {
	ret := _m.Called(ctx, token, remaining, prefs)

	var r0 []dto.FlightLegOption
	if rf, ok := ret.Get(0).(func(context.Context, string, []dto.Leg, dto.Preferences) []dto.FlightLegOption); ok {
		r0 = rf(ctx, token, remaining, prefs)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]dto.FlightLegOption)
	}

	return r0, ret.Error(1)
}

// NewMockFlightSearchProvider creates a new instance of MockFlightSearchProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockFlightSearchProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFlightSearchProvider {
	m := &MockFlightSearchProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
