package service

import (
	"context"
	"time"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/distance"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/itinerary"
	"github.com/stretchr/testify/mock"
)

// MockBundleCacher is a mock type for the BundleCacher type
type MockBundleCacher struct {
	mock.Mock
}

// GetLockKey provides a mock function with given fields: legs, prefs
func (_m *MockBundleCacher) GetLockKey(legs []dto.Leg, prefs dto.Preferences) string {
	ret := _m.Called(legs, prefs)

	return ret.String(0)
}

// GetCacheKey provides a mock function with given fields: legs, prefs
func (_m *MockBundleCacher) GetCacheKey(legs []dto.Leg, prefs dto.Preferences) string {
	ret := _m.Called(legs, prefs)

	return ret.String(0)
}

// AcquireLock provides a mock function with given fields: ctx, key, timeout
func (_m *MockBundleCacher) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	ret := _m.Called(ctx, key, timeout)

	return ret.Bool(0), ret.Error(1)
}

// ReleaseLock provides a mock function with given fields: ctx, key
func (_m *MockBundleCacher) ReleaseLock(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)

	return ret.Error(0)
}

// GetChain provides a mock function with given fields: ctx, key
func (_m *MockBundleCacher) GetChain(ctx context.Context, key string) (itinerary.ChainResult, error) {
	ret := _m.Called(ctx, key)

	var r0 itinerary.ChainResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(itinerary.ChainResult)
	}

	return r0, ret.Error(1)
}

// SetChain provides a mock function with given fields: ctx, key, result, expiration
func (_m *MockBundleCacher) SetChain(ctx context.Context, key string, result itinerary.ChainResult,
	expiration time.Duration) error {
	ret := _m.Called(ctx, key, result, expiration)

	return ret.Error(0)
}

// NewMockBundleCacher creates a new instance of MockBundleCacher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockBundleCacher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBundleCacher {
	m := &MockBundleCacher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockItineraryChainer is a mock type for the ItineraryChainer type
type MockItineraryChainer struct {
	mock.Mock
}

// Chain provides a mock function with given fields: ctx, legs, prefs
func (_m *MockItineraryChainer) Chain(ctx context.Context, legs []dto.Leg,
	prefs dto.Preferences) (itinerary.ChainResult, error) {
	ret := _m.Called(ctx, legs, prefs)

	var r0 itinerary.ChainResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(itinerary.ChainResult)
	}

	return r0, ret.Error(1)
}

// NewMockItineraryChainer creates a new instance of MockItineraryChainer. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockItineraryChainer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockItineraryChainer {
	m := &MockItineraryChainer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockDistanceSampler is a mock type for the DistanceSampler type
type MockDistanceSampler struct {
	mock.Mock
}

// Sample provides a mock function with given fields: ctx, origin, candidates
func (_m *MockDistanceSampler) Sample(ctx context.Context, origin string,
	candidates []dto.LodgingCandidate) ([]dto.DistanceSample, distance.SampleStats) {
	ret := _m.Called(ctx, origin, candidates)

	var r0 []dto.DistanceSample
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]dto.DistanceSample)
	}

	var r1 distance.SampleStats
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(distance.SampleStats)
	}

	return r0, r1
}

// NewMockDistanceSampler creates a new instance of MockDistanceSampler. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockDistanceSampler(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDistanceSampler {
	m := &MockDistanceSampler{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
