//go:build unit

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/distance"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/generation"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/itinerary"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/lodging"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/lodgingprovider"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/segment"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	chicago = dto.Meeting{
		City:              "Chicago",
		Address:           "233 S Wacker Dr, Chicago",
		CandidateAirports: []string{"ORD"},
		Date:              "2024-03-05",
		Time:              "10:00",
		EarlyArrivalDays:  1,
	}

	trip = dto.Trip{
		HomeAirport: "SFO",
		Meetings:    []dto.Meeting{chicago},
		ReturnDate:  "2024-03-07",
	}

	plannedLegs = []dto.Leg{
		{Index: 0, DepartureAirports: "SFO", ArrivalAirports: "ORD", TravelDate: "2024-03-04", FromLabel: "SFO", ToLabel: "Chicago"},
		{Index: 1, DepartureAirports: "ORD", ArrivalAirports: "SFO", TravelDate: "2024-03-07", FromLabel: "Chicago", ToLabel: "SFO"},
	}
)

func fixedPlanner() *segment.Planner {
	return &segment.Planner{Now: func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}}
}

func option(arrival string, price float64) dto.FlightLegOption {
	return dto.FlightLegOption{
		Price: dto.Price{Amount: price, Currency: "USD"},
		Flights: []dto.FlightSegment{{
			Airline: "United",
			Arrival: dto.FlightPoint{Datetime: arrival},
		}},
	}
}

func bundle(arrival string, price float64) dto.ItineraryBundle {
	return dto.ItineraryBundle{
		Legs: []dto.BundleLeg{
			{Leg: plannedLegs[0], Option: option(arrival, 0)},
			{Leg: plannedLegs[1], Option: option("2024-03-07T18:00", price)},
		},
		TotalPrice: dto.Price{Amount: price, Currency: "USD"},
	}
}

// chainResult builds a fresh result per call, the service annotates bundles in place.
func chainResult() itinerary.ChainResult {
	return itinerary.ChainResult{
		Bundles: []dto.ItineraryBundle{
			bundle("2024-03-05T07:00", 300),
			bundle("2024-03-04T18:00", 420),
		},
		Stats: itinerary.Stats{Seeds: 2, ProviderCalls: 2},
	}
}

func TestPlannerService_SearchItineraries(t *testing.T) {
	type mockField struct {
		cache   *MockBundleCacher
		chainer *MockItineraryChainer
		tracker *generation.MemoryTracker
	}

	searchItinerariesRequest := func(
		req dto.SearchItinerariesRequest,
		setupMock func(m mockField),
		want dto.SearchItinerariesResponse,
		wantErr error,
	) func(t *testing.T) {
		return func(t *testing.T) {
			m := mockField{
				cache:   NewMockBundleCacher(t),
				chainer: NewMockItineraryChainer(t),
				tracker: generation.NewMemoryTracker(),
			}
			setupMock(m)

			s := &PlannerService{
				Planner:               fixedPlanner(),
				Chainer:               m.chainer,
				Cache:                 m.cache,
				Generations:           m.tracker,
				CacheExpiration:       10 * time.Minute,
				LockTimeout:           5 * time.Second,
				MinHoursBeforeMeeting: itinerary.DefaultMinHoursBeforeMeeting,
			}

			got, err := s.SearchItineraries(context.Background(), req)

			if wantErr != nil {
				assert.Error(t, err)
				if !errors.Is(err, wantErr) {
					t.Fatalf("expected error %v, got %v", wantErr, err)
				}
				return
			}

			assert.NoError(t, err)
			got.Metadata.SearchTimeMs = 0

			diff := cmp.Diff(want, got)
			if diff != "" {
				t.Fatalf("SearchItineraries() mismatch (-want +got):\n%s", diff)
			}
		}
	}

	feasible := bundle("2024-03-04T18:00", 420)
	feasible.Feasibility = &dto.Feasibility{
		Feasible:              true,
		MinHoursBeforeMeeting: 5,
		PerLegHours:           []float64{16},
		PerLegSuitable:        []bool{true},
	}

	tooLate := bundle("2024-03-05T07:00", 300)
	tooLate.Feasibility = &dto.Feasibility{
		Feasible:              false,
		MinHoursBeforeMeeting: 5,
		PerLegHours:           []float64{3},
		PerLegSuitable:        []bool{false},
	}

	req := dto.SearchItinerariesRequest{SessionID: "s1", Trip: trip}

	cacheMiss := func(m mockField) {
		m.cache.On("GetCacheKey", plannedLegs, dto.Preferences{}).Return("cache-key")
		m.cache.On("GetLockKey", plannedLegs, dto.Preferences{}).Return("lock-key")
		m.cache.On("GetChain", mock.Anything, "cache-key").Return(itinerary.ChainResult{}, redis.Nil)
	}

	t.Run("cache_miss_feasible_first", searchItinerariesRequest(
		req,
		func(m mockField) {
			cacheMiss(m)
			m.chainer.On("Chain", mock.Anything, plannedLegs, dto.Preferences{}).Return(chainResult(), nil)
			m.cache.On("AcquireLock", mock.Anything, "lock-key", 5*time.Second).Return(true, nil)
			m.cache.On("SetChain", mock.Anything, "cache-key", mock.Anything, 10*time.Minute).Return(nil)
			m.cache.On("ReleaseLock", mock.Anything, "lock-key").Return(nil)
		},
		dto.SearchItinerariesResponse{
			Legs:    plannedLegs,
			Bundles: []dto.ItineraryBundle{feasible, tooLate},
			Metadata: dto.ItineraryMetadata{
				TotalResults:    2,
				FeasibleResults: 1,
				SeedsExplored:   2,
				ProviderCalls:   2,
				Generation:      1,
			},
		},
		nil,
	))

	t.Run("cache_hit_feasible_only", searchItinerariesRequest(
		dto.SearchItinerariesRequest{
			SessionID:    "s1",
			Trip:         trip,
			FilterOption: &dto.FilterOption{FeasibleOnly: true},
		},
		func(m mockField) {
			m.cache.On("GetCacheKey", plannedLegs, dto.Preferences{}).Return("cache-key")
			m.cache.On("GetLockKey", plannedLegs, dto.Preferences{}).Return("lock-key")
			m.cache.On("GetChain", mock.Anything, "cache-key").Return(chainResult(), nil)
		},
		dto.SearchItinerariesResponse{
			Legs:    plannedLegs,
			Bundles: []dto.ItineraryBundle{feasible},
			Metadata: dto.ItineraryMetadata{
				TotalResults:    1,
				FeasibleResults: 1,
				CacheHit:        true,
				Generation:      1,
			},
		},
		nil,
	))

	t.Run("lock_held_skips_cache_write", searchItinerariesRequest(
		dto.SearchItinerariesRequest{
			Trip:       trip,
			SortOption: &dto.SortOption{Field: "price"},
		},
		func(m mockField) {
			cacheMiss(m)
			m.chainer.On("Chain", mock.Anything, plannedLegs, dto.Preferences{}).Return(chainResult(), nil)
			m.cache.On("AcquireLock", mock.Anything, "lock-key", 5*time.Second).Return(false, nil)
		},
		dto.SearchItinerariesResponse{
			Legs:    plannedLegs,
			Bundles: []dto.ItineraryBundle{tooLate, feasible},
			Metadata: dto.ItineraryMetadata{
				TotalResults:    2,
				FeasibleResults: 1,
				SeedsExplored:   2,
				ProviderCalls:   2,
			},
		},
		nil,
	))

	t.Run("superseded_while_chaining", searchItinerariesRequest(
		req,
		func(m mockField) {
			cacheMiss(m)
			m.chainer.On("Chain", mock.Anything, plannedLegs, dto.Preferences{}).
				Run(func(args mock.Arguments) {
					_, _ = m.tracker.Next(context.Background(), generation.ItineraryScope("s1"))
				}).
				Return(chainResult(), nil)
			m.cache.On("AcquireLock", mock.Anything, "lock-key", 5*time.Second).Return(true, nil)
			m.cache.On("SetChain", mock.Anything, "cache-key", mock.Anything, 10*time.Minute).Return(nil)
			m.cache.On("ReleaseLock", mock.Anything, "lock-key").Return(nil)
		},
		dto.SearchItinerariesResponse{},
		ErrSearchSuperseded,
	))

	t.Run("no_flights_found", searchItinerariesRequest(
		req,
		func(m mockField) {
			cacheMiss(m)
			m.chainer.On("Chain", mock.Anything, plannedLegs, dto.Preferences{}).
				Return(itinerary.ChainResult{}, itinerary.ErrNoFlightsFound)
		},
		dto.SearchItinerariesResponse{},
		itinerary.ErrNoFlightsFound,
	))

	t.Run("nothing_matches_filter", searchItinerariesRequest(
		dto.SearchItinerariesRequest{
			Trip:         trip,
			FilterOption: &dto.FilterOption{MaxPrice: ptr(100.0)},
		},
		func(m mockField) {
			m.cache.On("GetCacheKey", plannedLegs, dto.Preferences{}).Return("cache-key")
			m.cache.On("GetLockKey", plannedLegs, dto.Preferences{}).Return("lock-key")
			m.cache.On("GetChain", mock.Anything, "cache-key").Return(chainResult(), nil)
		},
		dto.SearchItinerariesResponse{},
		ErrNoMatchingItineraries,
	))

	t.Run("invalid_schedule", searchItinerariesRequest(
		dto.SearchItinerariesRequest{
			Trip: dto.Trip{HomeAirport: "SFO", Meetings: []dto.Meeting{chicago}, ReturnDate: "2024-03-04"},
		},
		func(m mockField) {},
		dto.SearchItinerariesResponse{},
		segment.ErrInvalidSchedule,
	))
}

func TestPlannerService_EvaluateFeasibility(t *testing.T) {
	s := &PlannerService{MinHoursBeforeMeeting: itinerary.DefaultMinHoursBeforeMeeting}

	got, err := s.EvaluateFeasibility(context.Background(), dto.FeasibilityRequest{
		Bundle:                bundle("2024-03-05T07:00", 300),
		Meetings:              []dto.Meeting{chicago},
		MinHoursBeforeMeeting: ptr(2.0),
	})
	assert.NoError(t, err)

	diff := cmp.Diff(dto.Feasibility{
		Feasible:              true,
		MinHoursBeforeMeeting: 2,
		PerLegHours:           []float64{3},
		PerLegSuitable:        []bool{true},
	}, got)
	if diff != "" {
		t.Fatalf("EvaluateFeasibility() mismatch (-want +got):\n%s", diff)
	}

	_, err = s.EvaluateFeasibility(context.Background(), dto.FeasibilityRequest{
		Bundle:   bundle("2024-03-05T07:00", 300),
		Meetings: nil,
	})
	assert.ErrorIs(t, err, itinerary.ErrBundleMismatch)
}

func TestPlannerService_SearchLodgings(t *testing.T) {
	type mockField struct {
		lodgings  *lodgingprovider.MockLodgingProvider
		distances *MockDistanceSampler
		tracker   *generation.MemoryTracker
	}

	candidates := []dto.LodgingCandidate{
		{Name: "Palmer House", PricePerNight: "$200", Rating: 4.5},
		{Name: "Hotel Lincoln", PricePerNight: "$100", Rating: 3.0},
	}
	samples := []dto.DistanceSample{
		{DrivingDistanceMeters: ptr(1000.0)},
		{DrivingDistanceMeters: ptr(3000.0)},
	}
	query := dto.LodgingQuery{
		City:     "Chicago",
		CheckIn:  "2024-03-04",
		CheckOut: "2024-03-07",
		Adults:   1,
	}
	window := dto.LodgingWindow{CheckIn: "2024-03-04", CheckOut: "2024-03-07", Nights: 3}

	searchLodgingsRequest := func(
		req dto.SearchLodgingsRequest,
		setupMock func(m mockField),
		want dto.SearchLodgingsResponse,
		wantErr error,
	) func(t *testing.T) {
		return func(t *testing.T) {
			m := mockField{
				lodgings:  lodgingprovider.NewMockLodgingProvider(t),
				distances: NewMockDistanceSampler(t),
				tracker:   generation.NewMemoryTracker(),
			}
			setupMock(m)

			s := &PlannerService{
				Generations: m.tracker,
				Lodgings:    m.lodgings,
				Distances:   m.distances,
			}

			got, err := s.SearchLodgings(context.Background(), req)

			if wantErr != nil {
				assert.Error(t, err)
				if !errors.Is(err, wantErr) {
					t.Fatalf("expected error %v, got %v", wantErr, err)
				}
				return
			}

			assert.NoError(t, err)
			got.Metadata.SearchTimeMs = 0

			diff := cmp.Diff(want, got)
			if diff != "" {
				t.Fatalf("SearchLodgings() mismatch (-want +got):\n%s", diff)
			}
		}
	}

	req := dto.SearchLodgingsRequest{
		SessionID:         "s1",
		City:              "Chicago",
		MeetingAddress:    chicago.Address,
		ArrivalDatetime:   "2024-03-04T18:00",
		DepartureDatetime: "2024-03-07T09:00",
		EarlyArrivalDays:  1,
		Adults:            1,
		Weight:            ptr(50),
	}

	t.Run("ranked", searchLodgingsRequest(
		req,
		func(m mockField) {
			m.lodgings.On("Search", mock.Anything, query).Return(candidates, nil)
			m.distances.On("Sample", mock.Anything, chicago.Address, candidates).
				Return(samples, distance.SampleStats{Lookups: 4, Failures: 2})
		},
		dto.SearchLodgingsResponse{
			Window:   window,
			Lodgings: lodging.Rank(candidates, samples, 50),
			Metadata: dto.LodgingMetadata{
				TotalResults:     2,
				DistanceLookups:  4,
				DistanceFailures: 2,
				Generation:       1,
			},
		},
		nil,
	))

	t.Run("filtered_out", searchLodgingsRequest(
		dto.SearchLodgingsRequest{
			City:              "Chicago",
			MeetingAddress:    chicago.Address,
			ArrivalDatetime:   "2024-03-04T18:00",
			DepartureDatetime: "2024-03-07T09:00",
			Adults:            1,
			Weight:            ptr(50),
			Filter:            dto.LodgingFilter{MinRating: ptr(4.8)},
		},
		func(m mockField) {
			m.lodgings.On("Search", mock.Anything, dto.LodgingQuery{
				City:     "Chicago",
				CheckIn:  "2024-03-04",
				CheckOut: "2024-03-07",
				Adults:   1,
				Filter:   dto.LodgingFilter{MinRating: ptr(4.8)},
			}).Return(candidates, nil)
		},
		dto.SearchLodgingsResponse{},
		ErrNoLodgingsFound,
	))

	t.Run("provider_unavailable", searchLodgingsRequest(
		req,
		func(m mockField) {
			m.lodgings.On("Search", mock.Anything, query).Return(nil, errors.New("connection refused"))
		},
		dto.SearchLodgingsResponse{},
		ErrLodgingProviderUnavailable,
	))

	t.Run("superseded_while_sampling", searchLodgingsRequest(
		req,
		func(m mockField) {
			m.lodgings.On("Search", mock.Anything, query).Return(candidates, nil)
			m.distances.On("Sample", mock.Anything, chicago.Address, candidates).
				Run(func(args mock.Arguments) {
					_, _ = m.tracker.Next(context.Background(), generation.LodgingScope("s1", "Chicago"))
				}).
				Return(samples, distance.SampleStats{Lookups: 4})
		},
		dto.SearchLodgingsResponse{},
		ErrSearchSuperseded,
	))

	t.Run("departure_before_arrival", searchLodgingsRequest(
		dto.SearchLodgingsRequest{
			City:              "Chicago",
			MeetingAddress:    chicago.Address,
			ArrivalDatetime:   "2024-03-07T18:00",
			DepartureDatetime: "2024-03-04T09:00",
			Weight:            ptr(50),
		},
		func(m mockField) {},
		dto.SearchLodgingsResponse{},
		ErrInvalidLodgingWindow,
	))
}

func TestPlannerService_LodgingWindow(t *testing.T) {
	s := &PlannerService{}

	got, err := s.LodgingWindow(context.Background(), dto.LodgingWindowRequest{
		ArrivalDatetime:   "2024-03-05T01:30",
		DepartureDatetime: "2024-03-05T20:00",
	})
	assert.NoError(t, err)
	assert.Equal(t, dto.LodgingWindow{CheckIn: "2024-03-04", CheckOut: "2024-03-05", Nights: 1}, got)
}

func TestPlannerService_PlanLegs(t *testing.T) {
	s := &PlannerService{Planner: fixedPlanner()}

	got, err := s.PlanLegs(context.Background(), dto.PlanLegsRequest{Trip: trip})
	assert.NoError(t, err)

	diff := cmp.Diff(dto.PlanLegsResponse{Legs: plannedLegs}, got)
	if diff != "" {
		t.Fatalf("PlanLegs() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlannerService_RankLodgings(t *testing.T) {
	s := &PlannerService{}

	got, err := s.RankLodgings(context.Background(), dto.RankLodgingsRequest{
		Candidates: []dto.LodgingCandidate{
			{Name: "Far", PricePerNight: "$90"},
			{Name: "Near", PricePerNight: "$100"},
		},
		Distances: []dto.DistanceSample{
			{WalkingDistanceMeters: ptr(5000.0)},
			{WalkingDistanceMeters: ptr(200.0)},
		},
		Weight: ptr(100),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Near", got.Lodgings[0].Name)
	assert.Equal(t, "Far", got.Lodgings[1].Name)
}

func ptr[T any](v T) *T {
	return &v
}
