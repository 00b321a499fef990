package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/datemath"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/distance"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/generation"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/itinerary"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/lodging"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/lodgingprovider"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type LegPlanner interface {
	PlanLegs(homeAirport string, meetings []dto.Meeting, returnDate string) ([]dto.Leg, error)
}

type ItineraryChainer interface {
	Chain(ctx context.Context, legs []dto.Leg, prefs dto.Preferences) (itinerary.ChainResult, error)
}

type BundleCacher interface {
	GetLockKey(legs []dto.Leg, prefs dto.Preferences) string
	GetCacheKey(legs []dto.Leg, prefs dto.Preferences) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	GetChain(ctx context.Context, key string) (itinerary.ChainResult, error)
	SetChain(ctx context.Context, key string, result itinerary.ChainResult, expiration time.Duration) error
}

type DistanceSampler interface {
	Sample(ctx context.Context, origin string, candidates []dto.LodgingCandidate) ([]dto.DistanceSample, distance.SampleStats)
}

type PlannerService struct {
	Planner               LegPlanner
	Chainer               ItineraryChainer
	Cache                 BundleCacher
	Generations           generation.Tracker
	Lodgings              lodgingprovider.LodgingProvider
	Distances             DistanceSampler
	CacheExpiration       time.Duration
	LockTimeout           time.Duration
	MinHoursBeforeMeeting float64
}

func NewPlannerService(
	planner LegPlanner,
	chainer ItineraryChainer,
	cache BundleCacher,
	generations generation.Tracker,
	lodgings lodgingprovider.LodgingProvider,
	distances DistanceSampler,
	cacheExpiration time.Duration,
	lockTimeout time.Duration,
	minHoursBeforeMeeting float64,
) *PlannerService {
	return &PlannerService{
		Planner:               planner,
		Chainer:               chainer,
		Cache:                 cache,
		Generations:           generations,
		Lodgings:              lodgings,
		Distances:             distances,
		CacheExpiration:       cacheExpiration,
		LockTimeout:           lockTimeout,
		MinHoursBeforeMeeting: minHoursBeforeMeeting,
	}
}

// PlanLegs godoc
// @Summary      Plan trip legs
// @Tags         Trips
// @Param        request  body      dto.PlanLegsRequest  true  "Trip"
// @Success      200      {object}  dto.PlanLegsResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/trips/legs [post]
func (s *PlannerService) PlanLegs(_ context.Context, req dto.PlanLegsRequest) (dto.PlanLegsResponse, error) {
	legs, err := s.Planner.PlanLegs(req.Trip.HomeAirport, req.Trip.Meetings, req.Trip.ReturnDate)
	if err != nil {
		return dto.PlanLegsResponse{}, fmt.Errorf("plan legs: %w", err)
	}

	return dto.PlanLegsResponse{Legs: legs}, nil
}

// SearchItineraries plans the legs of a trip, chains flight options into
// complete bundles and flags the bundles that arrive too late for a meeting.
// A search that was superseded by a newer one of the same session while it
// ran is discarded.
// SearchItineraries godoc
// @Summary      Search itineraries
// @Tags         Trips
// @Param        request  body      dto.SearchItinerariesRequest  true  "Trip and preferences"
// @Success      200      {object}  dto.SearchItinerariesResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/v1/trips/itineraries/search [post]
func (s *PlannerService) SearchItineraries(
	ctx context.Context,
	req dto.SearchItinerariesRequest,
) (dto.SearchItinerariesResponse, error) {
	startTime := time.Now()

	gen, err := s.nextGeneration(ctx, req.SessionID, generation.ItineraryScope)
	if err != nil {
		return dto.SearchItinerariesResponse{}, err
	}
	ctx = logger.WithGeneration(ctx, gen.Scope, gen.Value)

	legs, err := s.Planner.PlanLegs(req.Trip.HomeAirport, req.Trip.Meetings, req.Trip.ReturnDate)
	if err != nil {
		return dto.SearchItinerariesResponse{}, fmt.Errorf("plan legs: %w", err)
	}

	result, cacheHit, err := s.chain(ctx, legs, req.Preferences)
	if err != nil {
		return dto.SearchItinerariesResponse{}, err
	}

	// stats describe provider work done by this request
	stats := result.Stats
	if cacheHit {
		stats = itinerary.Stats{}
	}

	minHours := s.MinHoursBeforeMeeting
	if req.MinHoursBeforeMeeting != nil {
		minHours = *req.MinHoursBeforeMeeting
	}

	bundles := result.Bundles
	if err := itinerary.AnnotateFeasibility(bundles, req.Trip.Meetings, minHours); err != nil {
		slog.WarnContext(ctx, "bundle feasibility could not be evaluated", slog.String("error", err.Error()))
	}

	feasible := 0
	for _, bundle := range bundles {
		if bundle.Feasibility != nil && bundle.Feasibility.Feasible {
			feasible++
		}
	}

	bundles = itinerary.FilterBundles(bundles, req.FilterOption)
	bundles = itinerary.SortBundles(bundles, req.SortOption)

	if err := s.ensureCurrent(ctx, gen); err != nil {
		return dto.SearchItinerariesResponse{}, err
	}

	if len(bundles) == 0 {
		return dto.SearchItinerariesResponse{}, ErrNoMatchingItineraries
	}

	return dto.SearchItinerariesResponse{
		Legs:    legs,
		Bundles: bundles,
		Metadata: dto.ItineraryMetadata{
			TotalResults:      len(bundles),
			FeasibleResults:   feasible,
			SeedsExplored:     stats.Seeds,
			ProviderCalls:     stats.ProviderCalls,
			AbandonedBranches: stats.AbandonedBranches,
			SearchTimeMs:      int(time.Since(startTime).Milliseconds()),
			CacheHit:          cacheHit,
			Generation:        gen.Value,
		},
	}, nil
}

// chain reads the bundles of legs from the cache or builds them. Only the
// request holding the lock writes the cache, concurrent identical searches
// still get their own result.
func (s *PlannerService) chain(ctx context.Context, legs []dto.Leg,
	prefs dto.Preferences) (itinerary.ChainResult, bool, error) {
	cacheKey := s.Cache.GetCacheKey(legs, prefs)
	lockKey := s.Cache.GetLockKey(legs, prefs)

	result, err := s.Cache.GetChain(ctx, cacheKey)
	if err == nil {
		return result, true, nil
	}
	if !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "failed to get itineraries from cache", slog.String("error", err.Error()))
	}

	result, err = s.Chainer.Chain(ctx, legs, prefs)
	if err != nil {
		return itinerary.ChainResult{}, false, fmt.Errorf("chain itineraries: %w", err)
	}

	acquired, err := s.Cache.AcquireLock(ctx, lockKey, s.LockTimeout)
	if err != nil {
		slog.WarnContext(ctx, "failed to acquire itinerary cache lock", slog.String("error", err.Error()))
		return result, false, nil
	}

	if acquired {
		defer func() {
			if err := s.Cache.ReleaseLock(ctx, lockKey); err != nil {
				slog.WarnContext(ctx, "failed to release itinerary cache lock", slog.String("error", err.Error()))
			}
		}()

		if err := s.Cache.SetChain(ctx, cacheKey, result, s.CacheExpiration); err != nil {
			slog.WarnContext(ctx, "failed to cache itineraries", slog.String("error", err.Error()))
		}
	}

	return result, false, nil
}

// EvaluateFeasibility godoc
// @Summary      Evaluate bundle feasibility
// @Tags         Trips
// @Param        request  body      dto.FeasibilityRequest  true  "Bundle and meetings"
// @Success      200      {object}  dto.Feasibility
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/trips/itineraries/feasibility [post]
func (s *PlannerService) EvaluateFeasibility(_ context.Context, req dto.FeasibilityRequest) (dto.Feasibility, error) {
	minHours := s.MinHoursBeforeMeeting
	if req.MinHoursBeforeMeeting != nil {
		minHours = *req.MinHoursBeforeMeeting
	}

	feasibility, err := itinerary.EvaluateFeasibility(req.Bundle, req.Meetings, minHours)
	if err != nil {
		return dto.Feasibility{}, fmt.Errorf("evaluate feasibility: %w", err)
	}

	return feasibility, nil
}

// SearchLodgings finds lodgings for the stay around one meeting and ranks
// them by price and distance to the meeting address.
// SearchLodgings godoc
// @Summary      Search and rank lodgings
// @Tags         Lodgings
// @Param        request  body      dto.SearchLodgingsRequest  true  "City, stay and weight"
// @Success      200      {object}  dto.SearchLodgingsResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/v1/lodgings/search [post]
func (s *PlannerService) SearchLodgings(
	ctx context.Context,
	req dto.SearchLodgingsRequest,
) (dto.SearchLodgingsResponse, error) {
	startTime := time.Now()

	gen, err := s.nextGeneration(ctx, req.SessionID, func(session string) string {
		return generation.LodgingScope(session, req.City)
	})
	if err != nil {
		return dto.SearchLodgingsResponse{}, err
	}
	ctx = logger.WithGeneration(ctx, gen.Scope, gen.Value)

	window, err := lodgingWindow(req.ArrivalDatetime, req.DepartureDatetime, req.EarlyArrivalDays)
	if err != nil {
		return dto.SearchLodgingsResponse{}, err
	}

	candidates, err := s.Lodgings.Search(ctx, dto.LodgingQuery{
		City:     req.City,
		CheckIn:  window.CheckIn,
		CheckOut: window.CheckOut,
		Adults:   req.Adults,
		Currency: req.Currency,
		Filter:   req.Filter,
	})
	if err != nil {
		return dto.SearchLodgingsResponse{}, ErrLodgingProviderUnavailable.WithCause(err)
	}

	candidates = lodging.FilterCandidates(candidates, req.Filter)
	if len(candidates) == 0 {
		return dto.SearchLodgingsResponse{}, ErrNoLodgingsFound.WithMessage("no lodgings found in %s", req.City)
	}

	samples, stats := s.Distances.Sample(ctx, req.MeetingAddress, candidates)
	ranked := lodging.Rank(candidates, samples, *req.Weight)

	if err := s.ensureCurrent(ctx, gen); err != nil {
		return dto.SearchLodgingsResponse{}, err
	}

	return dto.SearchLodgingsResponse{
		Window:   window,
		Lodgings: ranked,
		Metadata: dto.LodgingMetadata{
			TotalResults:     len(ranked),
			DistanceLookups:  stats.Lookups,
			DistanceFailures: stats.Failures,
			SearchTimeMs:     int(time.Since(startTime).Milliseconds()),
			Generation:       gen.Value,
		},
	}, nil
}

// RankLodgings godoc
// @Summary      Rank lodgings
// @Tags         Lodgings
// @Param        request  body      dto.RankLodgingsRequest  true  "Candidates, distances and weight"
// @Success      200      {object}  dto.RankLodgingsResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/lodgings/rank [post]
func (s *PlannerService) RankLodgings(_ context.Context, req dto.RankLodgingsRequest) (dto.RankLodgingsResponse, error) {
	return dto.RankLodgingsResponse{
		Lodgings: lodging.Rank(req.Candidates, req.Distances, *req.Weight),
	}, nil
}

// LodgingWindow godoc
// @Summary      Derive lodging check-in and check-out
// @Tags         Lodgings
// @Param        request  body      dto.LodgingWindowRequest  true  "Arrival and departure"
// @Success      200      {object}  dto.LodgingWindow
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/lodgings/window [post]
func (s *PlannerService) LodgingWindow(_ context.Context, req dto.LodgingWindowRequest) (dto.LodgingWindow, error) {
	return lodgingWindow(req.ArrivalDatetime, req.DepartureDatetime, req.EarlyArrivalDays)
}

func lodgingWindow(arrivalDatetime, departureDatetime string, earlyArrivalDays int) (dto.LodgingWindow, error) {
	arrival, err := datemath.ParseLocalDateTime(arrivalDatetime)
	if err != nil {
		return dto.LodgingWindow{}, ErrInvalidLodgingWindow.WithMessage("invalid arrival %q", arrivalDatetime).WithCause(err)
	}

	departure, err := datemath.ParseLocalDateTime(departureDatetime)
	if err != nil {
		return dto.LodgingWindow{}, ErrInvalidLodgingWindow.WithMessage("invalid departure %q", departureDatetime).WithCause(err)
	}

	window, err := datemath.LodgingWindow(arrival, departure, earlyArrivalDays)
	if err != nil {
		return dto.LodgingWindow{}, ErrInvalidLodgingWindow.WithCause(err)
	}

	return dto.LodgingWindow{
		CheckIn:  datemath.FormatDate(window.CheckIn),
		CheckOut: datemath.FormatDate(window.CheckOut),
		Nights:   window.Nights,
	}, nil
}

// nextGeneration starts a new generation for the session. Requests without
// a session are never superseded and get the zero generation.
func (s *PlannerService) nextGeneration(ctx context.Context, sessionID string,
	scope func(string) string) (generation.Generation, error) {
	if sessionID == "" {
		return generation.Generation{}, nil
	}

	gen, err := s.Generations.Next(ctx, scope(sessionID))
	if err != nil {
		return generation.Generation{}, fmt.Errorf("start search generation: %w", err)
	}

	return gen, nil
}

func (s *PlannerService) ensureCurrent(ctx context.Context, gen generation.Generation) error {
	if gen.Scope == "" {
		return nil
	}

	current, err := s.Generations.IsCurrent(ctx, gen)
	if err != nil {
		return fmt.Errorf("check search generation: %w", err)
	}

	if !current {
		slog.InfoContext(ctx, "discarding superseded search result")
		return ErrSearchSuperseded
	}

	return nil
}
