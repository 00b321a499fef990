package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
)

type TripService interface {
	PlanLegs(ctx context.Context, req dto.PlanLegsRequest) (dto.PlanLegsResponse, error)
	SearchItineraries(ctx context.Context, req dto.SearchItinerariesRequest) (dto.SearchItinerariesResponse, error)
	EvaluateFeasibility(ctx context.Context, req dto.FeasibilityRequest) (dto.Feasibility, error)
}

type TripEndpoint struct {
	PlanLegs            endpoint.Endpoint
	SearchItineraries   endpoint.Endpoint
	EvaluateFeasibility endpoint.Endpoint
}

func MakeTripEndpoint(service TripService) TripEndpoint {
	return TripEndpoint{
		PlanLegs:            makePlanLegsEndpoint(service),
		SearchItineraries:   makeSearchItinerariesEndpoint(service),
		EvaluateFeasibility: makeEvaluateFeasibilityEndpoint(service),
	}
}

func makePlanLegsEndpoint(service TripService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.PlanLegsRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		legs, err := service.PlanLegs(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("trip service: %w", err)
		}

		return legs, nil
	}
}

func makeSearchItinerariesEndpoint(service TripService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchItinerariesRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		itineraries, err := service.SearchItineraries(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("trip service: %w", err)
		}

		return itineraries, nil
	}
}

func makeEvaluateFeasibilityEndpoint(service TripService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.FeasibilityRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		feasibility, err := service.EvaluateFeasibility(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("trip service: %w", err)
		}

		return feasibility, nil
	}
}
