package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
)

type LodgingService interface {
	SearchLodgings(ctx context.Context, req dto.SearchLodgingsRequest) (dto.SearchLodgingsResponse, error)
	RankLodgings(ctx context.Context, req dto.RankLodgingsRequest) (dto.RankLodgingsResponse, error)
	LodgingWindow(ctx context.Context, req dto.LodgingWindowRequest) (dto.LodgingWindow, error)
}

type LodgingEndpoint struct {
	SearchLodgings endpoint.Endpoint
	RankLodgings   endpoint.Endpoint
	LodgingWindow  endpoint.Endpoint
}

func MakeLodgingEndpoint(service LodgingService) LodgingEndpoint {
	return LodgingEndpoint{
		SearchLodgings: makeSearchLodgingsEndpoint(service),
		RankLodgings:   makeRankLodgingsEndpoint(service),
		LodgingWindow:  makeLodgingWindowEndpoint(service),
	}
}

func makeSearchLodgingsEndpoint(service LodgingService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchLodgingsRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		lodgings, err := service.SearchLodgings(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("lodging service: %w", err)
		}

		return lodgings, nil
	}
}

func makeRankLodgingsEndpoint(service LodgingService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.RankLodgingsRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		ranked, err := service.RankLodgings(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("lodging service: %w", err)
		}

		return ranked, nil
	}
}

func makeLodgingWindowEndpoint(service LodgingService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.LodgingWindowRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		window, err := service.LodgingWindow(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("lodging service: %w", err)
		}

		return window, nil
	}
}
