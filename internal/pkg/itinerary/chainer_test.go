//go:build unit

package itinerary

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/flightprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var threeLegs = []dto.Leg{
	{Index: 0, DepartureAirports: "SFO", ArrivalAirports: "ORD", TravelDate: "2024-03-09"},
	{Index: 1, DepartureAirports: "ORD", ArrivalAirports: "JFK", TravelDate: "2024-03-11"},
	{Index: 2, DepartureAirports: "JFK", ArrivalAirports: "SFO", TravelDate: "2024-03-14"},
}

func legOption(price float64, token string) dto.FlightLegOption {
	return dto.FlightLegOption{
		Price:             dto.Price{Amount: price, Currency: "USD"},
		Flights:           []dto.FlightSegment{{Airline: "United"}},
		ContinuationToken: token,
	}
}

func bundlePrices(bundles []dto.ItineraryBundle) []float64 {
	prices := make([]float64, len(bundles))
	for i, b := range bundles {
		prices[i] = b.TotalPrice.Amount
	}
	return prices
}

func TestChainer_Chain_BranchAbandoned(t *testing.T) {
	provider := flightprovider.NewMockFlightSearchProvider(t)
	ctx := context.Background()
	prefs := dto.Preferences{}

	provider.On("Search", mock.Anything, threeLegs, prefs).Return([]dto.FlightLegOption{
		legOption(300, "seed-1"), legOption(310, "seed-2"), legOption(320, "seed-3"),
	}, nil)

	provider.On("Continue", mock.Anything, "seed-1", threeLegs[1:], prefs).
		Return([]dto.FlightLegOption{legOption(600, "mid-1")}, nil)
	provider.On("Continue", mock.Anything, "seed-2", threeLegs[1:], prefs).
		Return(nil, errors.New("upstream timeout"))
	provider.On("Continue", mock.Anything, "seed-3", threeLegs[1:], prefs).
		Return([]dto.FlightLegOption{legOption(640, "mid-3")}, nil)

	provider.On("Continue", mock.Anything, "mid-1", threeLegs[2:], prefs).
		Return([]dto.FlightLegOption{legOption(900, "")}, nil)
	provider.On("Continue", mock.Anything, "mid-3", threeLegs[2:], prefs).
		Return([]dto.FlightLegOption{legOption(800, "")}, nil)

	chainer := NewChainer(provider, 5, 3, 2)

	got, err := chainer.Chain(ctx, threeLegs, prefs)
	require.NoError(t, err)

	if diff := cmp.Diff([]float64{900, 800}, bundlePrices(got.Bundles)); diff != "" {
		t.Fatalf("bundle prices mismatch (-want +got):\n%s", diff)
	}

	for _, b := range got.Bundles {
		require.Len(t, b.Legs, len(threeLegs))
		for i, leg := range b.Legs {
			assert.Equal(t, threeLegs[i], leg.Leg)
		}
	}

	assert.Equal(t, "seed-1", got.Bundles[0].Legs[0].Option.ContinuationToken)
	assert.Equal(t, "seed-3", got.Bundles[1].Legs[0].Option.ContinuationToken)
	assert.Equal(t, Stats{Seeds: 3, ProviderCalls: 6, AbandonedBranches: 1}, got.Stats)
}

func TestChainer_Chain_Limits(t *testing.T) {
	provider := flightprovider.NewMockFlightSearchProvider(t)
	ctx := context.Background()
	prefs := dto.Preferences{}
	legs := threeLegs[:2]

	provider.On("Search", mock.Anything, legs, prefs).Return([]dto.FlightLegOption{
		legOption(100, "a"), legOption(110, "b"), legOption(120, "c"), legOption(130, "d"),
	}, nil)
	provider.On("Continue", mock.Anything, "a", legs[1:], prefs).
		Return([]dto.FlightLegOption{legOption(200, ""), legOption(210, ""), legOption(220, "")}, nil)
	provider.On("Continue", mock.Anything, "b", legs[1:], prefs).
		Return([]dto.FlightLegOption{legOption(230, ""), legOption(240, "")}, nil)

	chainer := NewChainer(provider, 2, 1, 4)

	got, err := chainer.Chain(ctx, legs, prefs)
	require.NoError(t, err)

	if diff := cmp.Diff([]float64{200, 230}, bundlePrices(got.Bundles)); diff != "" {
		t.Fatalf("bundle prices mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Stats{Seeds: 2, ProviderCalls: 3}, got.Stats)
	provider.AssertNotCalled(t, "Continue", mock.Anything, "c", mock.Anything, mock.Anything)
}

func TestChainer_Chain_Errors(t *testing.T) {
	chainRequest := func(setup func(p *flightprovider.MockFlightSearchProvider), wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			provider := flightprovider.NewMockFlightSearchProvider(t)
			setup(provider)

			chainer := NewChainer(provider, 5, 3, 4)

			got, err := chainer.Chain(context.Background(), threeLegs[:2], dto.Preferences{})
			if !errors.Is(err, wantErr) {
				t.Fatalf("expected error %v, got %v", wantErr, err)
			}
			assert.Empty(t, got.Bundles)
		}
	}

	t.Run("root_provider_error", chainRequest(func(p *flightprovider.MockFlightSearchProvider) {
		p.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	}, ErrFlightProviderUnavailable))

	t.Run("root_no_options", chainRequest(func(p *flightprovider.MockFlightSearchProvider) {
		p.On("Search", mock.Anything, mock.Anything, mock.Anything).Return([]dto.FlightLegOption{}, nil)
	}, ErrNoFlightsFound))

	t.Run("seed_without_token", chainRequest(func(p *flightprovider.MockFlightSearchProvider) {
		p.On("Search", mock.Anything, mock.Anything, mock.Anything).
			Return([]dto.FlightLegOption{legOption(100, "")}, nil)
	}, ErrNoCompleteItineraries))

	t.Run("every_expansion_empty", chainRequest(func(p *flightprovider.MockFlightSearchProvider) {
		p.On("Search", mock.Anything, mock.Anything, mock.Anything).
			Return([]dto.FlightLegOption{legOption(100, "a"), legOption(120, "b")}, nil)
		p.On("Continue", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]dto.FlightLegOption{}, nil)
	}, ErrNoCompleteItineraries))
}

func TestChainer_Chain_Cancelled(t *testing.T) {
	provider := flightprovider.NewMockFlightSearchProvider(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(nil, context.Canceled)

	_, err := NewChainer(provider, 0, 0, 0).Chain(ctx, threeLegs, dto.Preferences{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChainer_Chain_SingleLeg(t *testing.T) {
	provider := flightprovider.NewMockFlightSearchProvider(t)

	provider.On("Search", mock.Anything, threeLegs[:1], dto.Preferences{}).
		Return([]dto.FlightLegOption{legOption(150, ""), legOption(90, "")}, nil)

	got, err := NewChainer(provider, 5, 3, 4).Chain(context.Background(), threeLegs[:1], dto.Preferences{})
	require.NoError(t, err)
	assert.Equal(t, []float64{150, 90}, bundlePrices(got.Bundles))
	assert.Equal(t, 1, got.Stats.ProviderCalls)
}
