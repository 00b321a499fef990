package flightprovider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/providerutils"
)

// config for flight provider
type FlightProviderConfig struct {
	SearchAPIURL string
	APIKey       string
	FixtureFile  string
	Timeout      time.Duration
	MaxRetries   int
	RateLimitRPS int
	Limiter      providerutils.RateLimiter
	HTTPClient   *http.Client
}

// FlightSearchProvider prices a multi leg trip one leg at a time.
// Search returns the options of the first leg given the shape of every leg,
// Continue returns the options of the next leg after the option that
// issued token, given the shape of the remaining legs.
type FlightSearchProvider interface {
	Search(ctx context.Context, shape []dto.Leg, prefs dto.Preferences) ([]dto.FlightLegOption, error)
	Continue(ctx context.Context, token string, remaining []dto.Leg, prefs dto.Preferences) ([]dto.FlightLegOption, error)
}

type FlightProviderFactory struct {
	Provider map[string]FlightSearchProvider
}

func NewFlightProviderFactory() *FlightProviderFactory {
	return &FlightProviderFactory{
		Provider: make(map[string]FlightSearchProvider),
	}
}

func (f *FlightProviderFactory) AddProvider(name string, provider FlightSearchProvider) {
	f.Provider[name] = provider
}

func (f *FlightProviderFactory) GetProvider(name string) (FlightSearchProvider, error) {
	provider, ok := f.Provider[name]
	if !ok {
		return nil, fmt.Errorf("unknown flight search provider %q, registered: %v", name, f.names())
	}

	return provider, nil
}

func (f *FlightProviderFactory) names() []string {
	names := make([]string, 0, len(f.Provider))
	for name := range f.Provider {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
