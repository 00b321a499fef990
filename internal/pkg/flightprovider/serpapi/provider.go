package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/flightprovider"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/providerutils"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/utils"
)

const (
	ProviderName    = "serpapi"
	defaultCurrency = "USD"
	timeLayout      = "2006-01-02 15:04"
	multiCityType   = "3"
	noResultsPrefix = "Google Flights hasn't returned any results"
)

var travelClasses = map[string]string{
	"economy":         "1",
	"premium_economy": "2",
	"business":        "3",
	"first":           "4",
}

type Provider struct {
	Name         string
	SearchAPIURL string
	APIKey       string
	HTTPClient   *http.Client
	Policy       providerutils.Policy
}

func NewProvider(config flightprovider.FlightProviderConfig) *Provider {
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &Provider{
		Name:         ProviderName,
		SearchAPIURL: config.SearchAPIURL,
		APIKey:       config.APIKey,
		HTTPClient:   client,
		Policy: providerutils.Policy{
			Name:         ProviderName,
			Timeout:      config.Timeout,
			MaxRetries:   config.MaxRetries,
			RateLimitRPS: config.RateLimitRPS,
			Limiter:      config.Limiter,
		},
	}
}

// Search asks for the first leg options of a multi city trip.
func (p *Provider) Search(ctx context.Context, shape []dto.Leg, prefs dto.Preferences) ([]dto.FlightLegOption, error) {
	params, err := p.buildParams(shape, prefs)
	if err != nil {
		return nil, err
	}

	return p.fetch(ctx, params, prefs)
}

// Continue asks for the options of the leg following the option that issued token.
func (p *Provider) Continue(ctx context.Context, token string, remaining []dto.Leg,
	prefs dto.Preferences) ([]dto.FlightLegOption, error) {
	params, err := p.buildParams(remaining, prefs)
	if err != nil {
		return nil, err
	}
	params.Set("departure_token", token)

	return p.fetch(ctx, params, prefs)
}

func (p *Provider) fetch(ctx context.Context, params url.Values, prefs dto.Preferences) ([]dto.FlightLegOption, error) {
	var response SearchFlightResponse

	err := providerutils.Do(ctx, p.Policy, func(ctx context.Context) error {
		response = SearchFlightResponse{}
		return providerutils.GetJSON(ctx, p.HTTPClient, p.SearchAPIURL+"?"+params.Encode(), &response)
	})
	if err != nil {
		return nil, fmt.Errorf("serpapi flight search: %w", err)
	}

	if response.Error != "" {
		if strings.HasPrefix(response.Error, noResultsPrefix) {
			return []dto.FlightLegOption{}, nil
		}
		return nil, providerutils.ErrProviderBadResponse.WithCause(fmt.Errorf("serpapi: %s", response.Error))
	}

	currency := prefs.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	raw := make([]FlightOption, 0, len(response.BestFlights)+len(response.OtherFlights))
	raw = append(raw, response.BestFlights...)
	raw = append(raw, response.OtherFlights...)

	return providerutils.FilterLegOptions(p.optionToDTO(ctx, raw, currency), prefs), nil
}

func (p *Provider) buildParams(legs []dto.Leg, prefs dto.Preferences) (url.Values, error) {
	multiCity := make([]MultiCityLeg, len(legs))
	for i, leg := range legs {
		multiCity[i] = MultiCityLeg{
			DepartureID: leg.DepartureAirports,
			ArrivalID:   leg.ArrivalAirports,
			Date:        leg.TravelDate,
		}
	}

	shape, err := json.Marshal(multiCity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal multi city shape: %w", err)
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("type", multiCityType)
	params.Set("multi_city_json", string(shape))
	params.Set("api_key", p.APIKey)
	params.Set("hl", "en")

	if class, ok := travelClasses[prefs.CabinClass]; ok {
		params.Set("travel_class", class)
	}

	if prefs.Adults > 0 {
		params.Set("adults", strconv.Itoa(prefs.Adults))
	}

	if prefs.Currency != "" {
		params.Set("currency", prefs.Currency)
	}

	// 0 any, 1 nonstop, 2 one stop or fewer, 3 two stops or fewer
	if prefs.MaxStops != nil {
		params.Set("stops", strconv.Itoa(*prefs.MaxStops+1))
	}

	return params, nil
}

// optionToDTO converts provider options to dto.FlightLegOption.
// Options with unparsable times are dropped.
func (p *Provider) optionToDTO(ctx context.Context, options []FlightOption, currency string) []dto.FlightLegOption {
	results := make([]dto.FlightLegOption, 0, len(options))

	for _, option := range options {
		flights, err := p.flightsToDTO(option.Flights)
		if err != nil {
			slog.DebugContext(ctx, "failed to parse flight option", "provider", p.Name, "error", err)
			continue
		}

		results = append(results, dto.FlightLegOption{
			Price: dto.Price{
				Amount:    option.Price,
				Currency:  currency,
				Formatted: utils.FormatMoney(option.Price, currency),
			},
			Flights: flights,
			TotalDuration: dto.Duration{
				TotalMinutes: option.TotalDuration,
				Formatted:    utils.ConvertMinutesToDuration(int64(option.TotalDuration)),
			},
			Stops:             max(0, len(flights)-1),
			ContinuationToken: option.DepartureToken,
		})
	}

	return results
}

func (p *Provider) flightsToDTO(flights []Flight) ([]dto.FlightSegment, error) {
	results := make([]dto.FlightSegment, len(flights))

	for i, flight := range flights {
		departure, err := p.parseTime(flight.DepartureAirport.Time)
		if err != nil {
			return nil, fmt.Errorf("departure time: %w", err)
		}

		arrival, err := p.parseTime(flight.ArrivalAirport.Time)
		if err != nil {
			return nil, fmt.Errorf("arrival time: %w", err)
		}

		results[i] = dto.FlightSegment{
			Airline:      flight.Airline,
			FlightNumber: flight.FlightNumber,
			Departure: dto.FlightPoint{
				Airport:  flight.DepartureAirport.ID,
				Name:     flight.DepartureAirport.Name,
				Datetime: departure,
			},
			Arrival: dto.FlightPoint{
				Airport:  flight.ArrivalAirport.ID,
				Name:     flight.ArrivalAirport.Name,
				Datetime: arrival,
			},
			Duration: dto.Duration{
				TotalMinutes: flight.Duration,
				Formatted:    utils.ConvertMinutesToDuration(int64(flight.Duration)),
			},
		}
	}

	return results, nil
}

func (p *Provider) parseTime(value string) (string, error) {
	parsed, err := time.Parse(timeLayout, value)
	if err != nil {
		return "", err
	}

	return parsed.Format(dto.LocalDateTimeLayout), nil
}
