package serpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/lodgingprovider"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/providerutils"
)

const (
	ProviderName    = "serpapi_hotels"
	noResultsPrefix = "Google Hotels hasn't returned any results"
)

type Provider struct {
	Name         string
	SearchAPIURL string
	APIKey       string
	HTTPClient   *http.Client
	Policy       providerutils.Policy
}

func NewProvider(config lodgingprovider.LodgingProviderConfig) *Provider {
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

func (p *Provider) Search(ctx context.Context, query dto.LodgingQuery) ([]dto.LodgingCandidate, error) {
	var response SearchHotelResponse

	err := providerutils.Do(ctx, p.Policy, func(ctx context.Context) error {
		response = SearchHotelResponse{}
		return providerutils.GetJSON(ctx, p.HTTPClient, p.SearchAPIURL+"?"+p.buildParams(query).Encode(), &response)
	})
	if err != nil {
		return nil, fmt.Errorf("serpapi hotel search: %w", err)
	}

	if response.Error != "" {
		if strings.HasPrefix(response.Error, noResultsPrefix) {
			return []dto.LodgingCandidate{}, nil
		}
		return nil, providerutils.ErrProviderBadResponse.WithCause(fmt.Errorf("serpapi: %s", response.Error))
	}

	return p.propertyToDTO(response.Properties), nil
}

func (p *Provider) buildParams(query dto.LodgingQuery) url.Values {
	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", query.City)
	params.Set("check_in_date", query.CheckIn)
	params.Set("check_out_date", query.CheckOut)
	params.Set("api_key", p.APIKey)
	params.Set("hl", "en")

	if query.Adults > 0 {
		params.Set("adults", strconv.Itoa(query.Adults))
	}

	if query.Currency != "" {
		params.Set("currency", query.Currency)
	}

	if query.Filter.MaxPrice != nil {
		params.Set("max_price", strconv.Itoa(int(*query.Filter.MaxPrice)))
	}

	if rating := ratingParam(query.Filter.MinRating); rating != "" {
		params.Set("rating", rating)
	}

	if len(query.Filter.HotelClass) > 0 {
		classes := make([]string, len(query.Filter.HotelClass))
		for i, class := range query.Filter.HotelClass {
			classes[i] = strconv.Itoa(class)
		}
		params.Set("hotel_class", strings.Join(classes, ","))
	}

	return params
}

// 7 is 3.5+, 8 is 4.0+, 9 is 4.5+
func ratingParam(minRating *float64) string {
	switch {
	case minRating == nil:
		return ""
	case *minRating >= 4.5:
		return "9"
	case *minRating >= 4.0:
		return "8"
	case *minRating >= 3.5:
		return "7"
	default:
		return ""
	}
}

// propertyToDTO keeps price strings as displayed. Properties without a name
// are dropped.
func (p *Provider) propertyToDTO(properties []Property) []dto.LodgingCandidate {
	results := make([]dto.LodgingCandidate, 0, len(properties))

	for _, property := range properties {
		if property.Name == "" {
			continue
		}

		candidate := dto.LodgingCandidate{
			Name:       property.Name,
			Rating:     property.OverallRating,
			Reviews:    property.Reviews,
			HotelClass: property.ExtractedHotelClass,
			Address:    property.Address,
			Link:       property.Link,
		}

		if property.RatePerNight != nil {
			candidate.PricePerNight = property.RatePerNight.Lowest
		}

		if property.TotalRate != nil {
			candidate.TotalPrice = property.TotalRate.Lowest
		}

		if property.GPSCoordinates != nil {
			candidate.Coordinates = &dto.Coordinates{
				Latitude:  property.GPSCoordinates.Latitude,
				Longitude: property.GPSCoordinates.Longitude,
			}
		}

		results = append(results, candidate)
	}

	return results
}
