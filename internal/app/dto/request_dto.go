package dto

import (
	"fmt"
	"net/http"

	"github.com/ijalalfrz/business-trip-planner/internal/pkg/exception"
)

var AllowedSortField = map[string]bool{
	"":               true,
	"best":           true,
	"price":          true,
	"duration":       true,
	"departure_time": true,
	"arrival_time":   true,
}

type SortOption struct {
	Field string `json:"field"`
	Order string `json:"order" validate:"omitempty,oneof=asc desc"`
}

type FilterOption struct {
	MaxPrice     *float64 `json:"max_price,omitempty" validate:"omitempty,gt=0"`
	MaxStops     *int     `json:"max_stops,omitempty" validate:"omitempty,gte=0"`
	Airline      *string  `json:"airline,omitempty"`
	FeasibleOnly bool     `json:"feasible_only,omitempty"`
}

// Trip is the user input a leg plan is derived from.
type Trip struct {
	HomeAirport string    `json:"home_airport" validate:"required,len=3,uppercase"`
	Meetings    []Meeting `json:"meetings" validate:"required,min=1,dive"`
	ReturnDate  string    `json:"return_date" validate:"required,datetime=2006-01-02"`
}

type PlanLegsRequest struct {
	Trip Trip `json:"trip"`
}

func (p *PlanLegsRequest) Bind(r *http.Request) error {
	if err := validateRequest(p); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

type PlanLegsResponse struct {
	Legs []Leg `json:"legs"`
}

type SearchItinerariesRequest struct {
	SessionID             string        `json:"session_id,omitempty" validate:"omitempty,max=128"`
	Trip                  Trip          `json:"trip"`
	Preferences           Preferences   `json:"preferences"`
	MinHoursBeforeMeeting *float64      `json:"min_hours_before_meeting,omitempty" validate:"omitempty,gte=0,lte=72"`
	SortOption            *SortOption   `json:"sort_option,omitempty"`
	FilterOption          *FilterOption `json:"filter_option,omitempty"`
}

func (s *SearchItinerariesRequest) Bind(r *http.Request) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (s *SearchItinerariesRequest) Validate() error {
	if err := validateRequest(s); err != nil {
		return err
	}

	if s.SortOption != nil && !AllowedSortField[s.SortOption.Field] {
		return exception.ApplicationError{
			Code:       CodeInvalidRequest,
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("Invalid sort field %s", s.SortOption.Field),
		}
	}

	return nil
}

type ItineraryMetadata struct {
	TotalResults      int   `json:"total_results"`
	FeasibleResults   int   `json:"feasible_results"`
	SeedsExplored     int   `json:"seeds_explored"`
	ProviderCalls     int   `json:"provider_calls"`
	AbandonedBranches int   `json:"abandoned_branches"`
	SearchTimeMs      int   `json:"search_time_ms"`
	CacheHit          bool  `json:"cache_hit"`
	Generation        int64 `json:"generation"`
}

type SearchItinerariesResponse struct {
	Legs     []Leg             `json:"legs"`
	Bundles  []ItineraryBundle `json:"bundles"`
	Metadata ItineraryMetadata `json:"metadata"`
}

type FeasibilityRequest struct {
	Bundle                ItineraryBundle `json:"bundle"`
	Meetings              []Meeting       `json:"meetings" validate:"required,min=1,dive"`
	MinHoursBeforeMeeting *float64        `json:"min_hours_before_meeting,omitempty" validate:"omitempty,gte=0,lte=72"`
}

func (f *FeasibilityRequest) Bind(r *http.Request) error {
	if err := validateRequest(f); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

type SearchLodgingsRequest struct {
	SessionID         string        `json:"session_id,omitempty" validate:"omitempty,max=128"`
	City              string        `json:"city" validate:"required"`
	MeetingAddress    string        `json:"meeting_address" validate:"required"`
	ArrivalDatetime   string        `json:"arrival_datetime" validate:"required,datetime=2006-01-02T15:04"`
	DepartureDatetime string        `json:"departure_datetime" validate:"required,datetime=2006-01-02T15:04"`
	EarlyArrivalDays  int           `json:"early_arrival_days" validate:"gte=0,lte=30"`
	Adults            int           `json:"adults,omitempty" validate:"omitempty,min=1,max=9"`
	Currency          string        `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	Weight            *int          `json:"weight" validate:"required,gte=0,lte=100"`
	Filter            LodgingFilter `json:"filter"`
}

func (s *SearchLodgingsRequest) Bind(r *http.Request) error {
	if err := validateRequest(s); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

type LodgingMetadata struct {
	TotalResults     int   `json:"total_results"`
	DistanceLookups  int   `json:"distance_lookups"`
	DistanceFailures int   `json:"distance_failures"`
	SearchTimeMs     int   `json:"search_time_ms"`
	Generation       int64 `json:"generation"`
}

type SearchLodgingsResponse struct {
	Window   LodgingWindow      `json:"window"`
	Lodgings []LodgingCandidate `json:"lodgings"`
	Metadata LodgingMetadata    `json:"metadata"`
}

type RankLodgingsRequest struct {
	Candidates []LodgingCandidate `json:"candidates" validate:"required,min=1,dive"`
	Distances  []DistanceSample   `json:"distances"`
	Weight     *int               `json:"weight" validate:"required,gte=0,lte=100"`
}

func (r *RankLodgingsRequest) Bind(_ *http.Request) error {
	if err := validateRequest(r); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	if len(r.Distances) > len(r.Candidates) {
		return exception.ApplicationError{
			Code:       CodeInvalidRequest,
			StatusCode: http.StatusBadRequest,
			Message:    "distances must not outnumber candidates",
		}
	}

	return nil
}

type RankLodgingsResponse struct {
	Lodgings []LodgingCandidate `json:"lodgings"`
}

type LodgingWindowRequest struct {
	ArrivalDatetime   string `json:"arrival_datetime" validate:"required,datetime=2006-01-02T15:04"`
	DepartureDatetime string `json:"departure_datetime" validate:"required,datetime=2006-01-02T15:04"`
	EarlyArrivalDays  int    `json:"early_arrival_days" validate:"gte=0,lte=30"`
}

func (l *LodgingWindowRequest) Bind(_ *http.Request) error {
	if err := validateRequest(l); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}
