package itinerary

import (
	"errors"
	"net/http"

	"github.com/ijalalfrz/business-trip-planner/internal/pkg/exception"
)

var ErrNoFlightsFound = exception.ApplicationError{
	Code:       "no_flights_found",
	StatusCode: http.StatusNotFound,
	Message:    "no flights found for the first leg of the trip",
}

var ErrNoCompleteItineraries = exception.ApplicationError{
	Code:       "no_complete_itineraries",
	StatusCode: http.StatusNotFound,
	Message:    "no flight combination covers every leg of the trip",
}

var ErrFlightProviderUnavailable = exception.ApplicationError{
	Code:       "flight_provider_unavailable",
	StatusCode: http.StatusBadGateway,
	Message:    "flight search provider is unavailable",
}

var ErrBundleMismatch = exception.ApplicationError{
	Code:       "bundle_meeting_mismatch",
	StatusCode: http.StatusBadRequest,
	Message:    "bundle does not match the meetings",
}

// errBranchAbandoned marks a partial chain that cannot be completed.
// It is logged and counted, never returned to callers.
var errBranchAbandoned = errors.New("branch abandoned")
