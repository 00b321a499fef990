package service

import (
	"net/http"

	"github.com/ijalalfrz/business-trip-planner/internal/pkg/exception"
)

var ErrSearchSuperseded = exception.ApplicationError{
	Code:       "search_superseded",
	StatusCode: http.StatusConflict,
	Message:    "a newer search was started, this result was discarded",
}

var ErrNoMatchingItineraries = exception.ApplicationError{
	Code:       "no_matching_itineraries",
	StatusCode: http.StatusNotFound,
	Message:    "no itinerary matches the filter",
}

var ErrNoLodgingsFound = exception.ApplicationError{
	Code:       "no_lodgings_found",
	StatusCode: http.StatusNotFound,
	Message:    "no lodgings found",
}

var ErrLodgingProviderUnavailable = exception.ApplicationError{
	Code:       "lodging_provider_unavailable",
	StatusCode: http.StatusBadGateway,
	Message:    "lodging search provider is unavailable",
}

var ErrInvalidLodgingWindow = exception.ApplicationError{
	Code:       "invalid_lodging_window",
	StatusCode: http.StatusBadRequest,
	Message:    "invalid lodging window",
}
