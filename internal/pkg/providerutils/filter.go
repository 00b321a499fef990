package providerutils

import (
	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
)

// FilterLegOptions drops options the provider returned despite the
// preferences, and options without a single flight.
func FilterLegOptions(options []dto.FlightLegOption, prefs dto.Preferences) []dto.FlightLegOption {
	results := make([]dto.FlightLegOption, 0, len(options))

	for _, option := range options {
		if len(option.Flights) == 0 {
			continue
		}

		if prefs.MaxStops != nil && option.Stops > *prefs.MaxStops {
			continue
		}

		results = append(results, option)
	}

	return results
}
