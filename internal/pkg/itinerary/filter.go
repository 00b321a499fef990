package itinerary

import (
	"strings"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
)

// FilterBundles keeps the bundles that satisfy every set filter option.
// The airline filter matches when every flight of the bundle is flown by it.
func FilterBundles(bundles []dto.ItineraryBundle, filterOpts *dto.FilterOption) []dto.ItineraryBundle {
	if filterOpts == nil {
		return bundles
	}

	results := make([]dto.ItineraryBundle, 0, len(bundles))

	for _, bundle := range bundles {
		if filterOpts.MaxPrice != nil && bundle.TotalPrice.Amount > *filterOpts.MaxPrice {
			continue
		}

		if filterOpts.MaxStops != nil && maxStops(bundle) > *filterOpts.MaxStops {
			continue
		}

		if filterOpts.Airline != nil && !flownBy(bundle, *filterOpts.Airline) {
			continue
		}

		if filterOpts.FeasibleOnly && !isFeasible(bundle) {
			continue
		}

		results = append(results, bundle)
	}

	return results
}

func maxStops(b dto.ItineraryBundle) int {
	stops := 0
	for _, leg := range b.Legs {
		stops = max(stops, leg.Option.Stops)
	}
	return stops
}

func flownBy(b dto.ItineraryBundle, airline string) bool {
	for _, leg := range b.Legs {
		for _, flight := range leg.Option.Flights {
			if !strings.EqualFold(flight.Airline, airline) {
				return false
			}
		}
	}
	return true
}
