package itinerary

import (
	"sort"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
)

// SortBundles orders bundles in place and returns them. The default order
// puts feasible bundles first and the cheaper of two equally feasible
// bundles first. The sort is stable so provider order breaks ties.
func SortBundles(bundles []dto.ItineraryBundle, sortOption *dto.SortOption) []dto.ItineraryBundle {
	var (
		option = ""
		order  = "asc"
	)
	if sortOption != nil {
		option = sortOption.Field
		if sortOption.Order != "" {
			order = sortOption.Order
		}
	}

	var less func(a, b dto.ItineraryBundle) bool

	switch option {
	case "price":
		less = func(a, b dto.ItineraryBundle) bool {
			return a.TotalPrice.Amount < b.TotalPrice.Amount
		}
	case "duration":
		less = func(a, b dto.ItineraryBundle) bool {
			return totalMinutes(a) < totalMinutes(b)
		}
	case "departure_time":
		less = func(a, b dto.ItineraryBundle) bool {
			return firstDeparture(a) < firstDeparture(b)
		}
	case "arrival_time":
		less = func(a, b dto.ItineraryBundle) bool {
			return lastArrival(a) < lastArrival(b)
		}
	default:
		less = func(a, b dto.ItineraryBundle) bool {
			if isFeasible(a) != isFeasible(b) {
				return isFeasible(a)
			}
			return a.TotalPrice.Amount < b.TotalPrice.Amount
		}
	}

	sort.SliceStable(bundles, func(i, j int) bool {
		if order == "desc" {
			return less(bundles[j], bundles[i])
		}
		return less(bundles[i], bundles[j])
	})

	return bundles
}

func isFeasible(b dto.ItineraryBundle) bool {
	return b.Feasibility != nil && b.Feasibility.Feasible
}

func totalMinutes(b dto.ItineraryBundle) int {
	total := 0
	for _, leg := range b.Legs {
		total += leg.Option.TotalDuration.TotalMinutes
	}
	return total
}

// datetimes share one fixed layout, so they order as strings
func firstDeparture(b dto.ItineraryBundle) string {
	if len(b.Legs) == 0 || len(b.Legs[0].Option.Flights) == 0 {
		return ""
	}
	return b.Legs[0].Option.Flights[0].Departure.Datetime
}

func lastArrival(b dto.ItineraryBundle) string {
	if len(b.Legs) == 0 {
		return ""
	}
	flights := b.Legs[len(b.Legs)-1].Option.Flights
	if len(flights) == 0 {
		return ""
	}
	return flights[len(flights)-1].Arrival.Datetime
}
