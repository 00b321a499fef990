package lodging

import (
	"slices"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
)

// FilterCandidates drops candidates the provider returned despite the filter.
// A candidate whose price cannot be read is kept, ranking sorts it last.
func FilterCandidates(candidates []dto.LodgingCandidate, filter dto.LodgingFilter) []dto.LodgingCandidate {
	results := make([]dto.LodgingCandidate, 0, len(candidates))

	for _, candidate := range candidates {
		if filter.MinRating != nil && candidate.Rating < *filter.MinRating {
			continue
		}

		if filter.MaxPrice != nil {
			if price, err := ParsePrice(candidate); err == nil && price > *filter.MaxPrice {
				continue
			}
		}

		if len(filter.HotelClass) > 0 && !slices.Contains(filter.HotelClass, candidate.HotelClass) {
			continue
		}

		results = append(results, candidate)
	}

	return results
}
