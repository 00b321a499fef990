// Package lodging orders lodging candidates of one city by a weighted blend
// of nightly price and distance to the meeting.
package lodging

import (
	"sort"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
)

const (
	MinWeight = 0
	MaxWeight = 100
)

// ranked carries the values a candidate is ordered by.
type ranked struct {
	candidate       dto.LodgingCandidate
	index           int
	priceUnknown    bool
	distanceUnknown bool
}

// Rank scores every candidate and returns them best first. distances is
// aligned with candidates by index and may be shorter. weight 0 ranks purely
// by price, 100 purely by distance.
//
// Both criteria are divided by the largest known value. An unknown price or
// distance counts as 1, the worst normalized value, and a candidate with an
// unknown criterion that carries weight ranks after every candidate where
// that criterion is known. Ties keep provider order.
func Rank(candidates []dto.LodgingCandidate, distances []dto.DistanceSample, weight int) []dto.LodgingCandidate {
	weight = min(max(weight, MinWeight), MaxWeight)

	items := make([]ranked, len(candidates))
	maxPrice, maxDistance := 0.0, 0.0

	for i, candidate := range candidates {
		item := ranked{candidate: candidate, index: i}
		item.candidate.Price = nil
		item.candidate.DistanceMeters = nil

		if price, err := ParsePrice(candidate); err == nil {
			item.candidate.Price = &price
			maxPrice = max(maxPrice, price)
		} else {
			item.priceUnknown = true
		}

		var sample dto.DistanceSample
		if i < len(distances) {
			sample = distances[i]
		}

		if distance, ok := Distance(sample); ok {
			item.candidate.DistanceMeters = &distance
			maxDistance = max(maxDistance, distance)
		} else {
			item.distanceUnknown = true
		}

		items[i] = item
	}

	priceWeight := float64(MaxWeight-weight) / MaxWeight
	distanceWeight := float64(weight) / MaxWeight

	for i := range items {
		normalizedPrice := normalizeValue(items[i].candidate.Price, maxPrice)
		normalizedDistance := normalizeValue(items[i].candidate.DistanceMeters, maxDistance)

		items[i].candidate.Score = normalizedPrice*priceWeight + normalizedDistance*distanceWeight
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if weight > MinWeight && a.distanceUnknown != b.distanceUnknown {
			return b.distanceUnknown
		}

		if weight < MaxWeight && a.priceUnknown != b.priceUnknown {
			return b.priceUnknown
		}

		if a.candidate.Score != b.candidate.Score {
			return a.candidate.Score < b.candidate.Score
		}

		return a.index < b.index
	})

	results := make([]dto.LodgingCandidate, len(items))
	for i, item := range items {
		results[i] = item.candidate
	}

	return results
}

func normalizeValue(value *float64, maxValue float64) float64 {
	if value == nil {
		return 1
	}

	if maxValue == 0 {
		return 0
	}

	return *value / maxValue
}
