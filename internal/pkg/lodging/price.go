package lodging

import (
	"errors"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/utils"
)

// ErrUnparsablePrice means neither price string of a candidate holds a number.
// Ranking treats such a candidate as the most expensive one.
var ErrUnparsablePrice = errors.New("unparsable lodging price")

// ParsePrice reads the nightly rate, falling back to the total rate.
func ParsePrice(candidate dto.LodgingCandidate) (float64, error) {
	if amount, ok := utils.ExtractAmount(candidate.PricePerNight); ok {
		return amount, nil
	}

	if amount, ok := utils.ExtractAmount(candidate.TotalPrice); ok {
		return amount, nil
	}

	return 0, ErrUnparsablePrice
}

// Distance picks driving distance, then walking distance.
func Distance(sample dto.DistanceSample) (float64, bool) {
	if sample.DrivingDistanceMeters != nil {
		return *sample.DrivingDistanceMeters, true
	}

	if sample.WalkingDistanceMeters != nil {
		return *sample.WalkingDistanceMeters, true
	}

	return 0, false
}
