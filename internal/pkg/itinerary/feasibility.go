package itinerary

import (
	"fmt"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/datemath"
)

const DefaultMinHoursBeforeMeeting = 5.0

// HoursBeforeMeeting is the time between the last arrival of leg legIndex
// and the start of meeting. Both sides are read as the same local wall clock.
func HoursBeforeMeeting(bundle dto.ItineraryBundle, meeting dto.Meeting, legIndex int) (float64, error) {
	if legIndex < 0 || legIndex >= len(bundle.Legs) {
		return 0, ErrBundleMismatch.WithMessage("leg %d is not part of the bundle", legIndex)
	}

	flights := bundle.Legs[legIndex].Option.Flights
	if len(flights) == 0 {
		return 0, ErrBundleMismatch.WithMessage("leg %d has no flights", legIndex)
	}

	arrival, err := datemath.ParseLocalDateTime(flights[len(flights)-1].Arrival.Datetime)
	if err != nil {
		return 0, ErrBundleMismatch.WithMessage("leg %d arrival time is invalid", legIndex).WithCause(err)
	}

	meetingAt, err := datemath.CombineDateTime(meeting.Date, meeting.Time)
	if err != nil {
		return 0, ErrBundleMismatch.WithMessage("meeting %d start is invalid", legIndex).WithCause(err)
	}

	return datemath.HoursBetween(arrival, meetingAt), nil
}

// EvaluateFeasibility checks every leg except the final return leg against
// the meeting it leads to. Leg i serves meetings[i].
func EvaluateFeasibility(bundle dto.ItineraryBundle, meetings []dto.Meeting, minHours float64) (dto.Feasibility, error) {
	if len(bundle.Legs) == 0 {
		return dto.Feasibility{}, ErrBundleMismatch.WithMessage("bundle has no legs")
	}

	// one leg per meeting plus the return leg
	checked := len(bundle.Legs) - 1
	if len(meetings) != checked {
		return dto.Feasibility{}, ErrBundleMismatch.WithMessage(
			"bundle has %d legs but %d meetings", len(bundle.Legs), len(meetings))
	}

	feasibility := dto.Feasibility{
		Feasible:              true,
		MinHoursBeforeMeeting: minHours,
		PerLegHours:           make([]float64, checked),
		PerLegSuitable:        make([]bool, checked),
	}

	for i := 0; i < checked; i++ {
		hours, err := HoursBeforeMeeting(bundle, meetings[i], i)
		if err != nil {
			return dto.Feasibility{}, fmt.Errorf("evaluate leg %d: %w", i, err)
		}

		feasibility.PerLegHours[i] = hours
		feasibility.PerLegSuitable[i] = hours >= minHours
		feasibility.Feasible = feasibility.Feasible && feasibility.PerLegSuitable[i]
	}

	return feasibility, nil
}

// AnnotateFeasibility sets Feasibility on every bundle in place. A bundle that
// cannot be evaluated is marked infeasible.
func AnnotateFeasibility(bundles []dto.ItineraryBundle, meetings []dto.Meeting, minHours float64) error {
	var firstErr error

	for i := range bundles {
		feasibility, err := EvaluateFeasibility(bundles[i], meetings, minHours)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			feasibility = dto.Feasibility{MinHoursBeforeMeeting: minHours}
		}

		bundles[i].Feasibility = &feasibility
	}

	return firstErr
}
