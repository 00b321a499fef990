package segment

import (
	"net/http"
	"strings"
	"time"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/datemath"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/exception"
)

var ErrInvalidSchedule = exception.ApplicationError{
	Code:       "invalid_schedule",
	Message:    "invalid schedule",
	StatusCode: http.StatusBadRequest,
}

// Planner turns a home airport, ordered meetings and a return date into the
// flight legs of the trip.
type Planner struct {
	Now func() time.Time
}

func NewPlanner() *Planner {
	return &Planner{Now: time.Now}
}

// PlanLegs returns len(meetings)+1 legs: home to the first meeting, one leg
// between consecutive meetings and the last meeting back home.
func (p *Planner) PlanLegs(homeAirport string, meetings []dto.Meeting, returnDate string) ([]dto.Leg, error) {
	if len(meetings) == 0 {
		return nil, ErrInvalidSchedule.WithMessage("at least one meeting is required")
	}

	meetingDates, err := validateSchedule(meetings, returnDate)
	if err != nil {
		return nil, err
	}

	returnDay, _ := datemath.ParseDate(returnDate)
	today := datemath.Today(p.now())
	home := strings.ToUpper(strings.TrimSpace(homeAirport))

	legs := make([]dto.Leg, 0, len(meetings)+1)
	from, fromLabel := home, home

	for i, meeting := range meetings {
		bound := meetingDates[i]
		candidate := datemath.OffsetDate(bound, -meeting.EarlyArrivalDays)

		travelDate, corrected, err := datemath.CorrectIfPast(candidate, &bound, today)
		if err != nil {
			return nil, ErrInvalidSchedule.WithMessage("meeting %d in %s on %s is not in the future",
				i+1, meeting.City, meeting.Date).WithCause(err)
		}

		to := meetingLocation(meeting)
		legs = append(legs, dto.Leg{
			Index:             i,
			DepartureAirports: from,
			ArrivalAirports:   to,
			TravelDate:        datemath.FormatDate(travelDate),
			FromLabel:         fromLabel,
			ToLabel:           meeting.City,
			DateCorrected:     corrected,
		})

		from, fromLabel = to, meeting.City
	}

	// return leg has no meeting to bound it
	travelDate, corrected, _ := datemath.CorrectIfPast(returnDay, nil, today)
	legs = append(legs, dto.Leg{
		Index:             len(meetings),
		DepartureAirports: from,
		ArrivalAirports:   home,
		TravelDate:        datemath.FormatDate(travelDate),
		FromLabel:         fromLabel,
		ToLabel:           home,
		DateCorrected:     corrected,
	})

	return legs, nil
}

func (p *Planner) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// validateSchedule parses meeting dates and enforces a strictly increasing
// meeting order with the return date on or after the last meeting.
func validateSchedule(meetings []dto.Meeting, returnDate string) ([]time.Time, error) {
	dates := make([]time.Time, len(meetings))

	for i, meeting := range meetings {
		if meeting.EarlyArrivalDays < 0 {
			return nil, ErrInvalidSchedule.WithMessage("meeting %d in %s has negative early arrival days",
				i+1, meeting.City)
		}

		day, err := datemath.ParseDate(meeting.Date)
		if err != nil {
			return nil, ErrInvalidSchedule.WithMessage("meeting %d in %s has invalid date %q",
				i+1, meeting.City, meeting.Date).WithCause(err)
		}

		if i > 0 && !day.After(dates[i-1]) {
			return nil, ErrInvalidSchedule.WithMessage("meeting %d date %s must be after meeting %d date %s",
				i+1, meeting.Date, i, meetings[i-1].Date)
		}

		dates[i] = day
	}

	returnDay, err := datemath.ParseDate(returnDate)
	if err != nil {
		return nil, ErrInvalidSchedule.WithMessage("invalid return date %q", returnDate).WithCause(err)
	}

	last := len(meetings) - 1
	if returnDay.Before(dates[last]) {
		return nil, ErrInvalidSchedule.WithMessage("return date %s is before last meeting date %s",
			returnDate, meetings[last].Date)
	}

	return dates, nil
}

// meetingLocation is the airport field sent to the flight provider: the
// comma joined candidate airports, else the provider location id, else the city.
func meetingLocation(meeting dto.Meeting) string {
	airports := make([]string, 0, len(meeting.CandidateAirports))
	for _, code := range meeting.CandidateAirports {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			airports = append(airports, code)
		}
	}

	if len(airports) > 0 {
		return strings.Join(airports, ",")
	}

	if meeting.LocationID != "" {
		return meeting.LocationID
	}

	return meeting.City
}
