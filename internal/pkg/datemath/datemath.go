// Package datemath holds the calendar arithmetic behind leg dates, lodging
// windows and meeting buffers. Dates are civil dates kept as midnight UTC.
package datemath

import (
	"errors"
	"fmt"
	"time"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
)

// lateNightCutoffHour is the first hour that no longer counts as the previous night.
const lateNightCutoffHour = 6

var (
	ErrMeetingNotInFuture     = errors.New("meeting date is not in the future")
	ErrNegativeEarlyArrival   = errors.New("early arrival days must not be negative")
	ErrDepartureBeforeArrival = errors.New("departure is before arrival")
)

// Window is a lodging stay, check-out is always at least one day after check-in.
type Window struct {
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
}

// Today returns the civil date of now.
func Today(now time.Time) time.Time {
	return civil(now)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dto.DateLayout, value)
}

// ParseLocalDateTime parses a provider local wall clock timestamp.
func ParseLocalDateTime(value string) (time.Time, error) {
	return time.Parse(dto.LocalDateTimeLayout, value)
}

// CombineDateTime joins a meeting date and optional HH:MM clock.
// An empty clock means the start of the day.
func CombineDateTime(date, clock string) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}

	if clock == "" {
		return day, nil
	}

	at, err := time.Parse(dto.ClockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time: %w", err)
	}

	return day.Add(time.Duration(at.Hour())*time.Hour + time.Duration(at.Minute())*time.Minute), nil
}

func FormatDate(date time.Time) string {
	return date.Format(dto.DateLayout)
}

// OffsetDate moves date by days, negative values go back in time.
func OffsetDate(date time.Time, days int) time.Time {
	return civil(date).AddDate(0, 0, days)
}

// CorrectIfPast moves a candidate travel date that lies before today.
// With a bounding meeting date the result is min(today+1, bound-1) and the
// bound itself must be after today. Without a bound the result is today+1.
// The second return value reports whether the date was changed.
func CorrectIfPast(candidate time.Time, bound *time.Time, today time.Time) (time.Time, bool, error) {
	candidate = civil(candidate)
	today = civil(today)

	if !candidate.Before(today) {
		return candidate, false, nil
	}

	tomorrow := today.AddDate(0, 0, 1)
	if bound == nil {
		return tomorrow, true, nil
	}

	meetingDate := civil(*bound)
	if !meetingDate.After(today) {
		return time.Time{}, false, fmt.Errorf("%w: %s", ErrMeetingNotInFuture, FormatDate(meetingDate))
	}

	dayBefore := meetingDate.AddDate(0, 0, -1)
	if dayBefore.Before(tomorrow) {
		return dayBefore, true, nil
	}

	return tomorrow, true, nil
}

// LodgingWindow derives the stay around a meeting from the flight that
// arrives and the flight that leaves. Arrivals between midnight and 06:00
// count as the previous night. earlyArrivalDays is already reflected in the
// arrival flight date and is only checked here.
func LodgingWindow(arrival, departure time.Time, earlyArrivalDays int) (Window, error) {
	if earlyArrivalDays < 0 {
		return Window{}, ErrNegativeEarlyArrival
	}

	if departure.Before(arrival) {
		return Window{}, ErrDepartureBeforeArrival
	}

	checkIn := civil(arrival)
	if arrival.Hour() < lateNightCutoffHour {
		checkIn = checkIn.AddDate(0, 0, -1)
	}

	checkOut := civil(departure)
	nights := DaysBetween(checkIn, checkOut)
	if nights < 1 {
		nights = 1
		checkOut = checkIn.AddDate(0, 0, 1)
	}

	return Window{CheckIn: checkIn, CheckOut: checkOut, Nights: nights}, nil
}

// HoursBetween returns to - from in hours, negative when to is earlier.
func HoursBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours()
}

// DaysBetween counts calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(civil(b).Sub(civil(a)).Hours() / 24)
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
