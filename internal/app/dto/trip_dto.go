package dto

// DateLayout is the calendar date format used for meetings, legs and lodging windows.
const DateLayout = "2006-01-02"

// ClockLayout is the wall clock format of a meeting start time.
const ClockLayout = "15:04"

// LocalDateTimeLayout is the provider local wall clock format of flight times.
// Providers report times without an offset, so every comparison is done in
// the same naive wall clock.
const LocalDateTimeLayout = "2006-01-02T15:04"

// Meeting is one stop of the trip, in chronological order.
type Meeting struct {
	City              string   `json:"city" validate:"required"`
	Address           string   `json:"address" validate:"required"`
	LocationID        string   `json:"location_id,omitempty"`
	CandidateAirports []string `json:"candidate_airports,omitempty" validate:"omitempty,dive,len=3,uppercase"`
	Date              string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time              string   `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	EarlyArrivalDays  int      `json:"early_arrival_days" validate:"gte=0,lte=30"`
}

// Leg is one required flight segment of the trip. Airport fields may hold
// several comma joined IATA codes.
type Leg struct {
	Index             int    `json:"index"`
	DepartureAirports string `json:"departure_airports"`
	ArrivalAirports   string `json:"arrival_airports"`
	TravelDate        string `json:"travel_date"`
	FromLabel         string `json:"from_label"`
	ToLabel           string `json:"to_label"`
	DateCorrected     bool   `json:"date_corrected"`
}

// Preferences are passed through to the flight search provider.
type Preferences struct {
	CabinClass string `json:"cabin_class,omitempty" validate:"omitempty,oneof=economy premium_economy business first"`
	Adults     int    `json:"adults,omitempty" validate:"omitempty,min=1,max=9"`
	Currency   string `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	MaxStops   *int   `json:"max_stops,omitempty" validate:"omitempty,gte=0,lte=2"`
}

type FlightPoint struct {
	Airport  string `json:"airport"`
	Name     string `json:"name,omitempty"`
	Datetime string `json:"datetime"`
}

type Duration struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// FlightSegment is a single physical flight inside a leg option.
type FlightSegment struct {
	Airline      string      `json:"airline"`
	FlightNumber string      `json:"flight_number"`
	Departure    FlightPoint `json:"departure"`
	Arrival      FlightPoint `json:"arrival"`
	Duration     Duration    `json:"duration"`
}

// FlightLegOption is one priced choice for a leg. Price is cumulative over
// the chain that produced it and only meaningful on the final leg.
// An empty ContinuationToken means nothing can be chained after it.
type FlightLegOption struct {
	Price             Price           `json:"price"`
	Flights           []FlightSegment `json:"flights"`
	TotalDuration     Duration        `json:"total_duration"`
	Stops             int             `json:"stops"`
	ContinuationToken string          `json:"continuation_token,omitempty"`
}

type BundleLeg struct {
	Leg    Leg             `json:"leg"`
	Option FlightLegOption `json:"option"`
}

// ItineraryBundle assigns exactly one option to every leg of the trip.
type ItineraryBundle struct {
	Legs        []BundleLeg  `json:"legs" validate:"required,min=1"`
	TotalPrice  Price        `json:"total_price"`
	Feasibility *Feasibility `json:"feasibility,omitempty"`
}

// Feasibility reports the buffer left before each meeting. The final
// return leg has no meeting and is not part of the slices.
type Feasibility struct {
	Feasible              bool      `json:"feasible"`
	MinHoursBeforeMeeting float64   `json:"min_hours_before_meeting"`
	PerLegHours           []float64 `json:"per_leg_hours"`
	PerLegSuitable        []bool    `json:"per_leg_suitable"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LodgingCandidate is a lodging offer for one city. Price strings are kept
// as the provider formatted them, the ranker fills Price, DistanceMeters
// and Score.
type LodgingCandidate struct {
	Name           string       `json:"name" validate:"required"`
	PricePerNight  string       `json:"price_per_night,omitempty"`
	TotalPrice     string       `json:"total_price,omitempty"`
	Rating         float64      `json:"rating,omitempty"`
	Reviews        int          `json:"reviews,omitempty"`
	HotelClass     int          `json:"hotel_class,omitempty"`
	Address        string       `json:"address,omitempty"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
	Link           string       `json:"link,omitempty"`
	Price          *float64     `json:"price,omitempty"`
	DistanceMeters *float64     `json:"distance_meters,omitempty"`
	Score          float64      `json:"score"`
}

// DistanceSample is aligned with the candidate slice by index. Nil values
// mean the lookup failed or was not made.
type DistanceSample struct {
	DrivingDistanceMeters *float64 `json:"driving_distance_meters,omitempty"`
	WalkingDistanceMeters *float64 `json:"walking_distance_meters,omitempty"`
	DrivingText           string   `json:"driving_text,omitempty"`
	WalkingText           string   `json:"walking_text,omitempty"`
}

type LodgingFilter struct {
	MinRating  *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	MaxPrice   *float64 `json:"max_price,omitempty" validate:"omitempty,gt=0"`
	HotelClass []int    `json:"hotel_class,omitempty" validate:"omitempty,dive,min=1,max=5"`
}

// LodgingQuery is what the lodging provider is asked for.
type LodgingQuery struct {
	City     string
	CheckIn  string
	CheckOut string
	Adults   int
	Currency string
	Filter   LodgingFilter
}

type LodgingWindow struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Nights   int    `json:"nights"`
}
