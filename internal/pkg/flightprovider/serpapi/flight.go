package serpapi

type SearchFlightResponse struct {
	BestFlights  []FlightOption `json:"best_flights"`
	OtherFlights []FlightOption `json:"other_flights"`
	Error        string         `json:"error,omitempty"`
}

type FlightOption struct {
	Flights        []Flight `json:"flights"`
	TotalDuration  int      `json:"total_duration"`
	Price          float64  `json:"price"`
	Type           string   `json:"type,omitempty"`
	DepartureToken string   `json:"departure_token,omitempty"`
	BookingToken   string   `json:"booking_token,omitempty"`
}

type Flight struct {
	DepartureAirport Airport `json:"departure_airport"`
	ArrivalAirport   Airport `json:"arrival_airport"`
	Duration         int     `json:"duration"`
	Airplane         string  `json:"airplane,omitempty"`
	Airline          string  `json:"airline"`
	TravelClass      string  `json:"travel_class,omitempty"`
	FlightNumber     string  `json:"flight_number"`
	Overnight        bool    `json:"overnight,omitempty"`
}

type Airport struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

// MultiCityLeg is one element of the multi_city_json query parameter.
type MultiCityLeg struct {
	DepartureID string `json:"departure_id"`
	ArrivalID   string `json:"arrival_id"`
	Date        string `json:"date"`
}
