package serpapi

type SearchHotelResponse struct {
	Properties []Property `json:"properties"`
	Error      string     `json:"error,omitempty"`
}

type Property struct {
	Type                string          `json:"type,omitempty"`
	Name                string          `json:"name"`
	Link                string          `json:"link,omitempty"`
	Address             string          `json:"address,omitempty"`
	GPSCoordinates      *GPSCoordinates `json:"gps_coordinates,omitempty"`
	RatePerNight        *Rate           `json:"rate_per_night,omitempty"`
	TotalRate           *Rate           `json:"total_rate,omitempty"`
	OverallRating       float64         `json:"overall_rating,omitempty"`
	Reviews             int             `json:"reviews,omitempty"`
	ExtractedHotelClass int             `json:"extracted_hotel_class,omitempty"`
}

type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Rate struct {
	Lowest          string  `json:"lowest"`
	ExtractedLowest float64 `json:"extracted_lowest,omitempty"`
}
