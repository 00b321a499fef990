package endpoints

// Endpoints groups every endpoint the HTTP router exposes.
type Endpoints struct {
	TripEndpoint    TripEndpoint
	LodgingEndpoint LodgingEndpoint
}
