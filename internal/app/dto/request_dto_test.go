//go:build unit

package dto

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSearchItinerariesRequest_Validate(t *testing.T) {
	// Initialize validator for tests
	_ = InitValidator()

	validateRequest := func(req SearchItinerariesRequest, wantErr bool, wantMsg string) func(t *testing.T) {
		return func(t *testing.T) {
			err := req.Validate()
			if (err != nil) != wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, wantErr)
			}

			if wantErr && err != nil {
				if diff := cmp.Diff(wantMsg, err.Error()); diff != "" {
					t.Fatalf("Validate() error message mismatch (-want +got):\n%s", diff)
				}
			}
		}
	}

	meeting := Meeting{
		City:              "Chicago",
		Address:           "233 S Wacker Dr, Chicago",
		CandidateAirports: []string{"ORD", "MDW"},
		Date:              "2024-03-10",
		Time:              "09:30",
		EarlyArrivalDays:  1,
	}

	validTrip := Trip{
		HomeAirport: "SFO",
		Meetings:    []Meeting{meeting},
		ReturnDate:  "2024-03-12",
	}

	t.Run("valid_request", validateRequest(SearchItinerariesRequest{Trip: validTrip}, false, ""))

	t.Run("missing_home_airport", validateRequest(SearchItinerariesRequest{
		Trip: Trip{Meetings: []Meeting{meeting}, ReturnDate: "2024-03-12"},
	}, true, "home_airport is a required field"))

	t.Run("missing_meetings", validateRequest(SearchItinerariesRequest{
		Trip: Trip{HomeAirport: "SFO", ReturnDate: "2024-03-12"},
	}, true, "meetings is a required field"))

	badDate := meeting
	badDate.Date = "10/03/2024"
	t.Run("invalid_meeting_date", validateRequest(SearchItinerariesRequest{
		Trip: Trip{HomeAirport: "SFO", Meetings: []Meeting{badDate}, ReturnDate: "2024-03-12"},
	}, true, "date does not match the 2006-01-02 format"))

	negativeBuffer := meeting
	negativeBuffer.EarlyArrivalDays = -1
	t.Run("negative_early_arrival", validateRequest(SearchItinerariesRequest{
		Trip: Trip{HomeAirport: "SFO", Meetings: []Meeting{negativeBuffer}, ReturnDate: "2024-03-12"},
	}, true, "early_arrival_days must be 0 or greater"))

	t.Run("invalid_sort_field", validateRequest(SearchItinerariesRequest{
		Trip:       validTrip,
		SortOption: &SortOption{Field: "invalid", Order: "asc"},
	}, true, "Invalid sort field invalid"))
}

func TestRankLodgingsRequest_Bind(t *testing.T) {
	_ = InitValidator()

	bindRequest := func(req RankLodgingsRequest, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			err := req.Bind(nil)
			if (err != nil) != wantErr {
				t.Fatalf("Bind() error = %v, wantErr %v", err, wantErr)
			}
		}
	}

	weight := func(w int) *int { return &w }
	candidates := []LodgingCandidate{{Name: "Hotel A"}, {Name: "Hotel B"}}

	t.Run("valid_bind", bindRequest(RankLodgingsRequest{Candidates: candidates, Weight: weight(50)}, false))
	t.Run("missing_weight", bindRequest(RankLodgingsRequest{Candidates: candidates}, true))
	t.Run("weight_out_of_range", bindRequest(RankLodgingsRequest{Candidates: candidates, Weight: weight(101)}, true))
	t.Run("too_many_distances", bindRequest(RankLodgingsRequest{
		Candidates: candidates[:1],
		Distances:  make([]DistanceSample, 2),
		Weight:     weight(0),
	}, true))
	t.Run("invalid_bind", bindRequest(RankLodgingsRequest{}, true))
}
