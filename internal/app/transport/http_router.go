package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/business-trip-planner/internal/app/config"
	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/app/endpoints"
	httptransport "github.com/ijalalfrz/business-trip-planner/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(cfg.HTTP.AllowedOrigins),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Route("/trips", func(router chi.Router) {
			router.Post("/legs", httptransport.MakeHandlerFunc(
				endpts.TripEndpoint.PlanLegs,
				httptransport.DecodeRequest[dto.PlanLegsRequest],
				httptransport.ResponseWithBody,
			))

			router.Post("/itineraries/search", httptransport.MakeHandlerFunc(
				endpts.TripEndpoint.SearchItineraries,
				httptransport.DecodeRequest[dto.SearchItinerariesRequest],
				httptransport.ResponseWithBody,
			))

			router.Post("/itineraries/feasibility", httptransport.MakeHandlerFunc(
				endpts.TripEndpoint.EvaluateFeasibility,
				httptransport.DecodeRequest[dto.FeasibilityRequest],
				httptransport.ResponseWithBody,
			))
		})

		router.Route("/lodgings", func(router chi.Router) {
			router.Post("/search", httptransport.MakeHandlerFunc(
				endpts.LodgingEndpoint.SearchLodgings,
				httptransport.DecodeRequest[dto.SearchLodgingsRequest],
				httptransport.ResponseWithBody,
			))

			router.Post("/rank", httptransport.MakeHandlerFunc(
				endpts.LodgingEndpoint.RankLodgings,
				httptransport.DecodeRequest[dto.RankLodgingsRequest],
				httptransport.ResponseWithBody,
			))

			router.Post("/window", httptransport.MakeHandlerFunc(
				endpts.LodgingEndpoint.LodgingWindow,
				httptransport.DecodeRequest[dto.LodgingWindowRequest],
				httptransport.ResponseWithBody,
			))
		})
	})

	return router
}
