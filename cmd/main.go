package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/business-trip-planner/internal/app/config"
	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/app/endpoints"
	"github.com/ijalalfrz/business-trip-planner/internal/app/service"
	"github.com/ijalalfrz/business-trip-planner/internal/app/transport"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/distance"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/flightprovider"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/flightprovider/fixture"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/flightprovider/serpapi"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/generation"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/itinerary"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/lodgingprovider"
	lodgingserpapi "github.com/ijalalfrz/business-trip-planner/internal/pkg/lodgingprovider/serpapi"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/logger"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/segment"
	"github.com/redis/go-redis/v9"
)

// @title           Business Trip Planner API
// @version         0.0.1
// @description     business-trip-planner
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {

	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	endpts := makeEndpoints(ctx, &cfg)
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	// ctx is already cancelled here, shutdown gets its own deadline
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config) endpoints.Endpoints {
	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.Timeout,
		ReadTimeout:  cfg.Redis.Timeout,
		WriteTimeout: cfg.Redis.Timeout,
	})

	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	limiter := redis_rate.NewLimiter(redisClient)

	// init factory
	flightProviderFactory := initFlightProviderFactory(cfg, limiter)

	flightProvider, err := flightProviderFactory.GetProvider(cfg.FlightSearch.Provider)
	if err != nil {
		slog.ErrorContext(ctx, "failed to select flight provider", slog.String("error", err.Error()))
		panic(err)
	}

	plannerService := makePlannerService(flightProvider, limiter, redisClient, cfg)

	// init service endpoint
	return endpoints.Endpoints{
		TripEndpoint:    endpoints.MakeTripEndpoint(plannerService),
		LodgingEndpoint: endpoints.MakeLodgingEndpoint(plannerService),
	}
}

// register flight provider
func initFlightProviderFactory(cfg *config.Config, limiter *redis_rate.Limiter) *flightprovider.FlightProviderFactory {
	providerConfig := flightprovider.FlightProviderConfig{
		SearchAPIURL: cfg.FlightSearch.SearchAPIURL,
		APIKey:       cfg.FlightSearch.APIKey,
		FixtureFile:  cfg.FlightSearch.FixtureFile,
		Timeout:      cfg.FlightSearch.Timeout,
		MaxRetries:   cfg.FlightSearch.MaxRetries,
		RateLimitRPS: cfg.FlightSearch.RateLimitRPS,
		Limiter:      limiter,
	}

	factory := flightprovider.NewFlightProviderFactory()
	factory.AddProvider(serpapi.ProviderName, serpapi.NewProvider(providerConfig))
	factory.AddProvider(fixture.ProviderName, fixture.NewProvider(providerConfig))

	return factory
}

func makePlannerService(flightProvider flightprovider.FlightSearchProvider, limiter *redis_rate.Limiter,
	redisClient *redis.Client, cfg *config.Config) *service.PlannerService {

	// itineraries
	chainer := itinerary.NewChainer(flightProvider,
		cfg.Planner.SeedLimit, cfg.Planner.ExpansionLimit, cfg.Planner.MaxInFlight)
	bundleCache := itinerary.NewBundleCache(redisClient)
	var generations generation.Tracker = generation.NewRedisTracker(redisClient, cfg.Planner.GenerationTTL)
	if cfg.Planner.GenerationStore == "memory" {
		generations = generation.NewMemoryTracker()
	}

	// lodgings
	lodgingProvider := lodgingserpapi.NewProvider(lodgingprovider.LodgingProviderConfig{
		SearchAPIURL: cfg.LodgingSearch.SearchAPIURL,
		APIKey:       cfg.LodgingSearch.APIKey,
		Timeout:      cfg.LodgingSearch.Timeout,
		MaxRetries:   cfg.LodgingSearch.MaxRetries,
		RateLimitRPS: cfg.LodgingSearch.RateLimitRPS,
		Limiter:      limiter,
	})
	distanceSampler := distance.NewSampler(distance.NewClient(distance.ClientConfig{
		APIURL:    cfg.Distance.APIURL,
		APIKey:    cfg.Distance.APIKey,
		Timeout:   cfg.Distance.Timeout,
		RateLimit: cfg.Distance.RateLimitRPS,
	}), cfg.Distance.MaxConcurrency)

	// service
	return service.NewPlannerService(segment.NewPlanner(), chainer, bundleCache, generations,
		lodgingProvider, distanceSampler, cfg.Planner.CacheExpiration, cfg.Planner.LockTimeout,
		cfg.Planner.MinHoursBeforeMeeting)
}
