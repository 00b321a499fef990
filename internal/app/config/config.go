package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel      LogLeveler    `mapstructure:"LOG_LEVEL"`
	HTTP          HTTP          `mapstructure:",squash"`
	Redis         Redis         `mapstructure:",squash"`
	FlightSearch  FlightSearch  `mapstructure:",squash"`
	LodgingSearch LodgingSearch `mapstructure:",squash"`
	Distance      Distance      `mapstructure:",squash"`
	Planner       Planner       `mapstructure:",squash"`
}

type HTTP struct {
	Port           int           `mapstructure:"HTTP_PORT"`
	Timeout        time.Duration `mapstructure:"HTTP_TIMEOUT"`
	AllowedOrigins []string      `mapstructure:"HTTP_ALLOWED_ORIGINS"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// FlightSearch selects and configures the flight search provider.
// Provider is either serpapi or fixture.
type FlightSearch struct {
	Provider     string        `mapstructure:"FLIGHT_SEARCH_PROVIDER"`
	SearchAPIURL string        `mapstructure:"FLIGHT_SEARCH_API_URL"`
	APIKey       string        `mapstructure:"FLIGHT_SEARCH_API_KEY"`
	FixtureFile  string        `mapstructure:"FLIGHT_SEARCH_FIXTURE_FILE"`
	Timeout      time.Duration `mapstructure:"FLIGHT_SEARCH_TIMEOUT"`
	MaxRetries   int           `mapstructure:"FLIGHT_SEARCH_MAX_RETRIES"`
	RateLimitRPS int           `mapstructure:"FLIGHT_SEARCH_RATE_LIMIT"`
}

type LodgingSearch struct {
	SearchAPIURL string        `mapstructure:"LODGING_SEARCH_API_URL"`
	APIKey       string        `mapstructure:"LODGING_SEARCH_API_KEY"`
	Timeout      time.Duration `mapstructure:"LODGING_SEARCH_TIMEOUT"`
	MaxRetries   int           `mapstructure:"LODGING_SEARCH_MAX_RETRIES"`
	RateLimitRPS int           `mapstructure:"LODGING_SEARCH_RATE_LIMIT"`
}

type Distance struct {
	APIURL         string        `mapstructure:"DISTANCE_API_URL"`
	APIKey         string        `mapstructure:"DISTANCE_API_KEY"`
	Timeout        time.Duration `mapstructure:"DISTANCE_TIMEOUT"`
	RateLimitRPS   int           `mapstructure:"DISTANCE_RATE_LIMIT"`
	MaxConcurrency int           `mapstructure:"DISTANCE_MAX_CONCURRENCY"`
}

// Planner bounds the itinerary search and its caching. GenerationStore is
// redis, or memory for a single instance.
type Planner struct {
	SeedLimit             int           `mapstructure:"PLANNER_SEED_LIMIT"`
	ExpansionLimit        int           `mapstructure:"PLANNER_EXPANSION_LIMIT"`
	MaxInFlight           int           `mapstructure:"PLANNER_MAX_IN_FLIGHT"`
	MinHoursBeforeMeeting float64       `mapstructure:"PLANNER_MIN_HOURS_BEFORE_MEETING"`
	CacheExpiration       time.Duration `mapstructure:"PLANNER_CACHE_EXPIRATION"`
	LockTimeout           time.Duration `mapstructure:"PLANNER_LOCK_TIMEOUT"`
	GenerationTTL         time.Duration `mapstructure:"PLANNER_GENERATION_TTL"`
	GenerationStore       string        `mapstructure:"PLANNER_GENERATION_STORE"`
}
