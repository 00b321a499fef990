package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// MustInitConfig loads the configuration and panics when it is unusable.
func MustInitConfig(configFile string) Config {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		slog.Error("cannot load config", slog.String("error", err.Error()))
		panic(err)
	}

	return cfg
}

// LoadConfig reads configFile when it exists and lets environment variables
// named after the mapstructure tags override it.
func LoadConfig(configFile string) (Config, error) {
	var (
		vpr = viper.New()
		cfg Config
	)

	setDefaults(vpr)

	vpr.AutomaticEnv()

	vpr.SetConfigFile(configFile)
	vpr.SetConfigType("env")

	if err := vpr.ReadInConfig(); err != nil {
		slog.Warn("config file not found or cannot be read, using environment variables",
			slog.String("file", configFile),
			slog.String("error", err.Error()))
	} else {
		slog.Info("config file loaded successfully", slog.String("file", configFile))
	}

	bindEnvFromType(vpr, reflect.TypeOf(Config{}))

	if err := vpr.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.FlightSearch.Provider {
	case "serpapi":
		if c.FlightSearch.APIKey == "" {
			slog.Warn("FLIGHT_SEARCH_API_KEY is empty, flight searches will be rejected upstream")
		}
	case "fixture":
		if c.FlightSearch.FixtureFile == "" {
			return errors.New("FLIGHT_SEARCH_FIXTURE_FILE is required for the fixture provider")
		}
	default:
		return fmt.Errorf("unknown FLIGHT_SEARCH_PROVIDER %q", c.FlightSearch.Provider)
	}

	if c.Planner.SeedLimit <= 0 || c.Planner.ExpansionLimit <= 0 || c.Planner.MaxInFlight <= 0 {
		return errors.New("planner limits must be positive")
	}

	if c.Planner.GenerationStore != "redis" && c.Planner.GenerationStore != "memory" {
		return fmt.Errorf("unknown PLANNER_GENERATION_STORE %q", c.Planner.GenerationStore)
	}

	return nil
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("LOG_LEVEL", "info")

	vpr.SetDefault("HTTP_PORT", 8080)
	vpr.SetDefault("HTTP_TIMEOUT", "60s")

	vpr.SetDefault("REDIS_ADDR", "localhost:6379")
	vpr.SetDefault("REDIS_TIMEOUT", "3s")

	vpr.SetDefault("FLIGHT_SEARCH_PROVIDER", "serpapi")
	vpr.SetDefault("FLIGHT_SEARCH_API_URL", "https://serpapi.com/search.json")
	vpr.SetDefault("FLIGHT_SEARCH_TIMEOUT", "20s")
	vpr.SetDefault("FLIGHT_SEARCH_MAX_RETRIES", 2)
	vpr.SetDefault("FLIGHT_SEARCH_RATE_LIMIT", 5)

	vpr.SetDefault("LODGING_SEARCH_API_URL", "https://serpapi.com/search.json")
	vpr.SetDefault("LODGING_SEARCH_TIMEOUT", "20s")
	vpr.SetDefault("LODGING_SEARCH_MAX_RETRIES", 2)
	vpr.SetDefault("LODGING_SEARCH_RATE_LIMIT", 5)

	vpr.SetDefault("DISTANCE_API_URL", "https://maps.googleapis.com/maps/api/distancematrix/json")
	vpr.SetDefault("DISTANCE_TIMEOUT", "5s")
	vpr.SetDefault("DISTANCE_RATE_LIMIT", 10)
	vpr.SetDefault("DISTANCE_MAX_CONCURRENCY", 8)

	vpr.SetDefault("PLANNER_SEED_LIMIT", 5)
	vpr.SetDefault("PLANNER_EXPANSION_LIMIT", 3)
	vpr.SetDefault("PLANNER_MAX_IN_FLIGHT", 4)
	vpr.SetDefault("PLANNER_MIN_HOURS_BEFORE_MEETING", 5)
	vpr.SetDefault("PLANNER_CACHE_EXPIRATION", "10m")
	vpr.SetDefault("PLANNER_LOCK_TIMEOUT", "30s")
	vpr.SetDefault("PLANNER_GENERATION_TTL", "24h")
	vpr.SetDefault("PLANNER_GENERATION_STORE", "redis")
}

// bindEnvFromType binds every mapstructure tag of t as an environment
// variable, descending into squashed structs.
func bindEnvFromType(vpr *viper.Viper, t reflect.Type) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" || tag == "-" {
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				bindEnvFromType(vpr, field.Type)
			}
			continue
		}

		parts := strings.Split(tag, ",")
		envVar := parts[0]

		squash := false
		for _, p := range parts[1:] {
			if strings.TrimSpace(p) == "squash" {
				squash = true
				break
			}
		}

		if squash && field.Type.Kind() == reflect.Struct {
			bindEnvFromType(vpr, field.Type)
			continue
		}

		if envVar != "" {
			_ = vpr.BindEnv(envVar)
		}
	}
}
