package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/flightprovider"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/providerutils"
)

const ProviderName = "fixture"

// File is the on disk shape of a fixture: the options of the first leg and
// the options returned for each continuation token.
type File struct {
	Search        []dto.FlightLegOption            `json:"search"`
	Continuations map[string][]dto.FlightLegOption `json:"continuations"`
}

// Provider replays recorded flight search results from a local file.
// It is used for local runs and load tests where no API key is available.
type Provider struct {
	Name     string
	Path     string
	MaxDelay time.Duration
	Policy   providerutils.Policy
}

func NewProvider(config flightprovider.FlightProviderConfig) *Provider {
	return &Provider{
		Name: ProviderName,
		Path: config.FixtureFile,
		Policy: providerutils.Policy{
			Name:         ProviderName,
			Timeout:      config.Timeout,
			MaxRetries:   config.MaxRetries,
			RateLimitRPS: config.RateLimitRPS,
			Limiter:      config.Limiter,
		},
	}
}

func (p *Provider) Search(ctx context.Context, _ []dto.Leg, prefs dto.Preferences) ([]dto.FlightLegOption, error) {
	var options []dto.FlightLegOption

	err := providerutils.Do(ctx, p.Policy, func(ctx context.Context) error {
		file, err := p.load(ctx)
		if err != nil {
			return err
		}

		options = file.Search
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fixture flight search: %w", err)
	}

	return providerutils.FilterLegOptions(options, prefs), nil
}

// Continue returns no options for a token the fixture does not know, the
// same way the live API answers an expired token.
func (p *Provider) Continue(ctx context.Context, token string, _ []dto.Leg,
	prefs dto.Preferences) ([]dto.FlightLegOption, error) {
	var options []dto.FlightLegOption

	err := providerutils.Do(ctx, p.Policy, func(ctx context.Context) error {
		file, err := p.load(ctx)
		if err != nil {
			return err
		}

		options = file.Continuations[token]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fixture flight continue: %w", err)
	}

	return providerutils.FilterLegOptions(options, prefs), nil
}

func (p *Provider) load(ctx context.Context) (File, error) {
	if p.MaxDelay > 0 {
		// simulate network latency
		delay := time.Duration(rand.Int63n(int64(p.MaxDelay)))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return File{}, fmt.Errorf("context cancelled or timeout: %w", ctx.Err())
		}
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to unmarshal fixture file: %w", err)
	}

	return file, nil
}
