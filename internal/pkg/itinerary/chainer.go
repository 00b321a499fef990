// Package itinerary turns leg plans into complete priced bundles and judges
// whether each bundle leaves enough time before every meeting.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/flightprovider"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSeedLimit      = 5
	DefaultExpansionLimit = 3
	DefaultMaxInFlight    = 4
)

// Stats describes how much of the search tree a chain explored.
type Stats struct {
	Seeds             int `json:"seeds"`
	ProviderCalls     int `json:"provider_calls"`
	AbandonedBranches int `json:"abandoned_branches"`
}

type ChainResult struct {
	Bundles []dto.ItineraryBundle `json:"bundles"`
	Stats   Stats                 `json:"stats"`
}

// Chainer expands continuation tokens breadth first. The first SeedLimit
// options of leg 0 seed the search, every later expansion keeps at most
// ExpansionLimit options, so a trip of n legs costs at most
// 1 + SeedLimit * (1 + ExpansionLimit + ... + ExpansionLimit^(n-2)) calls.
type Chainer struct {
	Provider       flightprovider.FlightSearchProvider
	SeedLimit      int
	ExpansionLimit int
	MaxInFlight    int
}

func NewChainer(provider flightprovider.FlightSearchProvider, seedLimit, expansionLimit, maxInFlight int) *Chainer {
	if seedLimit <= 0 {
		seedLimit = DefaultSeedLimit
	}
	if expansionLimit <= 0 {
		expansionLimit = DefaultExpansionLimit
	}
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}

	return &Chainer{
		Provider:       provider,
		SeedLimit:      seedLimit,
		ExpansionLimit: expansionLimit,
		MaxInFlight:    maxInFlight,
	}
}

// branch is a partial chain, one chosen option per leg covered so far.
type branch struct {
	legs []dto.BundleLeg
}

func (b branch) last() dto.FlightLegOption {
	return b.legs[len(b.legs)-1].Option
}

func (b branch) extend(leg dto.Leg, option dto.FlightLegOption) branch {
	legs := make([]dto.BundleLeg, len(b.legs), len(b.legs)+1)
	copy(legs, b.legs)

	return branch{legs: append(legs, dto.BundleLeg{Leg: leg, Option: option})}
}

// Chain returns every complete bundle reachable within the limits, in
// parent order then provider order. Failures below the root only drop the
// affected branch.
func (c *Chainer) Chain(ctx context.Context, legs []dto.Leg, prefs dto.Preferences) (ChainResult, error) {
	var result ChainResult

	if len(legs) == 0 {
		return result, ErrNoFlightsFound.WithMessage("trip has no legs to search")
	}

	options, err := c.Provider.Search(ctx, legs, prefs)
	result.Stats.ProviderCalls++
	if err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("search first leg: %w", ctx.Err())
		}
		return result, ErrFlightProviderUnavailable.WithCause(err)
	}

	if len(options) == 0 {
		return result, ErrNoFlightsFound
	}

	seeds := options[:min(len(options), c.SeedLimit)]
	result.Stats.Seeds = len(seeds)

	frontier := make([]branch, len(seeds))
	for i, seed := range seeds {
		frontier[i] = branch{}.extend(legs[0], seed)
	}

	for depth := 1; depth < len(legs) && len(frontier) > 0; depth++ {
		expansions, err := c.expandLevel(ctx, frontier, legs, depth, prefs)
		if err != nil {
			return result, err
		}

		next := make([]branch, 0, len(frontier)*c.ExpansionLimit)
		for i, parent := range frontier {
			if parent.last().ContinuationToken != "" {
				result.Stats.ProviderCalls++
			}

			if len(expansions[i]) == 0 {
				result.Stats.AbandonedBranches++
				continue
			}

			for _, option := range expansions[i] {
				next = append(next, parent.extend(legs[depth], option))
			}
		}

		frontier = next
	}

	result.Bundles = make([]dto.ItineraryBundle, 0, len(frontier))
	for _, b := range frontier {
		if len(b.legs) != len(legs) {
			continue
		}

		result.Bundles = append(result.Bundles, dto.ItineraryBundle{
			Legs:       b.legs,
			TotalPrice: b.last().Price,
		})
	}

	if len(result.Bundles) == 0 {
		return result, ErrNoCompleteItineraries
	}

	return result, nil
}

// expandLevel requests the options of legs[depth] for every branch of the
// frontier concurrently. The slot of an abandoned branch is left empty.
func (c *Chainer) expandLevel(ctx context.Context, frontier []branch, legs []dto.Leg, depth int,
	prefs dto.Preferences) ([][]dto.FlightLegOption, error) {
	expansions := make([][]dto.FlightLegOption, len(frontier))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.MaxInFlight)

	for i, parent := range frontier {
		g.Go(func() error {
			options, err := c.expand(gctx, parent, legs, depth, prefs)
			if errors.Is(err, errBranchAbandoned) {
				slog.WarnContext(gctx, "itinerary branch abandoned",
					slog.Int("leg", depth), slog.Int("branch", i), slog.String("reason", err.Error()))
				return nil
			}
			if err != nil {
				return err
			}

			expansions[i] = options
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("expand leg %d: %w", depth, err)
	}

	return expansions, nil
}

func (c *Chainer) expand(ctx context.Context, parent branch, legs []dto.Leg, depth int,
	prefs dto.Preferences) ([]dto.FlightLegOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	token := parent.last().ContinuationToken
	if token == "" {
		return nil, fmt.Errorf("%w: leg %d option has no continuation token", errBranchAbandoned, depth-1)
	}

	options, err := c.Provider.Continue(ctx, token, legs[depth:], prefs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", errBranchAbandoned, err)
	}

	if len(options) == 0 {
		return nil, fmt.Errorf("%w: no options for leg %d", errBranchAbandoned, depth)
	}

	return options[:min(len(options), c.ExpansionLimit)], nil
}
