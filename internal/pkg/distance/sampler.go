package distance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
)

const DefaultMaxConcurrency = 8

type SampleStats struct {
	Lookups  int
	Failures int
}

// Sampler measures every candidate from one origin by car and on foot.
type Sampler struct {
	Provider       Provider
	MaxConcurrency int
}

func NewSampler(provider Provider, maxConcurrency int) *Sampler {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}

	return &Sampler{
		Provider:       provider,
		MaxConcurrency: maxConcurrency,
	}
}

// Sample issues all lookups concurrently and returns one sample per
// candidate, aligned by index. A failed lookup leaves its value nil and
// never stops the others. Once ctx is done no further lookups are issued
// and the remaining samples stay empty.
func (s *Sampler) Sample(ctx context.Context, origin string,
	candidates []dto.LodgingCandidate) ([]dto.DistanceSample, SampleStats) {
	samples := make([]dto.DistanceSample, len(candidates))
	modes := []Mode{ModeDriving, ModeWalking}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		stats     SampleStats
		semaphore = make(chan struct{}, s.MaxConcurrency)
	)

issue:
	for i, candidate := range candidates {
		destination := Destination(candidate)
		if destination == "" {
			continue
		}

		for _, mode := range modes {
			if !acquire(ctx, semaphore) {
				break issue
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-semaphore }()

				result, err := s.Provider.Distance(ctx, origin, destination, mode)

				mu.Lock()
				defer mu.Unlock()

				stats.Lookups++
				if err != nil {
					stats.Failures++
					slog.WarnContext(ctx, "distance lookup failed",
						slog.String("candidate", candidate.Name), slog.String("mode", string(mode)),
						slog.String("error", err.Error()))
					return
				}

				meters := result.DistanceMeters
				switch mode {
				case ModeDriving:
					samples[i].DrivingDistanceMeters = &meters
					samples[i].DrivingText = result.DistanceText
				case ModeWalking:
					samples[i].WalkingDistanceMeters = &meters
					samples[i].WalkingText = result.DistanceText
				}
			}()
		}
	}

	wg.Wait()

	return samples, stats
}

// acquire takes a semaphore slot unless ctx is done first.
func acquire(ctx context.Context, semaphore chan struct{}) bool {
	if ctx.Err() != nil {
		return false
	}

	select {
	case semaphore <- struct{}{}:
	case <-ctx.Done():
		return false
	}

	// both cases can be ready at once
	if ctx.Err() != nil {
		<-semaphore
		return false
	}

	return true
}

// Destination prefers coordinates over the address of a candidate.
func Destination(candidate dto.LodgingCandidate) string {
	if candidate.Coordinates != nil {
		return fmt.Sprintf("%f,%f", candidate.Coordinates.Latitude, candidate.Coordinates.Longitude)
	}

	if candidate.Address != "" {
		return candidate.Name + ", " + candidate.Address
	}

	return ""
}
