// Package generation suppresses stale search results. Every search takes a
// new generation for its scope before calling providers, and its result is
// only applied when that generation is still the current one.
package generation

import (
	"context"
	"fmt"
	"sync"
)

// Generation identifies one search within a scope such as a user session.
type Generation struct {
	Scope string `json:"scope"`
	Value int64  `json:"value"`
}

type Tracker interface {
	// Next advances scope and returns the new current generation.
	Next(ctx context.Context, scope string) (Generation, error)
	// IsCurrent reports whether gen has not been superseded.
	IsCurrent(ctx context.Context, gen Generation) (bool, error)
}

func ItineraryScope(sessionID string) string {
	return fmt.Sprintf("itinerary:%s", sessionID)
}

func LodgingScope(sessionID, city string) string {
	return fmt.Sprintf("lodging:%s:%s", sessionID, city)
}

// MemoryTracker keeps generations in process.
type MemoryTracker struct {
	mu      sync.Mutex
	current map[string]int64
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{
		current: make(map[string]int64),
	}
}

func (t *MemoryTracker) Next(_ context.Context, scope string) (Generation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current[scope]++

	return Generation{Scope: scope, Value: t.current[scope]}, nil
}

func (t *MemoryTracker) IsCurrent(_ context.Context, gen Generation) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current[gen.Scope] == gen.Value, nil
}
