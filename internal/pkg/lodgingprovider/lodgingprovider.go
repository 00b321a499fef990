package lodgingprovider

import (
	"context"
	"net/http"
	"time"

	"github.com/ijalalfrz/business-trip-planner/internal/app/dto"
	"github.com/ijalalfrz/business-trip-planner/internal/pkg/providerutils"
)

type LodgingProviderConfig struct {
	SearchAPIURL string
	APIKey       string
	Timeout      time.Duration
	MaxRetries   int
	RateLimitRPS int
	Limiter      providerutils.RateLimiter
	HTTPClient   *http.Client
}

// LodgingProvider returns the lodging offers of one city for a stay.
type LodgingProvider interface {
	Search(ctx context.Context, query dto.LodgingQuery) ([]dto.LodgingCandidate, error)
}
