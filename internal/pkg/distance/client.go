// Package distance looks up travel distances between a meeting address and
// lodging candidates.
package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ijalalfrz/business-trip-planner/internal/pkg/providerutils"
	"golang.org/x/time/rate"
)

type Mode string

const (
	ModeDriving Mode = "driving"
	ModeWalking Mode = "walking"
)

const (
	DefaultRateLimit = 10
	statusOK         = "OK"
)

// ErrDistanceUnavailable means a lookup gave no usable distance. Rankers
// treat it as an unknown distance.
var ErrDistanceUnavailable = errors.New("distance unavailable")

type Result struct {
	DistanceText    string
	DurationText    string
	DistanceMeters  float64
	DurationSeconds float64
}

type Provider interface {
	Distance(ctx context.Context, origin, destination string, mode Mode) (Result, error)
}

type ClientConfig struct {
	APIURL     string
	APIKey     string
	Timeout    time.Duration
	RateLimit  int
	HTTPClient *http.Client
}

// Client calls a distance matrix style API with one origin and one
// destination per request.
type Client struct {
	apiURL     string
	apiKey     string
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
}

func NewClient(config ClientConfig) *Client {
	requestsPerSecond := config.RateLimit
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRateLimit
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &Client{
		apiURL:     config.APIURL,
		apiKey:     config.APIKey,
		timeout:    config.Timeout,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		httpClient: client,
	}
}

type matrixResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	Rows         []matrixRow `json:"rows"`
}

type matrixRow struct {
	Elements []matrixElement `json:"elements"`
}

type matrixElement struct {
	Status   string      `json:"status"`
	Distance matrixValue `json:"distance"`
	Duration matrixValue `json:"duration"`
}

type matrixValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

func (c *Client) Distance(ctx context.Context, origin, destination string, mode Mode) (Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limiter wait: %w", err)
	}

	params := url.Values{}
	params.Set("origins", origin)
	params.Set("destinations", destination)
	params.Set("mode", string(mode))
	params.Set("units", "metric")
	params.Set("key", c.apiKey)

	var response matrixResponse
	if err := providerutils.GetJSON(ctx, c.httpClient, c.apiURL+"?"+params.Encode(), &response); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrDistanceUnavailable, err)
	}

	if response.Status != statusOK {
		return Result{}, fmt.Errorf("%w: status %s %s", ErrDistanceUnavailable, response.Status, response.ErrorMessage)
	}

	if len(response.Rows) == 0 || len(response.Rows[0].Elements) == 0 {
		return Result{}, fmt.Errorf("%w: empty matrix", ErrDistanceUnavailable)
	}

	element := response.Rows[0].Elements[0]
	if element.Status != statusOK {
		return Result{}, fmt.Errorf("%w: element status %s", ErrDistanceUnavailable, element.Status)
	}

	return Result{
		DistanceText:    element.Distance.Text,
		DurationText:    element.Duration.Text,
		DistanceMeters:  element.Distance.Value,
		DurationSeconds: element.Duration.Value,
	}, nil
}
