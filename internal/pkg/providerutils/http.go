package providerutils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxErrorBody = 512

// GetJSON performs a GET and decodes a JSON body into out. Status codes are
// mapped onto the provider errors so Do knows what to retry.
func GetJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled or timeout: %w", ctx.Err())
		}
		return ErrProviderInternalError.WithCause(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrProviderRateLimitExceeded
	case resp.StatusCode >= http.StatusInternalServerError:
		return ErrProviderInternalError.WithCause(fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return ErrProviderBadResponse.WithCause(fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ErrProviderBadResponse.WithCause(fmt.Errorf("decode body: %w", err))
	}

	return nil
}
