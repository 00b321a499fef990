//go:build unit

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackTraceHandler_Closure(t *testing.T) {
	handleRequest := func(ctx context.Context, level slog.Level, check func(t *testing.T, record map[string]any)) func(t *testing.T) {
		return func(t *testing.T) {
			var buf bytes.Buffer
			log := NewLogger(&buf, slog.LevelInfo)

			log.Log(ctx, level, "searching")

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			check(t, record)
		}
	}

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = WithGeneration(ctx, "itinerary:s1", 4)

	t.Run("context_attributes", handleRequest(ctx, slog.LevelInfo, func(t *testing.T, record map[string]any) {
		assert.Equal(t, "req-1", record["request_id"])
		assert.Equal(t, map[string]any{"scope": "itinerary:s1", "value": float64(4)}, record["search_generation"])
		assert.NotContains(t, record, "stack_trace")
	}))

	t.Run("error_has_stack", handleRequest(context.Background(), slog.LevelError, func(t *testing.T, record map[string]any) {
		assert.NotContains(t, record, "request_id")
		assert.Contains(t, record, "stack_trace")
	}))
}
