package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
)

type contextKey string

const (
	RequestIDKey        contextKey = "request_id"
	SearchGenerationKey contextKey = "search_generation"
)

// generationAttr is what WithGeneration stores under SearchGenerationKey.
type generationAttr struct {
	scope string
	value int64
}

// WithGeneration tags every record logged with ctx with the search it belongs to.
func WithGeneration(ctx context.Context, scope string, value int64) context.Context {
	return context.WithValue(ctx, SearchGenerationKey, generationAttr{scope: scope, value: value})
}

// StackTraceHandler adds request and search attributes from the context and
// a stack trace to error records.
type StackTraceHandler struct {
	slog.Handler
}

func (h *StackTraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
			r.AddAttrs(slog.String("request_id", reqID))
		}

		if gen, ok := ctx.Value(SearchGenerationKey).(generationAttr); ok {
			r.AddAttrs(slog.Group("search_generation",
				slog.String("scope", gen.scope), slog.Int64("value", gen.value)))
		}
	}

	if r.Level >= slog.LevelError {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		r.AddAttrs(slog.String("stack_trace", string(buf[:n])))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *StackTraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StackTraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *StackTraceHandler) WithGroup(name string) slog.Handler {
	return &StackTraceHandler{Handler: h.Handler.WithGroup(name)}
}

// NewLogger builds the JSON logger used across the service.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if level.Level() == slog.LevelDebug {
		opts.AddSource = true
	}

	return slog.New(&StackTraceHandler{Handler: slog.NewJSONHandler(w, opts)})
}

// InitStructuredLogger initialize structured logger
func InitStructuredLogger(level slog.Leveler) {
	slog.SetDefault(NewLogger(os.Stdout, level))
}
