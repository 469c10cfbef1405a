package dashboard

import (
	"context"
	"log/slog"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// SlogTelemetry writes telemetry events through a structured logger.
type SlogTelemetry struct {
	Logger *slog.Logger
}

// NewSlogTelemetry builds telemetry over the given logger, defaulting to
// slog.Default.
func NewSlogTelemetry(logger *slog.Logger) *SlogTelemetry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTelemetry{Logger: logger}
}

// Record logs the event with its payload as attributes.
func (t *SlogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	attrs := make([]any, 0, len(payload)*2)
	for key, value := range payload {
		attrs = append(attrs, key, value)
	}
	t.Logger.InfoContext(ctx, event, attrs...)
}
