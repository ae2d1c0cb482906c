package dashboard

import (
	"context"

	"go.uber.org/zap"
)

// ZapTelemetry emits dashboard events through a zap logger.
type ZapTelemetry struct {
	logger *zap.Logger
}

// NewZapTelemetry wraps a zap logger; a nil logger uses zap.NewNop.
func NewZapTelemetry(logger *zap.Logger) *ZapTelemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTelemetry{logger: logger}
}

// Record logs the event with its payload as structured fields.
func (t *ZapTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	fields := make([]zap.Field, 0, len(payload))
	for key, value := range payload {
		fields = append(fields, zap.Any(key, value))
	}
	t.logger.Info(event, fields...)
}
