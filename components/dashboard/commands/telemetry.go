package commands

import "context"

// Telemetry mirrors the dashboard package's sink so commands can emit
// events without importing it.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type discardTelemetry struct{}

func (discardTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return discardTelemetry{}
	}
	return t
}
