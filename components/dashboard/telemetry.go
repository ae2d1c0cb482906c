package dashboard

import "context"

// Telemetry receives the named product events the service emits
// (painel.layout.*, painel.card.*). Implementations must be safe for
// concurrent use; Record should never block layout mutations.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// discardTelemetry drops every event.
type discardTelemetry struct{}

func (discardTelemetry) Record(context.Context, string, map[string]any) {}

// normalizeTelemetry substitutes a discard sink for nil so call sites
// never nil-check.
func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return discardTelemetry{}
	}
	return t
}
