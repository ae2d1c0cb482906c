package commands

import (
	"context"

	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// LayoutService is the slice of the dashboard service commands need:
// session access plus event fan-out. Transports wire the concrete service.
type LayoutService interface {
	Session(ctx context.Context, viewer dashboard.ViewerContext) (*dashboard.Store, error)
	Save(ctx context.Context, viewer dashboard.ViewerContext) error
	NotifyLayoutUpdated(ctx context.Context, event dashboard.LayoutEvent) error
}
