package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// RefreshLayoutInput wraps a layout event for fan-out.
type RefreshLayoutInput struct {
	Event dashboard.LayoutEvent `json:"event"`
}

// RefreshLayoutCommand pushes a layout event through the refresh hooks.
type RefreshLayoutCommand struct {
	service   LayoutService
	telemetry Telemetry
}

// NewRefreshLayoutCommand creates the command.
func NewRefreshLayoutCommand(service LayoutService, telemetry Telemetry) *RefreshLayoutCommand {
	return &RefreshLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshLayoutInput] = (*RefreshLayoutCommand)(nil)

// Execute broadcasts the event.
func (c *RefreshLayoutCommand) Execute(ctx context.Context, msg RefreshLayoutInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if err := c.service.NotifyLayoutUpdated(ctx, msg.Event); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "painel.command.refresh", map[string]any{
		"scope_key": msg.Event.ScopeKey,
		"reason":    msg.Event.Reason,
	})
	return nil
}
