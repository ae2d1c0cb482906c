package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// SetEditModeInput toggles edit mode for the viewer's session.
type SetEditModeInput struct {
	Viewer  dashboard.ViewerContext `json:"viewer"`
	Enabled bool                    `json:"enabled"`
}

// SetEditModeCommand flips the mutation gate on the viewer's layout store.
type SetEditModeCommand struct {
	service   LayoutService
	telemetry Telemetry
}

// NewSetEditModeCommand creates the command.
func NewSetEditModeCommand(service LayoutService, telemetry Telemetry) *SetEditModeCommand {
	return &SetEditModeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetEditModeInput] = (*SetEditModeCommand)(nil)

// Execute toggles edit mode.
func (c *SetEditModeCommand) Execute(ctx context.Context, msg SetEditModeInput) error {
	if c.service == nil {
		return errors.New("edit mode command requires service")
	}
	store, err := c.service.Session(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	store.SetEditMode(msg.Enabled)
	c.telemetry.Record(ctx, "painel.command.edit_mode", map[string]any{
		"scope_key": msg.Viewer.ScopeKey(),
		"enabled":   msg.Enabled,
	})
	return nil
}
