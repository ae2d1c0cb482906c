package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// ResetLayoutInput restores the department default card set.
type ResetLayoutInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
}

// ResetLayoutCommand replaces the viewer's cards with the defaults for their
// department. The reset only touches the live session; the viewer still saves
// explicitly.
type ResetLayoutCommand struct {
	service   LayoutService
	telemetry Telemetry
}

// NewResetLayoutCommand creates the command.
func NewResetLayoutCommand(service LayoutService, telemetry Telemetry) *ResetLayoutCommand {
	return &ResetLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetLayoutInput] = (*ResetLayoutCommand)(nil)

// Execute resets the session to defaults.
func (c *ResetLayoutCommand) Execute(ctx context.Context, msg ResetLayoutInput) error {
	if c.service == nil {
		return errors.New("reset command requires service")
	}
	store, err := c.service.Session(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	layout, err := store.ResetToDefaults(msg.Viewer.Department)
	if err != nil {
		return err
	}
	if err := c.service.NotifyLayoutUpdated(ctx, dashboard.LayoutEvent{
		ScopeKey: layout.ScopeKey,
		Reason:   "reset",
	}); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "painel.command.reset", map[string]any{
		"scope_key": layout.ScopeKey,
		"cards":     len(layout.Cards),
	})
	return nil
}
