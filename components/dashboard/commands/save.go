package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// SaveLayoutInput persists the viewer's session to the config store.
type SaveLayoutInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
}

// SaveLayoutCommand writes the current layout through the service.
type SaveLayoutCommand struct {
	service   LayoutService
	telemetry Telemetry
}

// NewSaveLayoutCommand creates the command.
func NewSaveLayoutCommand(service LayoutService, telemetry Telemetry) *SaveLayoutCommand {
	return &SaveLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveLayoutInput] = (*SaveLayoutCommand)(nil)

// Execute persists the layout.
func (c *SaveLayoutCommand) Execute(ctx context.Context, msg SaveLayoutInput) error {
	if c.service == nil {
		return errors.New("save command requires service")
	}
	if err := c.service.Save(ctx, msg.Viewer); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "painel.command.save", map[string]any{
		"scope_key": msg.Viewer.ScopeKey(),
	})
	return nil
}
