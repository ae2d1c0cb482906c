package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// AddCardInput captures the data required to add a custom card.
type AddCardInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
	Card   dashboard.Card          `json:"card"`
}

// AddCardCommand appends a custom card to the viewer's layout and emits a
// refresh event so connected clients update.
type AddCardCommand struct {
	service   LayoutService
	telemetry Telemetry
}

// NewAddCardCommand creates the command.
func NewAddCardCommand(service LayoutService, telemetry Telemetry) *AddCardCommand {
	return &AddCardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddCardInput] = (*AddCardCommand)(nil)

// Execute adds the card to the viewer's session.
func (c *AddCardCommand) Execute(ctx context.Context, msg AddCardInput) error {
	if c.service == nil {
		return errors.New("add card command requires service")
	}
	store, err := c.service.Session(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	layout, err := store.AddCard(msg.Card)
	if err != nil {
		return err
	}
	added := layout.Cards[len(layout.Cards)-1]
	if err := c.service.NotifyLayoutUpdated(ctx, dashboard.LayoutEvent{
		ScopeKey: layout.ScopeKey,
		CardID:   added.ID,
		Reason:   "add",
	}); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "painel.command.add_card", map[string]any{
		"scope_key": layout.ScopeKey,
		"card_type": string(added.Type),
	})
	return nil
}
