package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// UpdateCardInput merges a partial patch into an existing card.
type UpdateCardInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
	CardID string                  `json:"card_id"`
	Patch  dashboard.CardPatch     `json:"patch"`
}

// UpdateCardCommand edits card fields in place.
type UpdateCardCommand struct {
	service   LayoutService
	telemetry Telemetry
}

// NewUpdateCardCommand creates the command.
func NewUpdateCardCommand(service LayoutService, telemetry Telemetry) *UpdateCardCommand {
	return &UpdateCardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateCardInput] = (*UpdateCardCommand)(nil)

// Execute applies the patch.
func (c *UpdateCardCommand) Execute(ctx context.Context, msg UpdateCardInput) error {
	if c.service == nil {
		return errors.New("update card command requires service")
	}
	if msg.CardID == "" {
		return errors.New("update card command requires a card id")
	}
	store, err := c.service.Session(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	layout, err := store.UpdateCard(msg.CardID, msg.Patch)
	if err != nil {
		return err
	}
	if err := c.service.NotifyLayoutUpdated(ctx, dashboard.LayoutEvent{
		ScopeKey: layout.ScopeKey,
		CardID:   msg.CardID,
		Reason:   "update",
	}); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "painel.command.update_card", map[string]any{
		"scope_key": layout.ScopeKey,
		"card_id":   msg.CardID,
	})
	return nil
}
