package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// RemoveCardInput identifies the custom card to delete.
type RemoveCardInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
	CardID string                  `json:"card_id"`
}

// RemoveCardCommand deletes a custom card. System cards are refused by the
// store; callers hide those instead.
type RemoveCardCommand struct {
	service   LayoutService
	telemetry Telemetry
}

// NewRemoveCardCommand creates the command.
func NewRemoveCardCommand(service LayoutService, telemetry Telemetry) *RemoveCardCommand {
	return &RemoveCardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveCardInput] = (*RemoveCardCommand)(nil)

// Execute removes the card from the viewer's session.
func (c *RemoveCardCommand) Execute(ctx context.Context, msg RemoveCardInput) error {
	if c.service == nil {
		return errors.New("remove card command requires service")
	}
	if msg.CardID == "" {
		return errors.New("remove card command requires a card id")
	}
	store, err := c.service.Session(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	layout, err := store.RemoveCard(msg.CardID)
	if err != nil {
		return err
	}
	if err := c.service.NotifyLayoutUpdated(ctx, dashboard.LayoutEvent{
		ScopeKey: layout.ScopeKey,
		CardID:   msg.CardID,
		Reason:   "remove",
	}); err != nil {
		return err
	}
	audit := dashboard.AuditFrom(ctx)
	c.telemetry.Record(ctx, "painel.command.remove_card", map[string]any{
		"scope_key": layout.ScopeKey,
		"card_id":   msg.CardID,
		"actor_id":  audit.ActorID,
	})
	return nil
}
