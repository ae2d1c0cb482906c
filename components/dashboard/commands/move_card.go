package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// MoveCardInput reorders a card to a target index. Out-of-range targets are
// clamped by the store.
type MoveCardInput struct {
	Viewer  dashboard.ViewerContext `json:"viewer"`
	CardID  string                  `json:"card_id"`
	ToIndex int                     `json:"to_index"`
}

// MoveCardCommand reorders cards within the viewer's layout.
type MoveCardCommand struct {
	service   LayoutService
	telemetry Telemetry
}

// NewMoveCardCommand creates the command.
func NewMoveCardCommand(service LayoutService, telemetry Telemetry) *MoveCardCommand {
	return &MoveCardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MoveCardInput] = (*MoveCardCommand)(nil)

// Execute moves the card.
func (c *MoveCardCommand) Execute(ctx context.Context, msg MoveCardInput) error {
	if c.service == nil {
		return errors.New("move card command requires service")
	}
	if msg.CardID == "" {
		return errors.New("move card command requires a card id")
	}
	store, err := c.service.Session(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	layout, err := store.MoveCard(msg.CardID, msg.ToIndex)
	if err != nil {
		return err
	}
	if err := c.service.NotifyLayoutUpdated(ctx, dashboard.LayoutEvent{
		ScopeKey: layout.ScopeKey,
		CardID:   msg.CardID,
		Reason:   "move",
	}); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "painel.command.move_card", map[string]any{
		"scope_key": layout.ScopeKey,
		"card_id":   msg.CardID,
		"to_index":  msg.ToIndex,
	})
	return nil
}
