package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// HideCardInput toggles visibility of a card. Restore brings a hidden card
// back instead of hiding it.
type HideCardInput struct {
	Viewer  dashboard.ViewerContext `json:"viewer"`
	CardID  string                  `json:"card_id"`
	Restore bool                    `json:"restore"`
}

// HideCardCommand flags a card hidden (or visible again) without removing it
// from the stored configuration.
type HideCardCommand struct {
	service   LayoutService
	telemetry Telemetry
}

// NewHideCardCommand creates the command.
func NewHideCardCommand(service LayoutService, telemetry Telemetry) *HideCardCommand {
	return &HideCardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[HideCardInput] = (*HideCardCommand)(nil)

// Execute hides or restores the card.
func (c *HideCardCommand) Execute(ctx context.Context, msg HideCardInput) error {
	if c.service == nil {
		return errors.New("hide card command requires service")
	}
	if msg.CardID == "" {
		return errors.New("hide card command requires a card id")
	}
	store, err := c.service.Session(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	var layout dashboard.Layout
	reason := "hide"
	if msg.Restore {
		layout, err = store.RestoreCard(msg.CardID)
		reason = "restore"
	} else {
		layout, err = store.HideCard(msg.CardID)
	}
	if err != nil {
		return err
	}
	if err := c.service.NotifyLayoutUpdated(ctx, dashboard.LayoutEvent{
		ScopeKey: layout.ScopeKey,
		CardID:   msg.CardID,
		Reason:   reason,
	}); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "painel.command.hide_card", map[string]any{
		"scope_key": layout.ScopeKey,
		"card_id":   msg.CardID,
		"restore":   msg.Restore,
	})
	return nil
}
