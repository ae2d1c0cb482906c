package dashboard

import (
	"context"
	"fmt"
	"io"
)

// ControllerOptions wires the server-rendered dashboard surface.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
}

// Controller turns resolved cards into server-side HTML.
type Controller struct {
	service  *Service
	renderer Renderer
}

// NewController builds a controller; the renderer defaults to the embedded
// templates.
func NewController(opts ControllerOptions) (*Controller, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("dashboard: controller requires a service")
	}
	renderer := opts.Renderer
	if renderer == nil {
		var err error
		renderer, err = NewTemplateRenderer()
		if err != nil {
			return nil, err
		}
	}
	return &Controller{
		service:  opts.Service,
		renderer: renderer,
	}, nil
}

// LayoutPayload is the template context for the dashboard page.
type LayoutPayload struct {
	ViewType ViewType
	EditMode bool
	Dirty    bool
	Cards    []map[string]any
}

// Payload resolves the viewer's cards into a template-ready payload.
func (c *Controller) Payload(ctx context.Context, viewer ViewerContext) (LayoutPayload, error) {
	store, err := c.service.Session(ctx, viewer)
	if err != nil {
		return LayoutPayload{}, err
	}
	resolved, err := c.service.ResolveCards(ctx, viewer)
	if err != nil {
		return LayoutPayload{}, err
	}

	snapshot := store.Snapshot()
	payload := LayoutPayload{
		ViewType: snapshot.ViewType,
		EditMode: snapshot.EditMode,
		Dirty:    store.IsDirty(),
		Cards:    make([]map[string]any, 0, len(resolved)),
	}
	for _, item := range resolved {
		entry := map[string]any{
			"id":           item.Card.ID,
			"type":         string(item.Card.Type),
			"title":        item.Card.Title,
			"subtitle":     item.Card.Subtitle,
			"path":         item.Card.Path,
			"icon":         IconGlyph(item.Card.IconID),
			"width_class":  item.WidthClass,
			"height_class": item.HeightClass,
			"style":        item.Palette.CSSVariablesInline(),
		}
		if item.Badge != nil {
			entry["badge"] = *item.Badge
		}
		for key, value := range item.Data {
			if _, exists := entry[key]; !exists {
				entry[key] = value
			}
		}
		payload.Cards = append(payload.Cards, entry)
	}
	return payload, nil
}

// RenderTemplate writes the dashboard page HTML for the viewer.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	payload, err := c.Payload(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render("dashboard", map[string]any{
		"view_type": string(payload.ViewType),
		"edit_mode": payload.EditMode,
		"dirty":     payload.Dirty,
		"cards":     payload.Cards,
	}, out)
	return err
}
