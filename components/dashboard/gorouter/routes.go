package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	dashboard "github.com/goliatone/go-painel/components/dashboard"
	"github.com/goliatone/go-painel/components/dashboard/commands"
	"github.com/goliatone/go-painel/components/dashboard/httpapi"
	"github.com/goliatone/go-painel/components/dashboard/queries"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the dashboard controller, API, and hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML      string
	Layout    string
	Cards     string
	CardID    string
	CardHide  string
	Move      string
	EditMode  string
	Save      string
	Reset     string
	Export    string
	Import    string
	WebSocket string
}

// Register mounts dashboard routes (HTML, JSON, REST, WebSocket) on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/app"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), viewer, &buf); err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		payload, err := cfg.Controller.Payload(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, viewerResolver, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

// auditedViewer resolves the viewer and stamps the request context with
// audit metadata so telemetry can attribute mutations to an actor.
func auditedViewer(ctx router.Context, resolver ViewerResolver) (context.Context, dashboard.ViewerContext) {
	viewer := resolver(ctx)
	return dashboard.ContextWithAudit(ctx.Context(), dashboard.AuditContext{
		ActorID:    viewer.UserID,
		UserID:     viewer.UserID,
		Department: viewer.Department,
	}), viewer
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.EditMode, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatusError(ctx, http.StatusBadRequest, err)
		}
		reqCtx, viewer := auditedViewer(ctx, resolver)
		if err := api.SetEditMode(reqCtx, commands.SetEditModeInput{
			Viewer:  viewer,
			Enabled: payload.Enabled,
		}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))

	r.Post(routes.Cards, router.WrapHandler(func(ctx router.Context) error {
		var payload dashboard.Card
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatusError(ctx, http.StatusBadRequest, err)
		}
		reqCtx, viewer := auditedViewer(ctx, resolver)
		if err := api.AddCard(reqCtx, commands.AddCardInput{
			Viewer: viewer,
			Card:   payload,
		}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.CardID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondStatusError(ctx, http.StatusBadRequest, errors.New("card id is required"))
		}
		reqCtx, viewer := auditedViewer(ctx, resolver)
		if err := api.RemoveCard(reqCtx, commands.RemoveCardInput{
			Viewer: viewer,
			CardID: id,
		}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.CardHide, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondStatusError(ctx, http.StatusBadRequest, errors.New("card id is required"))
		}
		var payload struct {
			Restore bool `json:"restore"`
		}
		if body := ctx.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return respondStatusError(ctx, http.StatusBadRequest, err)
			}
		}
		reqCtx, viewer := auditedViewer(ctx, resolver)
		if err := api.HideCard(reqCtx, commands.HideCardInput{
			Viewer:  viewer,
			CardID:  id,
			Restore: payload.Restore,
		}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))

	r.Patch(routes.CardID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondStatusError(ctx, http.StatusBadRequest, errors.New("card id is required"))
		}
		var patch dashboard.CardPatch
		if err := json.Unmarshal(ctx.Body(), &patch); err != nil {
			return respondStatusError(ctx, http.StatusBadRequest, err)
		}
		reqCtx, viewer := auditedViewer(ctx, resolver)
		if err := api.UpdateCard(reqCtx, commands.UpdateCardInput{
			Viewer: viewer,
			CardID: id,
			Patch:  patch,
		}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Post(routes.Move, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			CardID  string `json:"card_id"`
			ToIndex int    `json:"to_index"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatusError(ctx, http.StatusBadRequest, err)
		}
		reqCtx, viewer := auditedViewer(ctx, resolver)
		if err := api.MoveCard(reqCtx, commands.MoveCardInput{
			Viewer:  viewer,
			CardID:  payload.CardID,
			ToIndex: payload.ToIndex,
		}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "moved"})
	}))

	r.Post(routes.Save, router.WrapHandler(func(ctx router.Context) error {
		reqCtx, viewer := auditedViewer(ctx, resolver)
		if err := api.SaveLayout(reqCtx, commands.SaveLayoutInput{Viewer: viewer}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Reset, router.WrapHandler(func(ctx router.Context) error {
		reqCtx, viewer := auditedViewer(ctx, resolver)
		if err := api.ResetLayout(reqCtx, commands.ResetLayoutInput{Viewer: viewer}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reset"})
	}))

	r.Get(routes.Export, router.WrapHandler(func(ctx router.Context) error {
		data, err := api.Export(ctx.Context(), resolver(ctx))
		if err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "application/json")
		ctx.SetHeader("Content-Disposition", `attachment; filename="painel-config.json"`)
		return ctx.Send(data)
	}))

	r.Post(routes.Import, router.WrapHandler(func(ctx router.Context) error {
		reqCtx, viewer := auditedViewer(ctx, resolver)
		result, err := api.Import(reqCtx, queries.ImportInput{
			Viewer: viewer,
			Data:   ctx.Body(),
		})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if v, ok := ctx.Locals("department").(string); ok {
		viewer.Department = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Param("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrNotDeletable):
		return http.StatusForbidden
	case errors.Is(err, dashboard.ErrEditModeRequired):
		return http.StatusConflict
	case errors.Is(err, dashboard.ErrInvalidCard),
		errors.Is(err, dashboard.ErrMalformedJSON),
		errors.Is(err, dashboard.ErrSchema):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx router.Context, err error) error {
	return respondStatusError(ctx, statusForError(err), err)
}

func respondStatusError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/painel"
	}
	if routes.Layout == "" {
		routes.Layout = "/painel/_layout"
	}
	if routes.Cards == "" {
		routes.Cards = "/painel/cards"
	}
	if routes.CardID == "" {
		routes.CardID = "/painel/cards/:id"
	}
	if routes.CardHide == "" {
		routes.CardHide = "/painel/cards/:id/hide"
	}
	if routes.Move == "" {
		routes.Move = "/painel/cards/move"
	}
	if routes.EditMode == "" {
		routes.EditMode = "/painel/edit-mode"
	}
	if routes.Save == "" {
		routes.Save = "/painel/save"
	}
	if routes.Reset == "" {
		routes.Reset = "/painel/reset"
	}
	if routes.Export == "" {
		routes.Export = "/painel/export"
	}
	if routes.Import == "" {
		routes.Import = "/painel/import"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/painel/ws"
	}
	return routes
}
