package gorouter

import (
	"net/http"
	"testing"

	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{})
	if routes.HTML != "/painel" {
		t.Fatalf("unexpected html route %q", routes.HTML)
	}
	if routes.CardHide != "/painel/cards/:id/hide" {
		t.Fatalf("unexpected hide route %q", routes.CardHide)
	}
	if routes.WebSocket != "/painel/ws" {
		t.Fatalf("unexpected websocket route %q", routes.WebSocket)
	}

	custom := defaultRouteConfig(RouteConfig{HTML: "/inicio"})
	if custom.HTML != "/inicio" {
		t.Fatalf("expected custom html route, got %q", custom.HTML)
	}
	if custom.Layout != "/painel/_layout" {
		t.Fatalf("expected default layout route, got %q", custom.Layout)
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"pt-BR,pt;q=0.9,en;q=0.8", "pt-br"},
		{"en-US", "en-us"},
		{" , es ", "es"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := parseAcceptLanguage(tc.header); got != tc.want {
			t.Fatalf("parseAcceptLanguage(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{dashboard.ErrNotFound, http.StatusNotFound},
		{dashboard.ErrNotDeletable, http.StatusForbidden},
		{dashboard.ErrEditModeRequired, http.StatusConflict},
		{dashboard.ErrMalformedJSON, http.StatusBadRequest},
		{dashboard.ErrSchema, http.StatusBadRequest},
		{dashboard.ErrPersistence, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusForError(tc.err); got != tc.want {
			t.Fatalf("statusForError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
