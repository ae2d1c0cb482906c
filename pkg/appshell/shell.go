package appshell

import (
	"context"
	"errors"

	dashboardpkg "github.com/goliatone/go-painel/pkg/dashboard"
)

// MenuBuilder ensures painel entries exist within the host application menu.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures painel link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the painel service + feature flags into a host app shell.
type Config struct {
	EnablePainel    bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *dashboardpkg.Service
	DefaultMenuItem MenuItem
}

// Shell exposes helpers for applications embedding the painel.
type Shell struct {
	cfg Config
}

// New creates a Shell helper that can seed painel menus.
func New(cfg Config) (*Shell, error) {
	if cfg.EnablePainel && cfg.Service == nil {
		return nil, errors.New("appshell: painel service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "app.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Painel"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "app.painel"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "home"
	}
	return &Shell{cfg: cfg}, nil
}

// Painel exposes the configured painel service when enabled.
func (s *Shell) Painel() *dashboardpkg.Service {
	if !s.cfg.EnablePainel {
		return nil
	}
	return s.cfg.Service
}

// Bootstrap seeds menu entries when painel support is enabled.
func (s *Shell) Bootstrap(ctx context.Context) error {
	if !s.cfg.EnablePainel || s.cfg.MenuBuilder == nil {
		return nil
	}
	return s.cfg.MenuBuilder.EnsureMenuItem(ctx, s.cfg.MenuCode, s.cfg.DefaultMenuItem)
}
