package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ViewerContext identifies who is looking at the dashboard. The scope key
// derived from it partitions stored configurations per user and department.
type ViewerContext struct {
	UserID     string
	Department string
	Roles      []string
	Locale     string
}

// ScopeKey returns the storage key for this viewer's configuration.
func (v ViewerContext) ScopeKey() string {
	if v.Department == "" {
		return v.UserID
	}
	return v.UserID + "::" + v.Department
}

// LayoutEvent describes a layout change for refresh hooks and transports.
type LayoutEvent struct {
	ScopeKey string
	CardID   string
	Reason   string
}

// RefreshHook receives layout change notifications so connected clients can
// reload.
type RefreshHook interface {
	LayoutUpdated(ctx context.Context, event LayoutEvent) error
}

type noopRefreshHook struct{}

func (noopRefreshHook) LayoutUpdated(context.Context, LayoutEvent) error {
	return nil
}

// Options configures the dashboard Service. Every collaborator is provided
// via interface so applications can swap implementations without importing
// internal packages.
type Options struct {
	ConfigStore ConfigStore
	Defaults    *Catalog
	Providers   *Registry
	Badges      BadgeSource
	Settings    SettingsStore
	Telemetry   Telemetry
	RefreshHook RefreshHook
	Translator  TranslationService
	Codec       *Codec
}

// Service orchestrates per-viewer dashboard sessions: loading and saving
// configurations, resolving card content and fanning out layout events.
type Service struct {
	opts Options

	mu       sync.Mutex
	sessions map[string]*Store
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.ConfigStore == nil {
		opts.ConfigStore = NewInMemoryConfigStore()
	}
	if opts.Defaults == nil {
		opts.Defaults = DefaultCatalog()
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.Settings == nil {
		opts.Settings = NewInMemorySettingsStore()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Codec == nil {
		opts.Codec = NewCodec()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:     opts,
		sessions: make(map[string]*Store),
	}
}

// Session returns the live layout store for the viewer, loading the stored
// configuration on first access and seeding department defaults when none
// exists yet.
func (s *Service) Session(ctx context.Context, viewer ViewerContext) (*Store, error) {
	if viewer.UserID == "" {
		return nil, errors.New("dashboard: viewer context missing user id")
	}
	scopeKey := viewer.ScopeKey()

	s.mu.Lock()
	if store, ok := s.sessions[scopeKey]; ok {
		s.mu.Unlock()
		return store, nil
	}
	s.mu.Unlock()

	layout, err := s.loadLayout(ctx, viewer)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if store, ok := s.sessions[scopeKey]; ok {
		return store, nil
	}
	store := NewStore(layout, WithDefaults(func(key string) []Card {
		return s.opts.Defaults.CardsForLocale(viewer.Department, viewer.Locale)
	}))
	s.sessions[scopeKey] = store
	return store, nil
}

func (s *Service) loadLayout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	scopeKey := viewer.ScopeKey()
	doc, err := s.opts.ConfigStore.Load(ctx, scopeKey)
	switch {
	case errors.Is(err, ErrConfigNotFound):
		s.recordTelemetry(ctx, "painel.layout.seed_defaults", map[string]any{
			"scope_key":  scopeKey,
			"department": viewer.Department,
		})
		return Layout{
			ScopeKey: scopeKey,
			ViewType: DefaultViewType(viewer.Department),
			Cards:    s.opts.Defaults.CardsForLocale(viewer.Department, viewer.Locale),
		}, nil
	case err != nil:
		return Layout{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	layout := s.opts.Codec.LayoutFromDocument(doc)
	layout.ScopeKey = scopeKey
	s.recordTelemetry(ctx, "painel.layout.load", map[string]any{
		"scope_key": scopeKey,
		"cards":     len(layout.Cards),
	})
	return layout, nil
}

// Save persists the viewer's current layout. Saves are last-writer-wins.
func (s *Service) Save(ctx context.Context, viewer ViewerContext) error {
	store, err := s.Session(ctx, viewer)
	if err != nil {
		return err
	}
	layout := store.Snapshot()
	doc := s.opts.Codec.DocumentFromLayout(layout)
	if err := s.opts.ConfigStore.Save(ctx, layout.ScopeKey, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	store.MarkSaved()
	s.recordTelemetry(ctx, "painel.layout.save", map[string]any{
		"scope_key": layout.ScopeKey,
		"cards":     len(layout.Cards),
	})
	return s.NotifyLayoutUpdated(ctx, LayoutEvent{
		ScopeKey: layout.ScopeKey,
		Reason:   "save",
	})
}

// Export serializes the viewer's current layout as a portable document.
func (s *Service) Export(ctx context.Context, viewer ViewerContext) ([]byte, error) {
	store, err := s.Session(ctx, viewer)
	if err != nil {
		return nil, err
	}
	data, err := s.opts.Codec.Export(store.Snapshot())
	if err != nil {
		return nil, err
	}
	s.recordTelemetry(ctx, "painel.layout.export", map[string]any{
		"scope_key": viewer.ScopeKey(),
	})
	return data, nil
}

// Import parses an exported document and replaces the viewer's live layout.
// Per-card warnings are returned for entries that were dropped; the layout
// is not persisted until the viewer saves.
func (s *Service) Import(ctx context.Context, viewer ViewerContext, data []byte) (Layout, []ImportWarning, error) {
	store, err := s.Session(ctx, viewer)
	if err != nil {
		return Layout{}, nil, err
	}
	layout, warnings, err := s.opts.Codec.Import(data)
	if err != nil {
		return Layout{}, nil, err
	}
	layout.ScopeKey = viewer.ScopeKey()
	replaced := store.Replace(layout)
	s.recordTelemetry(ctx, "painel.layout.import", map[string]any{
		"scope_key": replaced.ScopeKey,
		"cards":     len(replaced.Cards),
		"warnings":  len(warnings),
	})
	return replaced, warnings, nil
}

// ResolvedCard pairs a card with its render-time data.
type ResolvedCard struct {
	Card        Card
	Data        CardData
	Badge       *int
	Palette     PaletteTokens
	WidthClass  string
	HeightClass string
}

// ResolveCards returns the visible cards for the viewer with provider data,
// badge counts and style tokens attached. Hidden cards are filtered out here;
// they stay in the stored configuration.
func (s *Service) ResolveCards(ctx context.Context, viewer ViewerContext) ([]ResolvedCard, error) {
	store, err := s.Session(ctx, viewer)
	if err != nil {
		return nil, err
	}
	visible := store.Snapshot().VisibleCards()

	badges := map[string]int{}
	if s.opts.Badges != nil && len(visible) > 0 {
		ids := make([]string, len(visible))
		for i, card := range visible {
			ids[i] = card.ID
		}
		counts, err := s.opts.Badges.Counts(ctx, viewer, ids)
		if err != nil {
			s.recordTelemetry(ctx, "painel.card.badge_error", map[string]any{
				"scope_key": viewer.ScopeKey(),
				"error":     err.Error(),
			})
		} else {
			badges = counts
		}
	}

	resolved := make([]ResolvedCard, 0, len(visible))
	for _, card := range visible {
		item := ResolvedCard{
			Card:        card,
			Palette:     Palette(card.Color),
			WidthClass:  WidthClass(card.Width),
			HeightClass: HeightClass(card.Height),
		}
		if count, ok := badges[card.ID]; ok {
			badge := count
			item.Badge = &badge
		}
		provider := s.opts.Providers.Provider(card.Type)
		data, err := provider.Fetch(ctx, CardContext{
			Card:       card,
			Viewer:     viewer,
			Translator: s.opts.Translator,
		})
		if err != nil {
			s.recordTelemetry(ctx, "painel.card.provider_error", map[string]any{
				"card_id":   card.ID,
				"card_type": string(card.Type),
				"error":     err.Error(),
			})
		} else {
			item.Data = data
		}
		resolved = append(resolved, item)
	}
	return resolved, nil
}

// Settings returns the per-user dashboard settings for the viewer.
func (s *Service) Settings(ctx context.Context, viewer ViewerContext) (Settings, error) {
	return s.opts.Settings.LoadSettings(ctx, viewer.UserID)
}

// SaveSettings persists per-user dashboard settings.
func (s *Service) SaveSettings(ctx context.Context, viewer ViewerContext, settings Settings) error {
	return s.opts.Settings.SaveSettings(ctx, viewer.UserID, settings)
}

// NotifyLayoutUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyLayoutUpdated(ctx context.Context, event LayoutEvent) error {
	if err := s.opts.RefreshHook.LayoutUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "painel.layout.event", map[string]any{
		"scope_key": event.ScopeKey,
		"card_id":   event.CardID,
		"reason":    event.Reason,
	})
	return nil
}

// DiscardSession drops the in-memory store for a scope so the next access
// reloads from persistence.
func (s *Service) DiscardSession(scopeKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, scopeKey)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	if audit := AuditFrom(ctx); audit.ActorID != "" {
		payload["actor_id"] = audit.ActorID
	}
	s.opts.Telemetry.Record(ctx, event, payload)
}
