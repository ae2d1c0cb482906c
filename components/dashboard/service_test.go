package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingTelemetry) has(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}

func serviceViewer() ViewerContext {
	return ViewerContext{UserID: "user-1", Department: "comunicacao", Locale: "pt"}
}

func TestViewerScopeKey(t *testing.T) {
	if got := (ViewerContext{UserID: "u1"}).ScopeKey(); got != "u1" {
		t.Fatalf("expected bare user id, got %q", got)
	}
	if got := serviceViewer().ScopeKey(); got != "user-1::comunicacao" {
		t.Fatalf("expected composite scope key, got %q", got)
	}
}

func TestSessionSeedsDefaultsWhenConfigMissing(t *testing.T) {
	telemetry := &recordingTelemetry{}
	service := NewService(Options{Telemetry: telemetry})

	store, err := service.Session(context.Background(), serviceViewer())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	layout := store.Snapshot()
	if len(layout.Cards) != len(DefaultCards("comunicacao")) {
		t.Fatalf("expected seeded defaults, got %d cards", len(layout.Cards))
	}
	if layout.ViewType != ViewTypeComunicacao {
		t.Fatalf("expected comunicacao surface, got %s", layout.ViewType)
	}
	if !telemetry.has("painel.layout.seed_defaults") {
		t.Fatalf("missing seed telemetry, got %v", telemetry.events)
	}
}

func TestSessionRequiresUserID(t *testing.T) {
	service := NewService(Options{})
	if _, err := service.Session(context.Background(), ViewerContext{}); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestSessionIsSharedPerScope(t *testing.T) {
	service := NewService(Options{})
	viewer := serviceViewer()
	first, err := service.Session(context.Background(), viewer)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	second, err := service.Session(context.Background(), viewer)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if first != second {
		t.Fatal("same scope must share one store")
	}

	other, err := service.Session(context.Background(), ViewerContext{UserID: "user-1"})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if other == first {
		t.Fatal("different scopes must not share a store")
	}
}

func TestSaveMarksCleanAndPersists(t *testing.T) {
	configs := NewInMemoryConfigStore()
	service := NewService(Options{ConfigStore: configs})
	viewer := serviceViewer()
	ctx := context.Background()

	store, err := service.Session(ctx, viewer)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	store.SetEditMode(true)
	if _, err := store.AddCard(Card{Type: CardStandard, Title: "Atalho"}); err != nil {
		t.Fatalf("add card: %v", err)
	}
	if !store.IsDirty() {
		t.Fatal("expected dirty layout before save")
	}

	if err := service.Save(ctx, viewer); err != nil {
		t.Fatalf("save: %v", err)
	}
	if store.IsDirty() {
		t.Fatal("save must mark the layout clean")
	}

	doc, err := configs.Load(ctx, viewer.ScopeKey())
	if err != nil {
		t.Fatalf("load persisted document: %v", err)
	}
	if len(doc.CardsConfig) != len(store.Snapshot().Cards) {
		t.Fatalf("persisted %d cards, store has %d", len(doc.CardsConfig), len(store.Snapshot().Cards))
	}
}

func TestSessionReloadsPersistedLayout(t *testing.T) {
	configs := NewInMemoryConfigStore()
	service := NewService(Options{ConfigStore: configs})
	viewer := serviceViewer()
	ctx := context.Background()

	store, _ := service.Session(ctx, viewer)
	store.SetEditMode(true)
	if _, err := store.AddCard(Card{Type: CardStandard, Title: "Atalho"}); err != nil {
		t.Fatalf("add card: %v", err)
	}
	if err := service.Save(ctx, viewer); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved := store.Snapshot()

	service.DiscardSession(viewer.ScopeKey())
	reloaded, err := service.Session(ctx, viewer)
	if err != nil {
		t.Fatalf("session after discard: %v", err)
	}
	layout := reloaded.Snapshot()
	if len(layout.Cards) != len(saved.Cards) {
		t.Fatalf("reload lost cards: got %d want %d", len(layout.Cards), len(saved.Cards))
	}
	if layout.ScopeKey != viewer.ScopeKey() {
		t.Fatalf("reload lost scope key: %q", layout.ScopeKey)
	}
	if layout.EditMode {
		t.Fatal("reloaded sessions must start locked")
	}
}

func TestImportReplacesWithoutPersisting(t *testing.T) {
	configs := NewInMemoryConfigStore()
	service := NewService(Options{ConfigStore: configs})
	viewer := serviceViewer()
	ctx := context.Background()

	data, err := service.Export(ctx, viewer)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	layout, warnings, err := service.Import(ctx, viewer, data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if layout.ScopeKey != viewer.ScopeKey() {
		t.Fatalf("import must rebind scope key, got %q", layout.ScopeKey)
	}

	if _, err := configs.Load(ctx, viewer.ScopeKey()); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("import must not persist: %v", err)
	}
}

func TestImportRejectsMalformedPayload(t *testing.T) {
	service := NewService(Options{})
	if _, _, err := service.Import(context.Background(), serviceViewer(), []byte("{")); !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("expected ErrMalformedJSON, got %v", err)
	}
}

func TestResolveCardsAttachesBadgesAndData(t *testing.T) {
	viewer := serviceViewer()
	ctx := context.Background()

	badges := NewStaticBadgeSource(nil)
	service := NewService(Options{Badges: badges})
	store, err := service.Session(ctx, viewer)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	snapshot := store.Snapshot()
	searchID := ""
	for _, card := range snapshot.Cards {
		if card.Type == CardSmartSearch {
			searchID = card.ID
		}
	}
	if searchID == "" {
		t.Fatal("default layout missing the search card")
	}
	badges.Set(searchID, 3)

	resolved, err := service.ResolveCards(ctx, viewer)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(resolved) != len(snapshot.Cards) {
		t.Fatalf("expected %d resolved cards, got %d", len(snapshot.Cards), len(resolved))
	}
	foundBadge := false
	for _, item := range resolved {
		if item.Card.ID == searchID {
			if item.Badge == nil || *item.Badge != 3 {
				t.Fatalf("expected badge 3, got %v", item.Badge)
			}
			foundBadge = true
		}
		if item.WidthClass == "" || item.HeightClass == "" {
			t.Fatalf("missing size classes on %s", item.Card.ID)
		}
	}
	if !foundBadge {
		t.Fatal("badged card missing from resolve set")
	}
}

func TestResolveCardsSkipsHidden(t *testing.T) {
	viewer := serviceViewer()
	ctx := context.Background()
	service := NewService(Options{})

	store, _ := service.Session(ctx, viewer)
	store.SetEditMode(true)
	hidden := store.Snapshot().Cards[0].ID
	if _, err := store.HideCard(hidden); err != nil {
		t.Fatalf("hide: %v", err)
	}

	resolved, err := service.ResolveCards(ctx, viewer)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, item := range resolved {
		if item.Card.ID == hidden {
			t.Fatal("hidden card leaked into the resolve set")
		}
	}
}

func TestResolveCardsSurvivesProviderFailure(t *testing.T) {
	viewer := serviceViewer()
	ctx := context.Background()
	telemetry := &recordingTelemetry{}

	registry := NewRegistry()
	if err := registry.Register(CardSmartSearch, ProviderFunc(func(context.Context, CardContext) (CardData, error) {
		return nil, errors.New("upstream down")
	})); err != nil {
		t.Fatalf("register: %v", err)
	}

	service := NewService(Options{Providers: registry, Telemetry: telemetry})
	resolved, err := service.ResolveCards(ctx, viewer)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(resolved) == 0 {
		t.Fatal("provider failure must not drop cards")
	}
	if !telemetry.has("painel.card.provider_error") {
		t.Fatalf("missing provider error telemetry: %v", telemetry.events)
	}
}

func TestServiceSettingsRoundTrip(t *testing.T) {
	viewer := serviceViewer()
	ctx := context.Background()
	service := NewService(Options{})

	settings, err := service.Settings(ctx, viewer)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	settings.WelcomeShown = true
	if err := service.SaveSettings(ctx, viewer, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	loaded, err := service.Settings(ctx, viewer)
	if err != nil {
		t.Fatalf("reload settings: %v", err)
	}
	if !loaded.WelcomeShown {
		t.Fatal("settings not persisted")
	}
}
