package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "painel.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadMissingScope(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Load(context.Background(), "user-1")
	if !errors.Is(err, dashboard.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	doc := dashboard.ConfigDocument{
		CardsConfig: dashboard.DefaultCards("comunicacao"),
		ViewType:    dashboard.ViewTypeComunicacao,
		Metadata: dashboard.ConfigMetadata{
			ExportedAt: "2026-08-29T12:00:00Z",
			ScopeKey:   "user-1::comunicacao",
		},
	}
	if err := store.Save(context.Background(), "user-1::comunicacao", doc); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := store.Load(context.Background(), "user-1::comunicacao")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.ViewType != dashboard.ViewTypeComunicacao {
		t.Fatalf("expected view type preserved, got %q", loaded.ViewType)
	}
	if len(loaded.CardsConfig) != len(doc.CardsConfig) {
		t.Fatalf("expected %d cards, got %d", len(doc.CardsConfig), len(loaded.CardsConfig))
	}
	if loaded.CardsConfig[0].Title != doc.CardsConfig[0].Title {
		t.Fatalf("expected card title preserved")
	}
}

func TestSaveLastWriterWins(t *testing.T) {
	store := openTestStore(t)
	first := dashboard.ConfigDocument{
		CardsConfig: []dashboard.Card{{ID: "a", Type: dashboard.CardStandard, Title: "Primeiro"}},
		ViewType:    dashboard.ViewTypeDashboard,
	}
	second := dashboard.ConfigDocument{
		CardsConfig: []dashboard.Card{{ID: "b", Type: dashboard.CardStandard, Title: "Segundo"}},
		ViewType:    dashboard.ViewTypeDashboard,
	}
	if err := store.Save(context.Background(), "user-1", first); err != nil {
		t.Fatalf("first save returned error: %v", err)
	}
	if err := store.Save(context.Background(), "user-1", second); err != nil {
		t.Fatalf("second save returned error: %v", err)
	}
	loaded, err := store.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.CardsConfig) != 1 || loaded.CardsConfig[0].Title != "Segundo" {
		t.Fatalf("expected last write to win, got %+v", loaded.CardsConfig)
	}
}

func TestSaveRequiresScopeKey(t *testing.T) {
	store := openTestStore(t)
	err := store.Save(context.Background(), "", dashboard.ConfigDocument{})
	if !errors.Is(err, dashboard.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
