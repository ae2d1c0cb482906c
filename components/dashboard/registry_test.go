package dashboard

import (
	"context"
	"testing"
)

func TestRegistryRejectsUnknownType(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register("banner", ProviderFunc(func(context.Context, CardContext) (CardData, error) {
		return nil, nil
	}))
	if err == nil {
		t.Fatal("expected rejection for unknown card type")
	}
	if err := reg.Register(CardStandard, nil); err == nil {
		t.Fatal("expected rejection for nil provider")
	}
}

func TestRegistryFallsBackToNavigation(t *testing.T) {
	reg := NewRegistry()
	if reg.Registered(CardStandard) {
		t.Fatal("standard cards have no dedicated provider")
	}

	provider := reg.Provider(CardStandard)
	card := Card{ID: "c1", Type: CardStandard, Title: "Pesquisar", Path: "/pesquisar", IconID: "search"}
	data, err := provider.Fetch(context.Background(), CardContext{Card: card})
	if err != nil {
		t.Fatalf("fallback fetch: %v", err)
	}
	if data["path"] != "/pesquisar" {
		t.Fatalf("expected navigation payload, got %v", data)
	}
	if data["icon"] != "magnifying-glass" {
		t.Fatalf("expected resolved glyph, got %v", data["icon"])
	}
}

func TestRegistryDefaultsCoverFeedCards(t *testing.T) {
	reg := NewRegistry()
	for _, typ := range []CardType{CardInProgressDemands, CardRecentNotes, CardPendingActions, CardCommunications, CardOriginDemandChart} {
		if !reg.Registered(typ) {
			t.Fatalf("expected default provider for %s", typ)
		}
	}
}

func TestRegistryOverride(t *testing.T) {
	reg := NewRegistry()
	want := CardData{"items": []map[string]any{}}
	err := reg.Register(CardInProgressDemands, ProviderFunc(func(context.Context, CardContext) (CardData, error) {
		return want, nil
	}))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	data, err := reg.Provider(CardInProgressDemands).Fetch(context.Background(), CardContext{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(data) != len(want) {
		t.Fatalf("override not used: %v", data)
	}
}

func TestCardHooksApplyToNewRegistries(t *testing.T) {
	called := 0
	RegisterCardHook(func(reg *Registry) error {
		called++
		return reg.Register(CardSmartSearch, ProviderFunc(func(context.Context, CardContext) (CardData, error) {
			return CardData{"placeholder": "Pesquisar"}, nil
		}))
	})

	reg := NewRegistry()
	if called == 0 {
		t.Fatal("hook not applied during construction")
	}
	if !reg.Registered(CardSmartSearch) {
		t.Fatal("hook registration missing from registry")
	}
}
