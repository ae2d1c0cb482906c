package dashboard

import "testing"

func TestDefaultCardsComunicacaoOrder(t *testing.T) {
	cards := DefaultCards("comunicacao")
	wantTitles := []string{"Nova Solicitação", "Criar Nota Oficial", "Pesquisar", "Consultar Notas"}
	if len(cards) != len(wantTitles) {
		t.Fatalf("expected %d cards, got %d", len(wantTitles), len(cards))
	}
	for i, want := range wantTitles {
		if cards[i].Title != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, cards[i].Title)
		}
	}
}

func TestDefaultCardsUnknownScopeGetsBaseSet(t *testing.T) {
	cards := DefaultCards("obras")
	if len(cards) != len(baseCardTemplates) {
		t.Fatalf("expected base set of %d, got %d", len(baseCardTemplates), len(cards))
	}
	for _, card := range cards {
		if card.IsCustom {
			t.Fatalf("default card %s must be a system card", card.ID)
		}
		if card.Version != CardVersion {
			t.Fatalf("default card %s missing version stamp", card.ID)
		}
	}
}

func TestDefaultCardsMintFreshIDs(t *testing.T) {
	first := DefaultCards("comunicacao")
	second := DefaultCards("comunicacao")
	for i := range first {
		if first[i].ID == "" {
			t.Fatalf("card %d has empty id", i)
		}
		if first[i].ID == second[i].ID {
			t.Fatalf("card %d shares id %s across instantiations", i, first[i].ID)
		}
	}
}

func TestCardsForLocaleTranslatesTitles(t *testing.T) {
	catalog := NewCatalog()
	cards := catalog.CardsForLocale("comunicacao", "en")
	if cards[0].Title != "New Request" {
		t.Fatalf("expected translated title, got %q", cards[0].Title)
	}
	cards = catalog.CardsForLocale("comunicacao", "fr")
	if cards[0].Title != "Nova Solicitação" {
		t.Fatalf("expected fallback title, got %q", cards[0].Title)
	}
}

func TestCatalogExtendAddsDepartment(t *testing.T) {
	catalog := NewCatalog()
	catalog.extend("obras", []CardTemplate{{Type: CardStandard, Title: "Vistorias"}})
	cards := catalog.Cards("obras")
	if cards[0].Title != "Vistorias" {
		t.Fatalf("expected extended template first, got %q", cards[0].Title)
	}
	if len(cards) != 1+len(baseCardTemplates) {
		t.Fatalf("expected department plus base set, got %d cards", len(cards))
	}
}

func TestDefaultViewType(t *testing.T) {
	if DefaultViewType("comunicacao") != ViewTypeComunicacao {
		t.Fatal("comunicacao scope must map to the comunicacao surface")
	}
	if DefaultViewType("user-1") != ViewTypeDashboard {
		t.Fatal("other scopes map to the dashboard surface")
	}
}
