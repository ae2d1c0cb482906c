package dashboard

import (
	"errors"
	"strings"
	"testing"
)

func testLayout() Layout {
	return Layout{
		ScopeKey: "user-1::comunicacao",
		ViewType: ViewTypeComunicacao,
		Cards: []Card{
			{ID: "sys-1", Type: CardSmartSearch, Title: "Pesquisar", Version: CardVersion},
			{ID: "sys-2", Type: CardRecentNotes, Title: "Consultar Notas", Version: CardVersion},
			{ID: "cus-1", Type: CardStandard, Title: "Atalho", IsCustom: true, Version: CardVersion},
		},
	}
}

func editingStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(testLayout())
	store.SetEditMode(true)
	return store
}

func TestMutationsRequireEditMode(t *testing.T) {
	store := NewStore(testLayout())

	if _, err := store.AddCard(Card{Type: CardStandard, Title: "Novo"}); !errors.Is(err, ErrEditModeRequired) {
		t.Fatalf("add: expected ErrEditModeRequired, got %v", err)
	}
	if _, err := store.RemoveCard("cus-1"); !errors.Is(err, ErrEditModeRequired) {
		t.Fatalf("remove: expected ErrEditModeRequired, got %v", err)
	}
	if _, err := store.HideCard("sys-1"); !errors.Is(err, ErrEditModeRequired) {
		t.Fatalf("hide: expected ErrEditModeRequired, got %v", err)
	}
	if _, err := store.MoveCard("sys-1", 2); !errors.Is(err, ErrEditModeRequired) {
		t.Fatalf("move: expected ErrEditModeRequired, got %v", err)
	}
	if _, err := store.ResetToDefaults("comunicacao"); !errors.Is(err, ErrEditModeRequired) {
		t.Fatalf("reset: expected ErrEditModeRequired, got %v", err)
	}
	if store.IsDirty() {
		t.Fatal("rejected mutations must not dirty the layout")
	}
}

func TestAddCardMintsIDAndForcesCustom(t *testing.T) {
	store := editingStore(t)
	layout, err := store.AddCard(Card{ID: "attacker-chosen", Type: CardStandard, Title: "Novo", IsCustom: false})
	if err != nil {
		t.Fatalf("add card: %v", err)
	}
	added := layout.Cards[len(layout.Cards)-1]
	if added.ID == "attacker-chosen" || added.ID == "" {
		t.Fatalf("expected fresh id, got %q", added.ID)
	}
	if !added.IsCustom {
		t.Fatal("added cards must be custom")
	}
	if added.Version != CardVersion {
		t.Fatalf("expected version %d, got %d", CardVersion, added.Version)
	}
}

func TestAddCardRejectsInvalid(t *testing.T) {
	store := editingStore(t)
	if _, err := store.AddCard(Card{Type: CardStandard}); !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard for missing title, got %v", err)
	}
	if _, err := store.AddCard(Card{Type: "banner", Title: "Novo"}); !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard for unknown type, got %v", err)
	}
}

func TestRemoveCardProtectsSystemCards(t *testing.T) {
	store := editingStore(t)
	if _, err := store.RemoveCard("sys-1"); !errors.Is(err, ErrNotDeletable) {
		t.Fatalf("expected ErrNotDeletable, got %v", err)
	}
	if _, err := store.RemoveCard("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	layout, err := store.RemoveCard("cus-1")
	if err != nil {
		t.Fatalf("remove custom card: %v", err)
	}
	if layout.CardIndex("cus-1") >= 0 {
		t.Fatal("custom card still present after removal")
	}
}

func TestHideIsNotDelete(t *testing.T) {
	store := editingStore(t)
	layout, err := store.HideCard("sys-1")
	if err != nil {
		t.Fatalf("hide: %v", err)
	}
	if layout.CardIndex("sys-1") != 0 {
		t.Fatal("hidden card must stay in the persisted sequence")
	}
	visible := layout.VisibleCards()
	for _, card := range visible {
		if card.ID == "sys-1" {
			t.Fatal("hidden card leaked into visible set")
		}
	}

	layout, err = store.RestoreCard("sys-1")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if layout.Cards[0].Hidden {
		t.Fatal("restore did not clear the hidden flag")
	}
}

func TestMoveCardClampsTarget(t *testing.T) {
	store := editingStore(t)
	layout, err := store.MoveCard("sys-1", 99)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if layout.Cards[len(layout.Cards)-1].ID != "sys-1" {
		t.Fatalf("expected sys-1 at tail, got order %v", cardIDs(layout))
	}

	layout, err = store.MoveCard("sys-1", -5)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if layout.Cards[0].ID != "sys-1" {
		t.Fatalf("expected sys-1 at head, got order %v", cardIDs(layout))
	}
}

func TestUpdateCardPartialPatch(t *testing.T) {
	store := editingStore(t)
	title := "Pesquisa Avançada"
	width := GridSize(3)
	layout, err := store.UpdateCard("sys-1", CardPatch{Title: &title, Width: &width})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	card := layout.Cards[0]
	if card.Title != title || card.Width != width {
		t.Fatalf("patch not applied: %+v", card)
	}
	if card.Type != CardSmartSearch {
		t.Fatal("unpatched fields must be untouched")
	}

	empty := ""
	if _, err := store.UpdateCard("sys-1", CardPatch{Title: &empty}); !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard for empty title, got %v", err)
	}
}

func TestDirtyTracking(t *testing.T) {
	store := NewStore(testLayout())
	if store.IsDirty() {
		t.Fatal("fresh store must be clean")
	}
	store.SetEditMode(true)
	if store.IsDirty() {
		t.Fatal("edit-mode toggle alone must not dirty the layout")
	}
	if _, err := store.MoveCard("sys-1", 2); err != nil {
		t.Fatalf("move: %v", err)
	}
	if !store.IsDirty() {
		t.Fatal("mutation must dirty the layout")
	}
	store.MarkSaved()
	if store.IsDirty() {
		t.Fatal("MarkSaved must reset the baseline")
	}
}

func TestReplaceKeepsEditMode(t *testing.T) {
	store := editingStore(t)
	incoming := Layout{ScopeKey: "user-1::comunicacao", ViewType: ViewTypeDashboard, Cards: []Card{
		{ID: "imp-1", Type: CardStandard, Title: "Importado", Version: CardVersion},
	}}
	layout := store.Replace(incoming)
	if !layout.EditMode {
		t.Fatal("Replace must keep the session edit-mode state")
	}
	if len(layout.Cards) != 1 || layout.Cards[0].ID != "imp-1" {
		t.Fatalf("unexpected cards after replace: %v", cardIDs(layout))
	}
}

func TestResetToDefaults(t *testing.T) {
	store := editingStore(t)
	layout, err := store.ResetToDefaults("comunicacao")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if layout.ViewType != ViewTypeComunicacao {
		t.Fatalf("expected comunicacao view type, got %s", layout.ViewType)
	}
	want := DefaultCards("comunicacao")
	if len(layout.Cards) != len(want) {
		t.Fatalf("expected %d default cards, got %d", len(want), len(layout.Cards))
	}
}

func TestSnapshotIsolation(t *testing.T) {
	store := editingStore(t)
	snapshot := store.Snapshot()
	snapshot.Cards[0].Title = "Mutated"
	if store.Snapshot().Cards[0].Title == "Mutated" {
		t.Fatal("snapshot mutation leaked into the store")
	}
}

func TestVisibilityErrorsNameTheOperation(t *testing.T) {
	store := editingStore(t)

	_, err := store.RestoreCard("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "restore card") {
		t.Fatalf("restore failure must report restore, got %q", err)
	}

	_, err = store.HideCard("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "hide card") {
		t.Fatalf("hide failure must report hide, got %q", err)
	}
}

func TestMobileCardsOrdering(t *testing.T) {
	layout := Layout{Cards: []Card{
		{ID: "a", Type: CardStandard, Title: "A", DisplayMobile: true, MobileOrder: 2},
		{ID: "b", Type: CardStandard, Title: "B", DisplayMobile: true, MobileOrder: 1},
		{ID: "c", Type: CardStandard, Title: "C"},
		{ID: "d", Type: CardStandard, Title: "D", DisplayMobile: true, MobileOrder: 0, Hidden: true},
	}}

	mobile := layout.MobileCards()
	if len(mobile) != 2 {
		t.Fatalf("expected 2 mobile cards, got %d", len(mobile))
	}
	if mobile[0].ID != "b" || mobile[1].ID != "a" {
		t.Fatalf("expected mobile order b,a; got %s,%s", mobile[0].ID, mobile[1].ID)
	}
}

func cardIDs(layout Layout) []string {
	ids := make([]string, len(layout.Cards))
	for i, card := range layout.Cards {
		ids[i] = card.ID
	}
	return ids
}
