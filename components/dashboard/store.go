package dashboard

import (
	"fmt"
	"reflect"
	"sync"
)

// Store owns the live layout for one dashboard session. Operations execute
// synchronously under the store lock and are all-or-nothing: a failing
// operation leaves the layout bit-for-bit unchanged. Every mutation returns
// the resulting snapshot.
type Store struct {
	mu       sync.RWMutex
	layout   Layout
	baseline []Card
	defaults DefaultCardsFunc
}

// DefaultCardsFunc produces the default card set for a scope key.
type DefaultCardsFunc func(scopeKey string) []Card

// StoreOption customizes store construction.
type StoreOption func(*Store)

// WithDefaults overrides the default card provider used by ResetToDefaults.
func WithDefaults(fn DefaultCardsFunc) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.defaults = fn
		}
	}
}

// NewStore seeds a store with the given layout. The layout becomes the clean
// baseline: IsDirty reports false until the first mutation.
func NewStore(layout Layout, opts ...StoreOption) *Store {
	s := &Store{
		layout:   layout.Clone(),
		defaults: DefaultCards,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.baseline = cloneCards(s.layout.Cards)
	return s
}

// Snapshot returns a copy of the current layout.
func (s *Store) Snapshot() Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layout.Clone()
}

// EditMode reports whether mutations are currently permitted.
func (s *Store) EditMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layout.EditMode
}

// SetEditMode toggles edit mode. A no-op when already in the requested state.
func (s *Store) SetEditMode(enabled bool) Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.EditMode = enabled
	return s.layout.Clone()
}

// AddCard appends a user-created card. The card always enters the layout as
// custom with a fresh id, regardless of what the caller supplied.
func (s *Store) AddCard(card Card) (Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.layout.EditMode {
		return s.layout.Clone(), fmt.Errorf("add card: %w", ErrEditModeRequired)
	}
	if card.Type == "" || card.Title == "" {
		return s.layout.Clone(), fmt.Errorf("add card: type and title are required: %w", ErrInvalidCard)
	}
	if !KnownCardType(card.Type) {
		return s.layout.Clone(), fmt.Errorf("add card: unknown type %q: %w", card.Type, ErrInvalidCard)
	}
	card = card.Clone()
	card.ID = newCardID()
	card.IsCustom = true
	card.Version = CardVersion
	card.BadgeCount = nil
	s.layout.Cards = append(s.layout.Cards, card)
	return s.layout.Clone(), nil
}

// RemoveCard deletes a custom card. System cards can only be hidden.
func (s *Store) RemoveCard(id string) (Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.layout.EditMode {
		return s.layout.Clone(), fmt.Errorf("remove card: %w", ErrEditModeRequired)
	}
	idx := s.layout.CardIndex(id)
	if idx < 0 {
		return s.layout.Clone(), fmt.Errorf("remove card %s: %w", id, ErrNotFound)
	}
	if !s.layout.Cards[idx].IsCustom {
		return s.layout.Clone(), fmt.Errorf("remove card %s: %w", id, ErrNotDeletable)
	}
	s.layout.Cards = append(s.layout.Cards[:idx], s.layout.Cards[idx+1:]...)
	return s.layout.Clone(), nil
}

// HideCard excludes a card from the render set without removing it from the
// persisted sequence. MobileOrder and every other field are retained so a
// later restore puts the card back exactly where it was.
func (s *Store) HideCard(id string) (Layout, error) {
	return s.setHidden(id, true)
}

// RestoreCard clears the hidden flag set by HideCard.
func (s *Store) RestoreCard(id string) (Layout, error) {
	return s.setHidden(id, false)
}

func (s *Store) setHidden(id string, hidden bool) (Layout, error) {
	op := "hide card"
	if !hidden {
		op = "restore card"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.layout.EditMode {
		return s.layout.Clone(), fmt.Errorf("%s: %w", op, ErrEditModeRequired)
	}
	idx := s.layout.CardIndex(id)
	if idx < 0 {
		return s.layout.Clone(), fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	s.layout.Cards[idx].Hidden = hidden
	return s.layout.Clone(), nil
}

// CardPatch is a partial update; nil fields are left untouched. Options, when
// present, replaces the card's option map wholesale.
type CardPatch struct {
	Title         *string        `json:"title,omitempty"`
	Subtitle      *string        `json:"subtitle,omitempty"`
	IconID        *string        `json:"iconId,omitempty"`
	Path          *string        `json:"path,omitempty"`
	Color         *string        `json:"color,omitempty"`
	Width         *GridSize      `json:"width,omitempty"`
	Height        *GridSize      `json:"height,omitempty"`
	DisplayMobile *bool          `json:"displayMobile,omitempty"`
	MobileOrder   *int           `json:"mobileOrder,omitempty"`
	Options       map[string]any `json:"options,omitempty"`
}

// UpdateCard merges the patch into the card matching id.
func (s *Store) UpdateCard(id string, patch CardPatch) (Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.layout.EditMode {
		return s.layout.Clone(), fmt.Errorf("update card: %w", ErrEditModeRequired)
	}
	idx := s.layout.CardIndex(id)
	if idx < 0 {
		return s.layout.Clone(), fmt.Errorf("update card %s: %w", id, ErrNotFound)
	}
	if patch.Title != nil && *patch.Title == "" {
		return s.layout.Clone(), fmt.Errorf("update card %s: title cannot be empty: %w", id, ErrInvalidCard)
	}
	card := &s.layout.Cards[idx]
	if patch.Title != nil {
		card.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		card.Subtitle = *patch.Subtitle
	}
	if patch.IconID != nil {
		card.IconID = *patch.IconID
	}
	if patch.Path != nil {
		card.Path = *patch.Path
	}
	if patch.Color != nil {
		card.Color = *patch.Color
	}
	if patch.Width != nil {
		card.Width = *patch.Width
	}
	if patch.Height != nil {
		card.Height = *patch.Height
	}
	if patch.DisplayMobile != nil {
		card.DisplayMobile = *patch.DisplayMobile
	}
	if patch.MobileOrder != nil {
		card.MobileOrder = *patch.MobileOrder
	}
	if patch.Options != nil {
		card.Options = make(map[string]any, len(patch.Options))
		for k, v := range patch.Options {
			card.Options[k] = v
		}
	}
	return s.layout.Clone(), nil
}

// MoveCard relocates a card within the order sequence. The target index is
// clamped to [0, len-1]; out-of-range input is a clamping policy, not an
// error.
func (s *Store) MoveCard(id string, toIndex int) (Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.layout.EditMode {
		return s.layout.Clone(), fmt.Errorf("move card: %w", ErrEditModeRequired)
	}
	from := s.layout.CardIndex(id)
	if from < 0 {
		return s.layout.Clone(), fmt.Errorf("move card %s: %w", id, ErrNotFound)
	}
	to := clampIndex(toIndex, len(s.layout.Cards))
	if to == from {
		return s.layout.Clone(), nil
	}
	card := s.layout.Cards[from]
	cards := append(s.layout.Cards[:from], s.layout.Cards[from+1:]...)
	cards = append(cards, Card{})
	copy(cards[to+1:], cards[to:])
	cards[to] = card
	s.layout.Cards = cards
	return s.layout.Clone(), nil
}

// ResetToDefaults discards the current cards and reloads the default set for
// the given scope key.
func (s *Store) ResetToDefaults(scopeKey string) (Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.layout.EditMode {
		return s.layout.Clone(), fmt.Errorf("reset layout: %w", ErrEditModeRequired)
	}
	s.layout.ScopeKey = scopeKey
	s.layout.ViewType = DefaultViewType(scopeKey)
	s.layout.Cards = s.defaults(scopeKey)
	return s.layout.Clone(), nil
}

// Replace swaps the whole layout, keeping the current edit-mode state. Used
// by the import flow after a document validated successfully.
func (s *Store) Replace(layout Layout) Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	editMode := s.layout.EditMode
	s.layout = layout.Clone()
	s.layout.EditMode = editMode
	return s.layout.Clone()
}

// IsDirty reports whether the card sequence differs from the last
// loaded/saved baseline. Edit-mode toggles alone do not dirty the layout.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !reflect.DeepEqual(s.layout.Cards, s.baseline)
}

// MarkSaved records the current cards as the clean baseline. Called by the
// service after a successful save or load.
func (s *Store) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseline = cloneCards(s.layout.Cards)
}

func cloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, card := range cards {
		out[i] = card.Clone()
	}
	return out
}
