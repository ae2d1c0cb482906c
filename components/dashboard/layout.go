package dashboard

import "sort"

// ViewType identifies which dashboard surface a configuration belongs to.
type ViewType string

const (
	// ViewTypeDashboard is the general-purpose dashboard surface.
	ViewTypeDashboard ViewType = "dashboard"
	// ViewTypeComunicacao is the communications-department surface.
	ViewTypeComunicacao ViewType = "comunicacao"
)

// KnownViewType reports whether v is a supported surface tag.
func KnownViewType(v ViewType) bool {
	return v == ViewTypeDashboard || v == ViewTypeComunicacao
}

// Layout is the ordered card sequence for one scope plus its edit-mode state.
// Values returned by the store are snapshots: mutating a snapshot never
// affects the store or other snapshots.
type Layout struct {
	ScopeKey string
	ViewType ViewType
	EditMode bool
	Cards    []Card
}

// Clone deep-copies the layout.
func (l Layout) Clone() Layout {
	out := l
	out.Cards = make([]Card, len(l.Cards))
	for i, card := range l.Cards {
		out.Cards[i] = card.Clone()
	}
	return out
}

// CardIndex returns the position of id in the order sequence, or -1.
func (l Layout) CardIndex(id string) int {
	for i, card := range l.Cards {
		if card.ID == id {
			return i
		}
	}
	return -1
}

// VisibleCards returns the desktop render set. Hiding is a render-time
// filter: hidden cards stay in the persisted sequence.
func (l Layout) VisibleCards() []Card {
	out := make([]Card, 0, len(l.Cards))
	for _, card := range l.Cards {
		if card.Hidden {
			continue
		}
		out = append(out, card.Clone())
	}
	return out
}

// MobileCards returns the compact render set ordered by MobileOrder. The
// compact ordering is independent of the desktop sequence.
func (l Layout) MobileCards() []Card {
	out := make([]Card, 0, len(l.Cards))
	for _, card := range l.Cards {
		if card.Hidden || !card.DisplayMobile {
			continue
		}
		out = append(out, card.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MobileOrder < out[j].MobileOrder
	})
	return out
}

func clampIndex(idx, length int) int {
	if length <= 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx > length-1 {
		return length - 1
	}
	return idx
}
