package dashboard

import (
	"bytes"
	"encoding/json"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

func newCardID() string {
	return uuid.NewString()
}

// CardVersion is the schema version stamped on newly created cards. Imported
// documents carrying older versions are accepted as-is; the codec upgrades
// them to the current version on export.
const CardVersion = 1

// CardType tags the closed set of card variants. The set is fixed: transports
// reject unknown tags and the registry dispatches over this enumeration with
// a single fallback handler.
type CardType string

const (
	CardStandard          CardType = "standard"
	CardDataDynamic       CardType = "data_dynamic"
	CardInProgressDemands CardType = "in_progress_demands"
	CardRecentNotes       CardType = "recent_notes"
	CardOriginSelection   CardType = "origin_selection"
	CardSmartSearch       CardType = "smart_search"
	CardOriginDemandChart CardType = "origin_demand_chart"
	CardCommunications    CardType = "communications"
	CardPendingActions    CardType = "pending_actions"
)

var cardTypes = map[CardType]struct{}{
	CardStandard:          {},
	CardDataDynamic:       {},
	CardInProgressDemands: {},
	CardRecentNotes:       {},
	CardOriginSelection:   {},
	CardSmartSearch:       {},
	CardOriginDemandChart: {},
	CardCommunications:    {},
	CardPendingActions:    {},
}

// KnownCardType reports whether t belongs to the closed variant set.
func KnownCardType(t CardType) bool {
	_, ok := cardTypes[t]
	return ok
}

// CardTypes returns the closed variant set in a stable order.
func CardTypes() []CardType {
	return []CardType{
		CardStandard,
		CardDataDynamic,
		CardInProgressDemands,
		CardRecentNotes,
		CardOriginSelection,
		CardSmartSearch,
		CardOriginDemandChart,
		CardCommunications,
		CardPendingActions,
	}
}

// GridSize is a card dimension in grid units. Zero is the `auto` sentinel and
// serializes as the string "auto" on the wire.
type GridSize int

// SizeAuto lets the rendering surface pick the span.
const SizeAuto GridSize = 0

// MarshalJSON writes "auto" for the sentinel and a plain number otherwise.
func (s GridSize) MarshalJSON() ([]byte, error) {
	if s == SizeAuto {
		return []byte(`"auto"`), nil
	}
	return []byte(strconv.Itoa(int(s))), nil
}

// UnmarshalJSON accepts a positive integer or the string "auto". Anything
// else resolves to the auto sentinel so unknown size keys never fail (§size
// classes fall back, they do not error).
func (s *GridSize) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = SizeAuto
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			*s = GridSize(n)
			return nil
		}
		*s = SizeAuto
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < 0 {
		n = 0
	}
	*s = GridSize(n)
	return nil
}

// Card is a single dashboard tile.
type Card struct {
	ID            string         `json:"id"`
	Type          CardType       `json:"type"`
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle,omitempty"`
	IconID        string         `json:"iconId,omitempty"`
	Path          string         `json:"path,omitempty"`
	Color         string         `json:"color,omitempty"`
	Width         GridSize       `json:"width"`
	Height        GridSize       `json:"height"`
	DisplayMobile bool           `json:"displayMobile"`
	MobileOrder   int            `json:"mobileOrder"`
	IsCustom      bool           `json:"isCustom"`
	Hidden        bool           `json:"hidden,omitempty"`
	Version       int            `json:"version"`
	// Options carries variant-specific configuration (chart overrides,
	// origin-selection option lists). Validated per type by the registry.
	Options map[string]any `json:"options,omitempty"`
	// BadgeCount is populated at resolve time by the badge collaborator.
	// Never persisted or exported.
	BadgeCount *int `json:"-"`
}

// Validate checks the fields required for a card to enter a layout.
func (c Card) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Type, validation.Required, validation.By(func(any) error {
			if !KnownCardType(c.Type) {
				return validation.NewError("card_type", "unknown card type "+string(c.Type))
			}
			return nil
		})),
		validation.Field(&c.Width, validation.Min(0), validation.Max(maxGridSpan)),
		validation.Field(&c.Height, validation.Min(0), validation.Max(maxGridSpan)),
	)
}

// Clone returns a deep copy; Options maps are never shared between snapshots.
func (c Card) Clone() Card {
	out := c
	if c.Options != nil {
		out.Options = make(map[string]any, len(c.Options))
		for k, v := range c.Options {
			out.Options[k] = v
		}
	}
	if c.BadgeCount != nil {
		count := *c.BadgeCount
		out.BadgeCount = &count
	}
	return out
}

// Interactive reports whether activating the card navigates somewhere.
// Chart and dynamic-data variants render in place.
func (c Card) Interactive() bool {
	switch c.Type {
	case CardOriginDemandChart, CardDataDynamic:
		return false
	}
	return c.Path != ""
}

const maxGridSpan = 4

// Size classes translate grid units into presentation class names. Unknown
// spans resolve to the auto class, never fail.
var (
	widthClasses = map[GridSize]string{
		1: "card-w-1",
		2: "card-w-2",
		3: "card-w-3",
		4: "card-w-4",
	}
	heightClasses = map[GridSize]string{
		1: "card-h-1",
		2: "card-h-2",
		3: "card-h-3",
		4: "card-h-4",
	}
)

const (
	defaultWidthClass  = "card-w-auto"
	defaultHeightClass = "card-h-auto"
	defaultIconGlyph   = "circle"
)

// WidthClass resolves the card width to a renderer class name.
func WidthClass(size GridSize) string {
	if class, ok := widthClasses[size]; ok {
		return class
	}
	return defaultWidthClass
}

// HeightClass resolves the card height to a renderer class name.
func HeightClass(size GridSize) string {
	if class, ok := heightClasses[size]; ok {
		return class
	}
	return defaultHeightClass
}

var iconGlyphs = map[string]string{
	"search":        "magnifying-glass",
	"note":          "file-text",
	"note-add":      "file-plus",
	"demand":        "inbox",
	"demand-add":    "inbox-plus",
	"chart":         "chart-bar",
	"megaphone":     "megaphone",
	"alert":         "bell",
	"esic":          "envelope-open",
	"communication": "chat-bubbles",
}

// IconGlyph resolves a symbolic icon id to a renderable glyph name. Unknown
// ids resolve to the default glyph.
func IconGlyph(iconID string) string {
	if glyph, ok := iconGlyphs[iconID]; ok {
		return glyph
	}
	return defaultIconGlyph
}
