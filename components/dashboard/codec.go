package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigMetadata annotates an exported/persisted configuration document.
type ConfigMetadata struct {
	ExportedAt string `json:"exportedAt,omitempty"`
	ScopeKey   string `json:"scopeKey"`
}

// ConfigDocument is the wire shape for export/import and storage. When the
// document lives as a flat field inside an external record store,
// cards_config may arrive double-encoded (a JSON string holding the array);
// the codec normalizes both forms in one step at this boundary.
type ConfigDocument struct {
	CardsConfig []Card         `json:"cards_config"`
	ViewType    ViewType       `json:"view_type"`
	Metadata    ConfigMetadata `json:"metadata"`
}

// ImportWarning records a card dropped during a partially successful import.
type ImportWarning struct {
	Index  int    `json:"index"`
	CardID string `json:"card_id,omitempty"`
	Reason string `json:"reason"`
}

func (w ImportWarning) String() string {
	if w.CardID == "" {
		return fmt.Sprintf("card at position %d dropped: %s", w.Index, w.Reason)
	}
	return fmt.Sprintf("card %s at position %d dropped: %s", w.CardID, w.Index, w.Reason)
}

var configDocumentSchema = map[string]any{
	"type":     "object",
	"required": []string{"cards_config"},
	"properties": map[string]any{
		"cards_config": map[string]any{
			"oneOf": []map[string]any{
				{"type": "array"},
				{"type": "string"},
			},
		},
		"view_type": map[string]any{
			"type": "string",
			"enum": []string{string(ViewTypeDashboard), string(ViewTypeComunicacao)},
		},
		"metadata": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"exportedAt": map[string]any{"type": "string"},
				"scopeKey":   map[string]any{"type": "string"},
			},
		},
	},
}

// Codec serializes layouts to configuration documents and validates imported
// documents back into layouts. Import is all-or-nothing at the document
// level: either the envelope fails (malformed JSON / schema violation) or it
// succeeds with zero or more per-card warnings.
type Codec struct {
	schema *jsonschema.Schema
}

// NewCodec compiles the document schema once and returns the codec.
func NewCodec() *Codec {
	data, err := json.Marshal(configDocumentSchema)
	if err != nil {
		panic(fmt.Errorf("dashboard: marshal config document schema: %w", err))
	}
	compiler := jsonschema.NewCompiler()
	const name = "config_document.json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		panic(fmt.Errorf("dashboard: load config document schema: %w", err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Errorf("dashboard: compile config document schema: %w", err))
	}
	return &Codec{schema: schema}
}

var defaultCodec = NewCodec()

// Export serializes the layout to a portable JSON document. ExportedAt is
// regenerated on every call; BadgeCount values are never serialized. Hidden
// cards are included: hiding is a render filter, not deletion.
func (c *Codec) Export(layout Layout) ([]byte, error) {
	doc := c.DocumentFromLayout(layout)
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("dashboard: export layout %s: %w", layout.ScopeKey, err)
	}
	return out, nil
}

// DocumentFromLayout converts a layout snapshot to the persistence document.
func (c *Codec) DocumentFromLayout(layout Layout) ConfigDocument {
	viewType := layout.ViewType
	if !KnownViewType(viewType) {
		viewType = ViewTypeDashboard
	}
	cards := make([]Card, len(layout.Cards))
	for i, card := range layout.Cards {
		out := card.Clone()
		out.BadgeCount = nil
		if out.Version == 0 {
			out.Version = CardVersion
		}
		cards[i] = out
	}
	return ConfigDocument{
		CardsConfig: cards,
		ViewType:    viewType,
		Metadata: ConfigMetadata{
			ExportedAt: time.Now().UTC().Format(time.RFC3339),
			ScopeKey:   layout.ScopeKey,
		},
	}
}

// Import parses and validates a configuration document. Unparsable input
// fails with ErrMalformedJSON; a parsed object violating the envelope schema
// (missing cards_config, a cards_config string that is not itself a JSON
// array, an unknown view_type) fails with ErrSchema. Individual cards missing
// required fields are dropped with positional warnings instead of aborting
// the import.
func (c *Codec) Import(data []byte) (Layout, []ImportWarning, error) {
	doc, warnings, err := c.DecodeDocument(data)
	if err != nil {
		return Layout{}, nil, err
	}
	return c.LayoutFromDocument(doc), warnings, nil
}

// DecodeDocument performs envelope validation and per-card normalization
// without building a layout. Used by the import flow and by persistence
// backends that store the raw document.
func (c *Codec) DecodeDocument(data []byte) (ConfigDocument, []ImportWarning, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return ConfigDocument{}, nil, fmt.Errorf("dashboard: parse configuration: %v: %w", err, ErrMalformedJSON)
	}
	if err := c.schema.Validate(payload); err != nil {
		return ConfigDocument{}, nil, fmt.Errorf("dashboard: configuration document rejected: %v: %w", err, ErrSchema)
	}

	var raw struct {
		CardsConfig json.RawMessage `json:"cards_config"`
		ViewType    ViewType        `json:"view_type"`
		Metadata    ConfigMetadata  `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ConfigDocument{}, nil, fmt.Errorf("dashboard: decode configuration: %v: %w", err, ErrSchema)
	}

	elements, err := normalizeRawCards(raw.CardsConfig)
	if err != nil {
		return ConfigDocument{}, nil, err
	}

	cards, warnings := decodeCards(elements)
	viewType := raw.ViewType
	if viewType == "" {
		viewType = ViewTypeDashboard
	}
	return ConfigDocument{
		CardsConfig: cards,
		ViewType:    viewType,
		Metadata:    raw.Metadata,
	}, warnings, nil
}

// LayoutFromDocument builds a session layout from a decoded document.
func (c *Codec) LayoutFromDocument(doc ConfigDocument) Layout {
	return Layout{
		ScopeKey: doc.Metadata.ScopeKey,
		ViewType: doc.ViewType,
		Cards:    cloneCards(doc.CardsConfig),
	}
}

// normalizeRawCards resolves the RawConfig sum (JSON string | card array)
// into individual card elements. Performed exactly once at this boundary.
func normalizeRawCards(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("dashboard: cards_config is missing: %w", ErrSchema)
	}
	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return nil, fmt.Errorf("dashboard: cards_config string: %v: %w", err, ErrSchema)
		}
		trimmed = bytes.TrimSpace([]byte(encoded))
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return nil, fmt.Errorf("dashboard: cards_config string does not hold a JSON array: %w", ErrSchema)
		}
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("dashboard: cards_config array: %v: %w", err, ErrSchema)
	}
	return elements, nil
}

func decodeCards(elements []json.RawMessage) ([]Card, []ImportWarning) {
	cards := make([]Card, 0, len(elements))
	var warnings []ImportWarning
	seen := make(map[string]struct{}, len(elements))
	for i, element := range elements {
		var card Card
		if err := json.Unmarshal(element, &card); err != nil {
			warnings = append(warnings, ImportWarning{Index: i, Reason: "not a card object"})
			continue
		}
		if strings.TrimSpace(card.Title) == "" {
			warnings = append(warnings, ImportWarning{Index: i, CardID: card.ID, Reason: "missing title"})
			continue
		}
		if card.Type == "" {
			warnings = append(warnings, ImportWarning{Index: i, CardID: card.ID, Reason: "missing type"})
			continue
		}
		if !KnownCardType(card.Type) {
			warnings = append(warnings, ImportWarning{Index: i, CardID: card.ID, Reason: fmt.Sprintf("unknown type %q", card.Type)})
			continue
		}
		if card.ID == "" {
			// Forward-compatible: older exports without ids get fresh ones.
			card.ID = newCardID()
		}
		if _, dup := seen[card.ID]; dup {
			warnings = append(warnings, ImportWarning{Index: i, CardID: card.ID, Reason: "duplicate id"})
			continue
		}
		seen[card.ID] = struct{}{}
		if card.Version == 0 {
			card.Version = CardVersion
		}
		card.BadgeCount = nil
		cards = append(cards, card)
	}
	return cards, warnings
}
