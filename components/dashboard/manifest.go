package dashboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	packVersionV1 = "1"
	// CardPackVersion exposes the current card-pack format version for tooling.
	CardPackVersion = packVersionV1
)

// CardPackDocument models a YAML/JSON manifest of card templates that a
// department publishes to extend the default catalog.
type CardPackDocument struct {
	Version    string     `json:"version" yaml:"version"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Department string     `json:"department,omitempty" yaml:"department,omitempty"`
	Homepage   string     `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Cards      []PackCard `json:"cards" yaml:"cards"`
	Source     string     `json:"-" yaml:"-"`
}

// PackCard is a single template entry within a card pack.
type PackCard struct {
	Template    CardTemplate `json:"template" yaml:"template"`
	Maintainers []string     `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// LoadPackFile reads a card pack from disk and registers its templates with
// the catalog.
func (c *Catalog) LoadPackFile(path string) (*CardPackDocument, error) {
	doc, err := ReadCardPack(path)
	if err != nil {
		return nil, err
	}
	if err := c.LoadPack(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadPack registers a decoded card pack with the catalog.
func (c *Catalog) LoadPack(doc *CardPackDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: card pack document is nil")
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	templates := make([]CardTemplate, len(doc.Cards))
	for i, card := range doc.Cards {
		templates[i] = card.Template
	}
	c.extend(doc.Department, templates)
	return nil
}

// ReadCardPack loads a pack file from disk without registering it.
func ReadCardPack(path string) (*CardPackDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open card pack %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeCardPack(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode card pack %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeCardPack reads a card pack from any reader.
func DecodeCardPack(r io.Reader) (*CardPackDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CardPackDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: card pack is empty")
		}
		return nil, fmt.Errorf("dashboard: parse card pack: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the pack satisfies required fields.
func (doc *CardPackDocument) Validate() error {
	if doc.Version != packVersionV1 {
		return fmt.Errorf("dashboard: unsupported card pack version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Cards))
	for idx, card := range doc.Cards {
		if card.Template.Title == "" {
			return fmt.Errorf("dashboard: card pack entry at index %d is missing template.title", idx)
		}
		if !KnownCardType(card.Template.Type) {
			return fmt.Errorf("dashboard: card pack entry %s has unknown type %q", card.Template.Title, card.Template.Type)
		}
		if _, exists := seen[card.Template.Title]; exists {
			return fmt.Errorf("dashboard: card pack duplicates title %s", card.Template.Title)
		}
		seen[card.Template.Title] = struct{}{}
	}
	return nil
}

func (doc *CardPackDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = packVersionV1
	}
}
