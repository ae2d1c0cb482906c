package dashboard

import "sync"

// CardTemplate describes a default card before instantiation. Templates carry
// no id: every instantiation mints a fresh one, so two layouts never alias
// the same card.
type CardTemplate struct {
	Type           CardType          `json:"type" yaml:"type"`
	Title          string            `json:"title" yaml:"title"`
	TitleLocalized map[string]string `json:"title_localized,omitempty" yaml:"title_localized,omitempty"`
	Subtitle       string            `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	IconID         string            `json:"icon_id,omitempty" yaml:"icon_id,omitempty"`
	Path           string            `json:"path,omitempty" yaml:"path,omitempty"`
	Color          string            `json:"color,omitempty" yaml:"color,omitempty"`
	Width          GridSize          `json:"width,omitempty" yaml:"width,omitempty"`
	Height         GridSize          `json:"height,omitempty" yaml:"height,omitempty"`
	DisplayMobile  bool              `json:"display_mobile,omitempty" yaml:"display_mobile,omitempty"`
	MobileOrder    int               `json:"mobile_order,omitempty" yaml:"mobile_order,omitempty"`
	Options        map[string]any    `json:"options,omitempty" yaml:"options,omitempty"`
}

// Instantiate produces a system card from the template with a fresh id.
func (t CardTemplate) Instantiate(locale string) Card {
	card := Card{
		ID:            newCardID(),
		Type:          t.Type,
		Title:         ResolveLocalizedValue(t.TitleLocalized, locale, t.Title),
		Subtitle:      t.Subtitle,
		IconID:        t.IconID,
		Path:          t.Path,
		Color:         t.Color,
		Width:         t.Width,
		Height:        t.Height,
		DisplayMobile: t.DisplayMobile,
		MobileOrder:   t.MobileOrder,
		IsCustom:      false,
		Version:       CardVersion,
	}
	if t.Options != nil {
		card.Options = make(map[string]any, len(t.Options))
		for k, v := range t.Options {
			card.Options[k] = v
		}
	}
	return card
}

// Base cards shipped to every scope.
var baseCardTemplates = []CardTemplate{
	{
		Type:  CardSmartSearch,
		Title: "Pesquisar",
		TitleLocalized: map[string]string{
			"en": "Search",
			"es": "Buscar",
		},
		Subtitle:      "Busca inteligente em demandas e notas",
		IconID:        "search",
		Path:          "/pesquisar",
		Color:         "blue",
		Width:         2,
		Height:        1,
		DisplayMobile: true,
		MobileOrder:   1,
	},
	{
		Type:  CardRecentNotes,
		Title: "Consultar Notas",
		TitleLocalized: map[string]string{
			"en": "Browse Notes",
			"es": "Consultar Notas",
		},
		Subtitle:      "Notas oficiais publicadas recentemente",
		IconID:        "note",
		Path:          "/notas-oficiais",
		Color:         "amber",
		Width:         2,
		Height:        2,
		DisplayMobile: true,
		MobileOrder:   2,
	},
}

// Department card sets prepended ahead of the base cards when the scope key
// matches a known department.
var departmentCardTemplates = map[string][]CardTemplate{
	"comunicacao": {
		{
			Type:  CardStandard,
			Title: "Nova Solicitação",
			TitleLocalized: map[string]string{
				"en": "New Request",
				"es": "Nueva Solicitud",
			},
			Subtitle:      "Abrir demanda de imprensa",
			IconID:        "demand-add",
			Path:          "/solicitacoes/nova",
			Color:         "green",
			Width:         1,
			Height:        1,
			DisplayMobile: true,
			MobileOrder:   1,
		},
		{
			Type:  CardStandard,
			Title: "Criar Nota Oficial",
			TitleLocalized: map[string]string{
				"en": "Create Official Note",
				"es": "Crear Nota Oficial",
			},
			Subtitle:      "Redigir e publicar nota oficial",
			IconID:        "note-add",
			Path:          "/notas-oficiais/criar",
			Color:         "purple",
			Width:         1,
			Height:        1,
			DisplayMobile: true,
			MobileOrder:   2,
		},
	},
	"esic": {
		{
			Type:          CardPendingActions,
			Title:         "Solicitações e-SIC",
			Subtitle:      "Pedidos de informação aguardando resposta",
			IconID:        "esic",
			Path:          "/esic/pendentes",
			Color:         "red",
			Width:         2,
			Height:        1,
			DisplayMobile: true,
			MobileOrder:   1,
		},
	},
}

// Catalog holds the card templates used to seed layouts when no persisted
// configuration exists. Card packs loaded from manifests extend it at
// runtime.
type Catalog struct {
	mu          sync.RWMutex
	base        []CardTemplate
	departments map[string][]CardTemplate
}

// NewCatalog builds a catalog seeded with the built-in templates.
func NewCatalog() *Catalog {
	c := &Catalog{
		base:        make([]CardTemplate, len(baseCardTemplates)),
		departments: make(map[string][]CardTemplate, len(departmentCardTemplates)),
	}
	copy(c.base, baseCardTemplates)
	for dept, templates := range departmentCardTemplates {
		c.departments[dept] = append([]CardTemplate(nil), templates...)
	}
	return c
}

// Cards instantiates the default set for the scope key: department templates
// first (when the scope matches one), then the base set. Every call mints
// fresh ids.
func (c *Catalog) Cards(scopeKey string) []Card {
	return c.CardsForLocale(scopeKey, "")
}

// CardsForLocale behaves like Cards with localized titles.
func (c *Catalog) CardsForLocale(scopeKey, locale string) []Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	templates := append([]CardTemplate(nil), c.departments[scopeKey]...)
	templates = append(templates, c.base...)
	cards := make([]Card, len(templates))
	for i, t := range templates {
		cards[i] = t.Instantiate(locale)
	}
	return cards
}

// Departments returns the scope keys with dedicated template sets.
func (c *Catalog) Departments() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.departments))
	for dept := range c.departments {
		out = append(out, dept)
	}
	return out
}

func (c *Catalog) extend(department string, templates []CardTemplate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if department == "" {
		c.base = append(c.base, templates...)
		return
	}
	c.departments[department] = append(c.departments[department], templates...)
}

var defaultCatalog = NewCatalog()

// DefaultCatalog exposes the shared catalog used by DefaultCards.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// DefaultCards returns the default card set for a scope key. Unknown scope
// keys get the base set.
func DefaultCards(scopeKey string) []Card {
	return defaultCatalog.Cards(scopeKey)
}

// DefaultViewType maps a scope key to the surface its configuration targets.
func DefaultViewType(scopeKey string) ViewType {
	if scopeKey == "comunicacao" {
		return ViewTypeComunicacao
	}
	return ViewTypeDashboard
}
