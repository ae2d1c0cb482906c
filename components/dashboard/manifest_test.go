package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCardPack(t *testing.T) {
	const payload = `
version: "1"
name: obras-pack
department: obras
cards:
  - template:
      type: standard
      title: Vistorias
      subtitle: Agenda de vistorias da semana
      icon_id: demand
      path: /obras/vistorias
      color: green
      width: 2
      height: 1
      display_mobile: true
      mobile_order: 1
    maintainers: ["secretaria-obras"]
    tags: ["obras"]
`
	doc, err := DecodeCardPack(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Cards, 1)

	card := doc.Cards[0]
	assert.Equal(t, "obras", doc.Department)
	assert.Equal(t, CardStandard, card.Template.Type)
	assert.Equal(t, "Vistorias", card.Template.Title)
	assert.Equal(t, "/obras/vistorias", card.Template.Path)
	assert.Equal(t, []string{"secretaria-obras"}, card.Maintainers)
}

func TestDecodeCardPackRejectsUnknownFields(t *testing.T) {
	const payload = `
version: "1"
cards: []
sections: []
`
	_, err := DecodeCardPack(strings.NewReader(payload))
	require.Error(t, err)
}

func TestDecodeCardPackRejectsEmptyInput(t *testing.T) {
	_, err := DecodeCardPack(strings.NewReader(""))
	require.Error(t, err)
}

func TestCardPackValidate(t *testing.T) {
	doc := &CardPackDocument{
		Version: "2",
		Cards:   []PackCard{{Template: CardTemplate{Type: CardStandard, Title: "Atalho"}}},
	}
	assert.Error(t, doc.Validate(), "unsupported version must fail")

	doc.Version = CardPackVersion
	require.NoError(t, doc.Validate())

	doc.Cards = append(doc.Cards, PackCard{Template: CardTemplate{Type: CardStandard, Title: "Atalho"}})
	assert.Error(t, doc.Validate(), "duplicate titles must fail")

	doc.Cards = []PackCard{{Template: CardTemplate{Type: "banner", Title: "Banner"}}}
	assert.Error(t, doc.Validate(), "unknown type must fail")

	doc.Cards = []PackCard{{Template: CardTemplate{Type: CardStandard}}}
	assert.Error(t, doc.Validate(), "missing title must fail")
}

func TestCatalogLoadPackFile(t *testing.T) {
	const payload = `
version: "1"
department: esic
cards:
  - template:
      type: pending_actions
      title: Recursos em Prazo
      path: /esic/recursos
`
	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	catalog := NewCatalog()
	doc, err := catalog.LoadPackFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	cards := catalog.Cards("esic")
	titles := make([]string, len(cards))
	for i, card := range cards {
		titles[i] = card.Title
	}
	assert.Contains(t, titles, "Recursos em Prazo")
	assert.Contains(t, titles, "Solicitações e-SIC")
}

func TestCatalogLoadPackNil(t *testing.T) {
	catalog := NewCatalog()
	assert.Error(t, catalog.LoadPack(nil))
}
