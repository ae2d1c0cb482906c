package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	dashboard "github.com/goliatone/go-painel/components/dashboard"
	"github.com/goliatone/go-painel/components/dashboard/sqlitestore"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a card template entry in a card pack manifest."`
	Export   exportCmd   `cmd:"" help:"Export a stored dashboard configuration as JSON."`
	Import   importCmd   `cmd:"" help:"Import a configuration document into the store."`
}

type scaffoldCmd struct {
	Title      string   `required:"" help:"Display title for the card."`
	Type       string   `default:"standard" help:"Card type (standard, recent_notes, pending_actions, ...)."`
	Path       string   `help:"Navigation target for the card."`
	Icon       string   `help:"Icon identifier (defaults to a slug of the title)."`
	Color      string   `default:"gray" help:"Card color palette name."`
	Department string   `help:"Department the pack belongs to (empty extends the base set)."`
	PackPath   string   `required:"" type:"path" help:"Path to the card pack YAML file to update."`
	Tag        []string `help:"Optional tags to include in the pack entry (use multiple --tag flags)."`
	Maintainer []string `help:"Maintainers to record in the pack entry."`
	Overwrite  bool     `help:"Overwrite an existing entry with the same title."`
}

type exportCmd struct {
	DB       string `required:"" type:"path" help:"Path to the SQLite configuration database."`
	ScopeKey string `required:"" help:"Scope key of the configuration to export."`
	Out      string `type:"path" help:"Output file (defaults to stdout)."`
}

type importCmd struct {
	DB       string `required:"" type:"path" help:"Path to the SQLite configuration database."`
	ScopeKey string `required:"" help:"Scope key to import the configuration into."`
	File     string `required:"" type:"path" help:"Path to the exported JSON document."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Card pack and configuration utility for go-painel dashboards."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	cardType := dashboard.CardType(cmd.Type)
	if !dashboard.KnownCardType(cardType) {
		return fmt.Errorf("painelctl: unknown card type %q (known: %s)", cmd.Type, knownTypes())
	}
	packPath, err := filepath.Abs(cmd.PackPath)
	if err != nil {
		return fmt.Errorf("painelctl: resolve pack path: %w", err)
	}
	doc, err := loadOrInitPack(packPath, cmd.Department)
	if err != nil {
		return err
	}

	icon := cmd.Icon
	if icon == "" {
		icon = strcase.ToKebab(cmd.Title)
	}
	entry := dashboard.PackCard{
		Template: dashboard.CardTemplate{
			Type:   cardType,
			Title:  cmd.Title,
			Path:   cmd.Path,
			IconID: icon,
			Color:  cmd.Color,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	replaced := false
	for idx := range doc.Cards {
		if doc.Cards[idx].Template.Title == cmd.Title {
			if !cmd.Overwrite {
				return fmt.Errorf("painelctl: pack already defines card %q (use --overwrite to replace)", cmd.Title)
			}
			doc.Cards[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Cards = append(doc.Cards, entry)
	}
	sort.Slice(doc.Cards, func(i, j int) bool {
		return doc.Cards[i].Template.Title < doc.Cards[j].Template.Title
	})

	if err := writePack(packPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %q to %s\n", cmd.Title, packPath)
	return nil
}

func (cmd *exportCmd) Run(ctx context.Context) error {
	store, err := sqlitestore.Open(cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	service := dashboard.NewService(dashboard.Options{ConfigStore: store})
	viewer := viewerForScope(cmd.ScopeKey)
	data, err := service.Export(ctx, viewer)
	if err != nil {
		return err
	}
	if cmd.Out == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(cmd.Out, data, 0o644); err != nil {
		return fmt.Errorf("painelctl: write export: %w", err)
	}
	fmt.Fprintf(os.Stdout, "✓ Exported %s to %s\n", cmd.ScopeKey, cmd.Out)
	return nil
}

func (cmd *importCmd) Run(ctx context.Context) error {
	store, err := sqlitestore.Open(cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("painelctl: read document: %w", err)
	}

	service := dashboard.NewService(dashboard.Options{ConfigStore: store})
	viewer := viewerForScope(cmd.ScopeKey)
	layout, warnings, err := service.Import(ctx, viewer, data)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	if err := service.Save(ctx, viewer); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Imported %d cards into %s\n", len(layout.Cards), cmd.ScopeKey)
	return nil
}

// viewerForScope splits a persisted scope key back into its viewer parts.
func viewerForScope(scopeKey string) dashboard.ViewerContext {
	if idx := strings.Index(scopeKey, "::"); idx >= 0 {
		return dashboard.ViewerContext{
			UserID:     scopeKey[:idx],
			Department: scopeKey[idx+2:],
		}
	}
	return dashboard.ViewerContext{UserID: scopeKey}
}

func loadOrInitPack(path, department string) (*dashboard.CardPackDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dashboard.CardPackDocument{
				Version:    dashboard.CardPackVersion,
				Department: department,
				Cards:      []dashboard.PackCard{},
				Source:     path,
			}, nil
		}
		return nil, fmt.Errorf("painelctl: stat pack: %w", err)
	}
	doc, err := dashboard.ReadCardPack(path)
	if err != nil {
		return nil, err
	}
	if department != "" && doc.Department != department {
		return nil, fmt.Errorf("painelctl: pack %s belongs to department %q, not %q", path, doc.Department, department)
	}
	return doc, nil
}

func writePack(path string, doc *dashboard.CardPackDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("painelctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("painelctl: create pack %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("painelctl: write pack: %w", err)
	}
	return nil
}

func knownTypes() string {
	types := dashboard.CardTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}
