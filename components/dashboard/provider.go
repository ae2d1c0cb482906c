package dashboard

import "context"

// Provider fetches the data needed to render one card instance.
type Provider interface {
	Fetch(ctx context.Context, meta CardContext) (CardData, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, meta CardContext) (CardData, error)

// Fetch implements Provider.
func (f ProviderFunc) Fetch(ctx context.Context, meta CardContext) (CardData, error) {
	return f(ctx, meta)
}

// CardContext carries the metadata providers need to resolve content.
type CardContext struct {
	Card       Card
	Viewer     ViewerContext
	Translator TranslationService
}

// CardData is an opaque payload passed to templates.
type CardData map[string]any
