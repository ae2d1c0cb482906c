package dashboard

import (
	"fmt"
	"sync"
)

// CardHook lets packages register providers during init().
type CardHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []CardHook
)

// RegisterCardHook registers a hook executed against new registries.
func RegisterCardHook(h CardHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry dispatches card types to provider implementations. The card
// type set is closed: registering a provider for an unknown type fails,
// and types without a dedicated provider fall back to the navigation
// provider so every card still renders.
type Registry struct {
	mu        sync.RWMutex
	providers map[CardType]Provider
	fallback  Provider
}

// NewRegistry builds a registry with the default providers and applies
// global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		providers: map[CardType]Provider{},
		fallback:  NavigationProvider(),
	}
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

func (r *Registry) registerDefaults() {
	for typ, provider := range defaultProviders() {
		_ = r.Register(typ, provider)
	}
}

// ApplyHooks executes registered card hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// Register associates a provider with a card type.
func (r *Registry) Register(typ CardType, provider Provider) error {
	if !KnownCardType(typ) {
		return fmt.Errorf("dashboard: unknown card type %q", typ)
	}
	if provider == nil {
		return fmt.Errorf("dashboard: provider cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[typ] = provider
	return nil
}

// Provider returns the provider for a card type, falling back to the
// navigation provider when none is registered.
func (r *Registry) Provider(typ CardType) Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if provider, ok := r.providers[typ]; ok {
		return provider
	}
	return r.fallback
}

// Registered reports whether a dedicated provider exists for the type.
func (r *Registry) Registered(typ CardType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[typ]
	return ok
}
