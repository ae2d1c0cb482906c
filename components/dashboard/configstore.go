package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// ConfigStore is the persistence collaborator holding one configuration
// document per scope key. Load returns ErrConfigNotFound when no document
// exists; the service treats that as "seed from defaults". Saves are
// last-writer-wins: concurrent sessions for the same scope are not
// reconciled.
type ConfigStore interface {
	Load(ctx context.Context, scopeKey string) (ConfigDocument, error)
	Save(ctx context.Context, scopeKey string, doc ConfigDocument) error
}

// InMemoryConfigStore provides a concurrency-safe default store for tests
// and single-process deployments.
type InMemoryConfigStore struct {
	mu   sync.RWMutex
	docs map[string]ConfigDocument
}

// NewInMemoryConfigStore creates an empty config store.
func NewInMemoryConfigStore() *InMemoryConfigStore {
	return &InMemoryConfigStore{
		docs: make(map[string]ConfigDocument),
	}
}

// Load returns the stored document for the scope key.
func (s *InMemoryConfigStore) Load(_ context.Context, scopeKey string) (ConfigDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[scopeKey]
	if !ok {
		return ConfigDocument{}, fmt.Errorf("scope %s: %w", scopeKey, ErrConfigNotFound)
	}
	return cloneDocument(doc), nil
}

// Save stores the document for the scope key, replacing any previous version.
func (s *InMemoryConfigStore) Save(_ context.Context, scopeKey string, doc ConfigDocument) error {
	if scopeKey == "" {
		return fmt.Errorf("config store requires a scope key: %w", ErrPersistence)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[scopeKey] = cloneDocument(doc)
	return nil
}

func cloneDocument(doc ConfigDocument) ConfigDocument {
	out := doc
	out.CardsConfig = cloneCards(doc.CardsConfig)
	return out
}
