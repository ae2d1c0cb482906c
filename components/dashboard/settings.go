package dashboard

import (
	"context"
	"fmt"
	"sync"
)

const maxRecentSearches = 10

// Settings holds per-user dashboard preferences outside the layout itself.
type Settings struct {
	WelcomeShown   bool     `json:"welcomeShown"`
	RecentSearches []string `json:"recentSearches"`
}

// SettingsStore persists per-user settings keyed by user id.
type SettingsStore interface {
	LoadSettings(ctx context.Context, userID string) (Settings, error)
	SaveSettings(ctx context.Context, userID string, settings Settings) error
}

// InMemorySettingsStore provides a concurrency-safe default settings store.
type InMemorySettingsStore struct {
	mu   sync.RWMutex
	data map[string]Settings
}

// NewInMemorySettingsStore creates an empty settings store.
func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		data: make(map[string]Settings),
	}
}

// LoadSettings returns stored settings or zero-value defaults.
func (s *InMemorySettingsStore) LoadSettings(_ context.Context, userID string) (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings, ok := s.data[userID]
	if !ok {
		return Settings{}, nil
	}
	settings.RecentSearches = append([]string(nil), settings.RecentSearches...)
	return settings, nil
}

// SaveSettings persists settings for a user.
func (s *InMemorySettingsStore) SaveSettings(_ context.Context, userID string, settings Settings) error {
	if userID == "" {
		return fmt.Errorf("settings store requires a user id")
	}
	settings.RecentSearches = capSearches(settings.RecentSearches)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = settings
	return nil
}

// RecordSearch prepends a search term, dedupes it and caps the history.
func RecordSearch(settings Settings, term string) Settings {
	if term == "" {
		return settings
	}
	searches := make([]string, 0, len(settings.RecentSearches)+1)
	searches = append(searches, term)
	for _, prev := range settings.RecentSearches {
		if prev == term {
			continue
		}
		searches = append(searches, prev)
	}
	settings.RecentSearches = capSearches(searches)
	return settings
}

func capSearches(searches []string) []string {
	if len(searches) <= maxRecentSearches {
		return searches
	}
	return searches[:maxRecentSearches]
}
