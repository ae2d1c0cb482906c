package dashboard

import (
	"context"
	"sync"
)

// BadgeSource resolves live badge counts for a set of cards. Counts are
// render-time data: they never enter the stored configuration and a nil
// source simply means no badges.
type BadgeSource interface {
	Counts(ctx context.Context, viewer ViewerContext, cardIDs []string) (map[string]int, error)
}

// StaticBadgeSource serves fixed counts, useful for demos and tests.
type StaticBadgeSource struct {
	mu     sync.RWMutex
	counts map[string]int
}

// NewStaticBadgeSource creates a source with the given card id to count map.
func NewStaticBadgeSource(counts map[string]int) *StaticBadgeSource {
	out := make(map[string]int, len(counts))
	for id, count := range counts {
		out[id] = count
	}
	return &StaticBadgeSource{counts: out}
}

// Counts returns the subset of stored counts matching the requested ids.
func (s *StaticBadgeSource) Counts(_ context.Context, _ ViewerContext, cardIDs []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(cardIDs))
	for _, id := range cardIDs {
		if count, ok := s.counts[id]; ok {
			out[id] = count
		}
	}
	return out, nil
}

// Set updates the count for a card id.
func (s *StaticBadgeSource) Set(cardID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[cardID] = count
}
