package demandas

import (
	"context"
	"sync"

	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// MockData seeds deterministic demandas responses for tests or local demos.
type MockData struct {
	Badges  map[string]int
	Origins []dashboard.OriginCount
	Demands []dashboard.DemandItem
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock demandas client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// Counts returns the configured badge counters for the requested cards.
func (c *MockClient) Counts(_ context.Context, _ dashboard.ViewerContext, cardIDs []string) (map[string]int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	counts := make(map[string]int, len(cardIDs))
	for _, id := range cardIDs {
		if count, ok := c.data.Badges[id]; ok {
			counts[id] = count
		}
	}
	return counts, nil
}

// OriginBreakdown returns the configured origin counts ignoring query filters.
func (c *MockClient) OriginBreakdown(context.Context, dashboard.OriginQuery) ([]dashboard.OriginCount, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]dashboard.OriginCount, len(c.data.Origins))
	copy(out, c.data.Origins)
	return out, nil
}

// InProgress returns the configured demandas capped at limit.
func (c *MockClient) InProgress(_ context.Context, _ dashboard.ViewerContext, limit int) ([]dashboard.DemandItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := c.data.Demands
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	out := make([]dashboard.DemandItem, len(items))
	copy(out, items)
	return out, nil
}

// SetBadge updates a badge counter, for demos that mutate state at runtime.
func (c *MockClient) SetBadge(cardID string, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data.Badges == nil {
		c.data.Badges = map[string]int{}
	}
	c.data.Badges[cardID] = count
}
