package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML so repeated card fetches are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache is an in-memory RenderCache with a fixed TTL per entry.
// Render failures are never stored.
type ChartCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]chartEntry
}

type chartEntry struct {
	html     string
	renderAt time.Time
}

// NewChartCache builds a cache with the provided TTL. A zero or negative
// TTL yields a cache that always re-renders.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		entries: make(map[string]chartEntry),
	}
}

// GetOrRender returns the cached HTML for key, rendering and storing it
// when absent or expired.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}

	now := time.Now()

	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && now.Sub(entry.renderAt) < c.ttl {
		c.mu.Unlock()
		return entry.html, nil
	}
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	html, err := render()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = chartEntry{html: html, renderAt: now}
	c.mu.Unlock()
	return html, nil
}

// optionsHash fingerprints card options for use in cache keys.
func optionsHash(opts map[string]any) string {
	if len(opts) == 0 {
		return "empty"
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
