package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheMemoizesRender(t *testing.T) {
	cache := NewChartCache(50 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "<div>chart</div>", nil
	}

	first, err := cache.GetOrRender("origin:30d", render)
	require.NoError(t, err)
	second, err := cache.GetOrRender("origin:30d", render)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestChartCacheExpiresEntries(t *testing.T) {
	cache := NewChartCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("origin:7d", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrRender("origin:7d", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestChartCacheDoesNotStoreFailures(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("render failed")
		}
		return "ok", nil
	}

	_, err := cache.GetOrRender("flaky", render)
	require.Error(t, err)
	html, err := cache.GetOrRender("flaky", render)
	require.NoError(t, err)
	assert.Equal(t, "ok", html)
	assert.Equal(t, 2, calls)
}

func TestOptionsHashStable(t *testing.T) {
	opts := map[string]any{"period": "30d", "theme": "walden"}
	assert.Equal(t, optionsHash(opts), optionsHash(opts))
	assert.NotEqual(t, optionsHash(opts), optionsHash(map[string]any{"period": "7d"}))
	assert.Equal(t, "empty", optionsHash(nil))
}
