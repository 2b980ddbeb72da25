package tablestore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climatquartier/scenario-service/internal/domain"
)

// --- mock for cache tests ---

type countingStore struct {
	calls  int
	fields map[string]float64
	found  bool
	err    error
}

func (m *countingStore) FetchBaseline(_ context.Context, _ string, _ domain.ScenarioID, _ domain.Horizon) (map[string]float64, bool, error) {
	m.calls++
	return m.fields, m.found, m.err
}

// --- CachedStore tests ---

func TestCachedStore_CacheHit(t *testing.T) {
	inner := &countingStore{fields: map[string]float64{"temp": 15.0}, found: true}
	cached := NewCachedStore(inner, 10, testMetrics())

	f1, found, err := cached.FetchBaseline(context.Background(), "cergy", domain.ScenarioSSP2, domain.Horizon2030)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 15.0, f1["temp"])

	f2, found, err := cached.FetchBaseline(context.Background(), "cergy", domain.ScenarioSSP2, domain.Horizon2030)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 15.0, f2["temp"])

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedStore_ReturnedMapIsACopy(t *testing.T) {
	inner := &countingStore{fields: map[string]float64{"temp": 15.0}, found: true}
	cached := NewCachedStore(inner, 10, testMetrics())

	f1, _, _ := cached.FetchBaseline(context.Background(), "cergy", domain.ScenarioSSP2, domain.Horizon2030)
	f1["temp"] = -99

	f2, _, _ := cached.FetchBaseline(context.Background(), "cergy", domain.ScenarioSSP2, domain.Horizon2030)
	assert.Equal(t, 15.0, f2["temp"])
}

func TestCachedStore_DifferentKeysMiss(t *testing.T) {
	inner := &countingStore{fields: map[string]float64{"icu": 2}, found: true}
	cached := NewCachedStore(inner, 10, testMetrics())

	ctx := context.Background()
	_, _, _ = cached.FetchBaseline(ctx, "cergy", domain.ScenarioSSP2, domain.Horizon2030)
	_, _, _ = cached.FetchBaseline(ctx, "cergy", domain.ScenarioSSP5, domain.Horizon2030)
	_, _, _ = cached.FetchBaseline(ctx, "cergy", domain.ScenarioSSP2, domain.Horizon2050)
	_, _, _ = cached.FetchBaseline(ctx, "annecy", domain.ScenarioSSP2, domain.Horizon2030)

	assert.Equal(t, 4, inner.calls)
}

func TestCachedStore_CurrentIgnoresScenario(t *testing.T) {
	inner := &countingStore{fields: map[string]float64{"icu": 2}, found: true}
	cached := NewCachedStore(inner, 10, testMetrics())

	ctx := context.Background()
	_, _, _ = cached.FetchBaseline(ctx, "cergy", domain.ScenarioSSP2, domain.HorizonCurrent)
	_, _, _ = cached.FetchBaseline(ctx, "cergy", domain.ScenarioSSP5, domain.HorizonCurrent)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedStore_DoesNotCacheMissesOrErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		inner := &countingStore{found: false}
		cached := NewCachedStore(inner, 10, testMetrics())

		_, _, _ = cached.FetchBaseline(ctx, "cergy", domain.ScenarioSSP2, domain.Horizon2030)
		_, _, _ = cached.FetchBaseline(ctx, "cergy", domain.ScenarioSSP2, domain.Horizon2030)
		assert.Equal(t, 2, inner.calls)
	})

	t.Run("error", func(t *testing.T) {
		inner := &countingStore{err: errors.New("unavailable")}
		cached := NewCachedStore(inner, 10, testMetrics())

		_, _, err := cached.FetchBaseline(ctx, "cergy", domain.ScenarioSSP2, domain.Horizon2030)
		require.Error(t, err)
		_, _, _ = cached.FetchBaseline(ctx, "cergy", domain.ScenarioSSP2, domain.Horizon2030)
		assert.Equal(t, 2, inner.calls)
		assert.Zero(t, cached.cache.size())
	})
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", map[string]float64{"temp": 1})
	c.put("b", map[string]float64{"temp": 2})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 1.0, result["temp"])

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", map[string]float64{"temp": 1})
	c.put("b", map[string]float64{"temp": 2})
	c.put("c", map[string]float64{"temp": 3}) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, 2.0, result["temp"])

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 3.0, result["temp"])
	assert.Equal(t, 2, c.size())
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", map[string]float64{"temp": 1})
	c.put("b", map[string]float64{"temp": 2})

	c.get("a")

	// "b" is now least recently used.
	c.put("c", map[string]float64{"temp": 3})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", map[string]float64{"temp": 1})
	c.put("a", map[string]float64{"temp": 2})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 2.0, result["temp"])
	assert.Equal(t, 1, c.size())
}
