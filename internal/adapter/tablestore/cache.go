package tablestore

import (
	"container/list"
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/climatquartier/scenario-service/internal/domain"
	"github.com/climatquartier/scenario-service/internal/observability"
)

// CachedStore wraps a BaselineStore with an in-memory LRU cache.
type CachedStore struct {
	inner   domain.BaselineStore
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedStore creates a cache decorator around a baseline store.
func NewCachedStore(inner domain.BaselineStore, maxEntries int, metrics *observability.Metrics) *CachedStore {
	return &CachedStore{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// FetchBaseline serves cached rows and fills the cache from the inner store.
func (c *CachedStore) FetchBaseline(ctx context.Context, zone string, scenario domain.ScenarioID, horizon domain.Horizon) (map[string]float64, bool, error) {
	key := cacheKey(zone, scenario, horizon)
	if fields, ok := c.cache.get(key); ok {
		c.metrics.TableStoreCache.WithLabelValues("hit").Inc()
		return maps.Clone(fields), true, nil
	}
	c.metrics.TableStoreCache.WithLabelValues("miss").Inc()

	fields, found, err := c.inner.FetchBaseline(ctx, zone, scenario, horizon)
	if err != nil || !found {
		// Misses are not cached so rows added later are picked up.
		return fields, found, err
	}
	c.cache.put(key, maps.Clone(fields))
	return fields, true, nil
}

func cacheKey(zone string, scenario domain.ScenarioID, horizon domain.Horizon) string {
	if horizon == domain.HorizonCurrent {
		return fmt.Sprintf("%s|current", zone)
	}
	return fmt.Sprintf("%s|%s|%d", zone, scenario, horizon)
}

// lruCache is a mutex-guarded LRU of table rows. The front of order is the
// most recently used row.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List
	rows       map[string]*list.Element
}

type cachedRow struct {
	key    string
	fields map[string]float64
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		order:      list.New(),
		rows:       make(map[string]*list.Element),
	}
}

func (c *lruCache) get(key string) (map[string]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.rows[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cachedRow).fields, true
}

func (c *lruCache) put(key string, fields map[string]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.rows[key]; ok {
		el.Value.(*cachedRow).fields = fields
		c.order.MoveToFront(el)
		return
	}

	c.rows[key] = c.order.PushFront(&cachedRow{key: key, fields: fields})
	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.rows, oldest.Value.(*cachedRow).key)
	}
}

func (c *lruCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
