package cache

import (
	"context"
	"sync"
	"time"

	"github.com/odlagro/apoiov/internal/observability"
)

// Loader fetches and normalizes one table. It may block on the network; the
// context carries the fetch timeout.
type Loader func(ctx context.Context) (any, error)

type entry struct {
	mu        sync.Mutex
	value     any
	fetchedAt time.Time
	loaded    bool
}

// Cache memoizes table loads for a bounded time. One entry per table id,
// each with its own mutex held across the staleness check and the fetch, so
// concurrent callers hitting a stale entry trigger exactly one load and all
// observe its result.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	now func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (c *Cache) entryFor(table string) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[table]
	if !ok {
		e = &entry{}
		c.entries[table] = e
	}
	return e
}

// GetOrRefresh returns the cached value for table while it is younger than
// ttl, otherwise runs load. On success the entry is replaced; on failure the
// error surfaces and the previous entry stays untouched, so the next access
// re-evaluates it instead of silently serving stale data.
func (c *Cache) GetOrRefresh(ctx context.Context, table string, ttl time.Duration, load Loader) (any, error) {
	e := c.entryFor(table)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loaded && c.now().Sub(e.fetchedAt) < ttl {
		observability.CacheHits.WithLabelValues(table).Inc()
		return e.value, nil
	}

	observability.CacheMisses.WithLabelValues(table).Inc()
	v, err := load(ctx)
	if err != nil {
		return nil, err
	}

	e.value = v
	e.fetchedAt = c.now()
	e.loaded = true
	return v, nil
}

// Invalidate drops the entry for table, forcing the next access to load.
func (c *Cache) Invalidate(table string) {
	c.mu.Lock()
	e, ok := c.entries[table]
	c.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	e.loaded = false
	e.value = nil
	e.mu.Unlock()
}
