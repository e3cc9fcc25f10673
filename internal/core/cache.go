package core

// cache.go memoizes fetched CSV bodies by resource path.
//
// Concurrent misses for the same key share one load (singleflight), so a
// burst of page views triggers a single upstream fetch. Each waiting caller
// can still give up on its own context. Failed loads are never stored.

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a fetched body is served before re-fetching.
const DefaultCacheTTL = 5 * time.Minute

// LoadFunc produces the body for a cache miss.
type LoadFunc func(ctx context.Context) (string, error)

type cacheEntry struct {
	text      string
	fetchedAt time.Time
}

// Cache holds fetched bodies keyed by resource path.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	gens    map[string]uint64 // bumped on invalidation; every key ever loaded
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a cache. A ttl <= 0 keeps entries until invalidated.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
		gens:    make(map[string]uint64),
	}
}

// Get returns the cached body for key, calling load on a miss. hit reports
// whether the body came from the cache.
func (c *Cache) Get(ctx context.Context, key string, load LoadFunc) (text string, hit bool, err error) {
	if text, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return text, true, nil
	}
	c.misses.Add(1)

	// The shared load must outlive any single caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		gen := c.generation(key)
		text, err := load(loadCtx)
		if err != nil {
			return "", err
		}
		c.store(key, gen, text)
		return text, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", false, res.Err
		}
		return res.Val.(string), false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (c *Cache) lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.ttl > 0 && c.now().Sub(e.fetchedAt) >= c.ttl {
		return "", false
	}
	return e.text, true
}

// generation registers key and returns its current invalidation count.
func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen, ok := c.gens[key]
	if !ok {
		c.gens[key] = 0
	}
	return gen
}

// store keeps text unless key was invalidated after the load began.
func (c *Cache) store(key string, gen uint64, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return
	}
	c.entries[key] = cacheEntry{text: text, fetchedAt: c.now()}
}

// Invalidate drops key. A load already in flight is detached: the next Get
// starts a fresh one and the detached result is never stored.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.gens[key]++
	c.mu.Unlock()
	c.group.Forget(key)
}

// InvalidateAll drops every entry and detaches every in-flight load.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.gens))
	for k := range c.gens {
		keys = append(keys, k)
		c.gens[k]++
	}
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()

	for _, k := range keys {
		c.group.Forget(k)
	}
}

// CacheStatus is a snapshot of cache counters for monitoring.
type CacheStatus struct {
	Entries int           `json:"entries"`
	Hits    int64         `json:"hits"`
	Misses  int64         `json:"misses"`
	TTL     time.Duration `json:"ttl"`
}

// Status returns the current cache counters.
func (c *Cache) Status() CacheStatus {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()

	return CacheStatus{
		Entries: n,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		TTL:     c.ttl,
	}
}
