// Package infra provides shared infrastructure for the deskfit MCP server:
// a TTL cache with LRU eviction, a circuit breaker, and request deduplication.
// Every HTTP-backed tool client builds on these pieces.
package infra

import (
	"container/list"
	"sync"
	"time"

	"github.com/deskfit/deskfit-mcp-server/metrics"
)

const (
	// DefaultMaxCacheEntries bounds memory used by cached API responses
	DefaultMaxCacheEntries = 1000

	// DefaultCacheSweep is how often expired entries are swept out
	DefaultCacheSweep = 5 * time.Minute
)

type cacheEntry struct {
	key       string
	value     any
	expiresAt time.Time
	elem      *list.Element // position in the LRU list
}

// Cache is a TTL cache with LRU eviction. All methods are safe for
// concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	order      *list.List // front = most recently used
	maxEntries int

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewCache creates a cache holding at most maxEntries values. A non-positive
// limit falls back to DefaultMaxCacheEntries. A background goroutine sweeps
// expired entries until Close is called.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	c := &Cache{
		entries:    make(map[string]*cacheEntry),
		order:      list.New(),
		maxEntries: maxEntries,
		stopCh:     make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Get returns the cached value for key if present and not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		metrics.RecordCacheAccess(false)
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeLocked(e)
		metrics.RecordCacheAccess(false)
		return nil, false
	}
	c.order.MoveToFront(e.elem)
	metrics.RecordCacheAccess(true)
	return e.value, true
}

// Set stores value under key for the given TTL, evicting the least recently
// used entries if the cache is full.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(ttl)
		c.order.MoveToFront(e.elem)
		return
	}

	e := &cacheEntry{key: key, value: value, expiresAt: time.Now().Add(ttl)}
	e.elem = c.order.PushFront(e)
	c.entries[key] = e

	for len(c.entries) > c.maxEntries {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.removeLocked(oldest.Value.(*cacheEntry))
		metrics.CacheEvictions.Inc()
	}
	metrics.SetCacheSize(int64(len(c.entries)))
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.removeLocked(e)
	}
}

// Size returns the current number of entries.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the background sweeper.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *Cache) removeLocked(e *cacheEntry) {
	c.order.Remove(e.elem)
	delete(c.entries, e.key)
	metrics.SetCacheSize(int64(len(c.entries)))
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(DefaultCacheSweep)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if now.After(e.expiresAt) {
			c.removeLocked(e)
		}
	}
}
