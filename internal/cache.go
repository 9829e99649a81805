package internal

import (
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long a successful provider response may be reused
	DefaultTTL = 5 * time.Minute
)

type (
	// Cache is a time-boxed response cache keyed by call signature. There
	// is no per-key invalidation: an explicit refresh drops everything.
	Cache struct {
		mu      sync.RWMutex
		ttl     time.Duration
		entries map[string]cacheEntry
	}

	cacheEntry struct {
		value   interface{}
		created time.Time
	}
)

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// CacheKey builds the call signature for an endpoint and its parameters
func CacheKey(endpoint string, params ...string) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + strings.Join(params, "&")
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(e.created) > c.ttl {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{value: value, created: time.Now()}
}

// InvalidateAll drops the whole cache, e.g. on a user-triggered refresh
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
