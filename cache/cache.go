// Package cache is a process-local, TTL-keyed read-through cache for
// expensive aggregate reads. Callers check the cache first, recompute and
// repopulate on a miss; writers never update the cache directly, they only
// invalidate by prefix so the next reader repopulates from the store.
package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL applies to low-churn listings; high-churn callers pass a
// shorter one.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value  any
	expiry time.Time
}

// Cache maps keys to (value, expiry). Constructed once per process and
// injected; no hidden statics. Not coherent across processes.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Get returns the cached value if present and not expired. Expired entries
// are lazily evicted on access, not proactively swept.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiry) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry.
		if cur, ok := c.entries[key]; ok && time.Now().After(cur.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set overwrites unconditionally.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiry: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate removes every key sharing the given semantic prefix
// ("orders", "reviews", "stats", ...). Call sites know the category but
// not every derived key variant in play.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Len reports the number of live entries, expired or not. Used by tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
