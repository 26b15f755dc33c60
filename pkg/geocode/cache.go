package geocode

import (
	"sync"
	"time"
)

// CacheTTL is how long a cached geocoding result stays valid.
const CacheTTL = 24 * time.Hour

type cacheEntry struct {
	value     interface{}
	timestamp time.Time
}

// Cache is an in-process store for geocoding results. Entries expire after
// CacheTTL and are evicted lazily on the next access; there is no background
// sweep and no capacity bound. Concurrent fills of the same key are
// last-write-wins: geocoding results are re-fetchable, so the stale window
// is accepted rather than coordinated away.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the value stored under key, or a miss when the key is absent
// or its entry has aged past CacheTTL. A stale entry is dropped on the spot.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.timestamp) >= CacheTTL {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Put stores value under key with the current timestamp, unconditionally
// overwriting any prior entry.
func (c *Cache) Put(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, timestamp: c.now()}
}

// Len reports how many entries are held, stale ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
