package tenant

import (
	"slices"
	"sync"
	"time"

	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
)

type cacheEntry struct {
	options   []query.Option
	fetchedAt time.Time
}

// OptionCache keeps fetched dropdown options for a limited time.
type OptionCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewOptionCache returns an empty cache whose entries expire after ttl.
func NewOptionCache(ttl time.Duration) *OptionCache {
	return &OptionCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns a copy of the options stored under key if still fresh.
func (c *OptionCache) Get(key string) ([]query.Option, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return slices.Clone(entry.options), true
}

// Put stores options under key.
func (c *OptionCache) Put(key string, options []query.Option) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{options: slices.Clone(options), fetchedAt: c.now()}
}

// Prune drops expired entries and returns how many were removed.
func (c *OptionCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for key, entry := range c.entries {
		if now.Sub(entry.fetchedAt) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, fresh or not.
func (c *OptionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
