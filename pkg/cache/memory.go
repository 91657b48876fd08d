// Package cache provides key-value caches with per-entry TTL.
// Both implementations return stale-or-missing as fresh=false so callers can refresh.
package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process cache. Expired entries are kept and returned as stale
// until overwritten or deleted, so callers can fall back to them when refresh fails.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache makes an empty in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memoryEntry{}, now: time.Now}
}

// Get returns cached value and whether it is still fresh, nil value on miss
func (c *MemoryCache) Get(_ context.Context, key string) (value []byte, fresh bool, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return e.value, c.now().Before(e.expiresAt), nil
}

// Set stores value for ttl
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}

// Close is a no-op
func (c *MemoryCache) Close() error { return nil }
