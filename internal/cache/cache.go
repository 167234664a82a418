// Package cache provides a generic in-memory TTL cache shared across
// SSH sessions.
package cache

import (
	"sync"
	"time"
)

// item holds a cached value with its expiration time.
type item[V any] struct {
	value    V
	deadline time.Time
}

// Cache is a generic TTL cache with mutex protection.
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]item[V]
	ttl   time.Duration
	clock func() time.Time // For testing
}

// New creates a cache whose entries expire after ttl.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]item[V]),
		ttl:   ttl,
		clock: time.Now,
	}
}

// Get retrieves a value. The second return is false when the key is
// missing or its entry has expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok || c.clock().After(it.deadline) {
		var zero V
		return zero, false
	}
	return it.value, true
}

// Set stores a value under key with the configured TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item[V]{
		value:    value,
		deadline: c.clock().Add(c.ttl),
	}
}

// Delete removes the entry for key, if any.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]item[V])
}

// Prune drops expired entries. A long-running server calls this
// periodically so stale catalogs do not pile up.
func (c *Cache[K, V]) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	for key, it := range c.items {
		if now.After(it.deadline) {
			delete(c.items, key)
		}
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
