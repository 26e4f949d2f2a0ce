/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/asgardeo/oidclogout/internal/system/log"
)

// inMemoryCacheEntry represents an entry in the in-memory cache with its position in the LRU list.
type inMemoryCacheEntry[T any] struct {
	*CacheEntry[T]
	listElement *list.Element
}

// inMemoryCache implements the CacheInterface for an in-memory LRU cache.
type inMemoryCache[T any] struct {
	enabled     bool
	name        string
	cache       map[CacheKey]*inMemoryCacheEntry[T]
	accessOrder *list.List
	mu          sync.Mutex
	size        int
	ttl         time.Duration
	hitCount    int64
	missCount   int64
	evictCount  int64
}

// newInMemoryCache creates a new instance of inMemoryCache.
func newInMemoryCache[T any](name string, enabled bool, size int, ttl time.Duration) *inMemoryCache[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "InMemoryCache"),
		log.String("name", name))

	if !enabled {
		logger.Warn("In-memory cache is disabled, returning empty cache")
		return &inMemoryCache[T]{
			name:    name,
			enabled: false,
		}
	}

	cacheSize := size
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cacheTTL := ttl
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL * time.Second
	}

	logger.Debug("Initializing In-memory cache", log.Int("size", cacheSize), log.Any("ttl", cacheTTL))

	return &inMemoryCache[T]{
		enabled:     true,
		name:        name,
		cache:       make(map[CacheKey]*inMemoryCacheEntry[T]),
		accessOrder: list.New(),
		size:        cacheSize,
		ttl:         cacheTTL,
	}
}

// Set adds or updates an entry in the cache.
func (c *inMemoryCache[T]) Set(key CacheKey, value T) error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiryTime := time.Now().Add(c.ttl)
	if existingEntry, exists := c.cache[key]; exists {
		existingEntry.Value = value
		existingEntry.ExpiryTime = expiryTime
		c.accessOrder.MoveToFront(existingEntry.listElement)
		return nil
	}

	c.cache[key] = &inMemoryCacheEntry[T]{
		CacheEntry: &CacheEntry[T]{
			Value:      value,
			ExpiryTime: expiryTime,
		},
		listElement: c.accessOrder.PushFront(key),
	}

	if len(c.cache) > c.size {
		c.evict()
	}
	return nil
}

// Get retrieves a value from the cache.
func (c *inMemoryCache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.cache[key]
	if !exists {
		c.missCount++
		return zero, false
	}
	if time.Now().After(entry.ExpiryTime) {
		c.deleteEntry(key, entry)
		c.missCount++
		return zero, false
	}

	c.accessOrder.MoveToFront(entry.listElement)
	c.hitCount++
	return entry.Value, true
}

// Take atomically removes an entry and returns its value.
// Only one of any number of concurrent callers for the same key observes the entry.
func (c *inMemoryCache[T]) Take(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.cache[key]
	if !exists {
		c.missCount++
		return zero, false
	}
	c.deleteEntry(key, entry)
	if time.Now().After(entry.ExpiryTime) {
		c.missCount++
		return zero, false
	}

	c.hitCount++
	return entry.Value, true
}

// Delete removes an entry from the cache.
func (c *inMemoryCache[T]) Delete(key CacheKey) error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.cache[key]; exists {
		c.deleteEntry(key, entry)
	}
	return nil
}

// Clear removes all entries from the cache.
func (c *inMemoryCache[T]) Clear() error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[CacheKey]*inMemoryCacheEntry[T])
	c.accessOrder.Init()
	c.hitCount = 0
	c.missCount = 0
	c.evictCount = 0
	return nil
}

// IsEnabled returns whether the cache is enabled.
func (c *inMemoryCache[T]) IsEnabled() bool {
	return c.enabled
}

// GetName returns the name of the cache.
func (c *inMemoryCache[T]) GetName() string {
	return c.name
}

// GetStats returns the statistics of the cache.
func (c *inMemoryCache[T]) GetStats() CacheStat {
	if !c.enabled {
		return CacheStat{Enabled: false}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStat{
		Enabled:    true,
		Size:       len(c.cache),
		MaxSize:    c.size,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		EvictCount: c.evictCount,
	}
}

// CleanupExpired removes all expired entries from the cache.
func (c *inMemoryCache[T]) CleanupExpired() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.cache {
		if now.After(entry.ExpiryTime) {
			c.deleteEntry(key, entry)
			removed++
		}
	}

	if removed > 0 {
		log.GetLogger().Debug("Removed expired cache entries", log.String("name", c.name),
			log.Int("count", removed))
	}
}

// evict removes the least recently used entry. The caller must hold the lock.
func (c *inMemoryCache[T]) evict() {
	element := c.accessOrder.Back()
	if element == nil {
		return
	}
	key := element.Value.(CacheKey)
	if entry, exists := c.cache[key]; exists {
		c.deleteEntry(key, entry)
		c.evictCount++
	}
}

// deleteEntry removes an entry from the map and the access list. The caller must hold the lock.
func (c *inMemoryCache[T]) deleteEntry(key CacheKey, entry *inMemoryCacheEntry[T]) {
	c.accessOrder.Remove(entry.listElement)
	delete(c.cache, key)
}
