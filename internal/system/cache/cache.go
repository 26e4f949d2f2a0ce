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

// Package cache provides a generic in-memory cache with LRU eviction and entry expiry.
package cache

import (
	"time"

	"github.com/asgardeo/oidclogout/internal/system/config"
)

// CacheInterface defines the common operations of a named cache.
type CacheInterface[T any] interface {
	Set(key CacheKey, value T) error
	Get(key CacheKey) (T, bool)
	Take(key CacheKey) (T, bool)
	Delete(key CacheKey) error
	Clear() error
	IsEnabled() bool
	GetName() string
	GetStats() CacheStat
	CleanupExpired()
}

// GetCache returns a cache configured from the server runtime cache properties.
// Per-cache properties override the global cache configuration.
func GetCache[T any](name string) CacheInterface[T] {
	cacheConfig := config.GetServerRuntime().Config.Cache

	enabled := !cacheConfig.Disabled
	size := cacheConfig.Size
	ttl := cacheConfig.TTL
	for _, property := range cacheConfig.Properties {
		if property.Name != name {
			continue
		}
		if property.Disabled {
			enabled = false
		}
		if property.Size > 0 {
			size = property.Size
		}
		if property.TTL > 0 {
			ttl = property.TTL
		}
		break
	}

	c := newInMemoryCache[T](name, enabled, size, time.Duration(ttl)*time.Second)
	registerCache(c)
	return c
}

// NewInMemoryCache returns an always enabled in-memory cache with the given size and TTL.
// Zero values fall back to the defaults.
func NewInMemoryCache[T any](name string, size int, ttl time.Duration) CacheInterface[T] {
	c := newInMemoryCache[T](name, true, size, ttl)
	registerCache(c)
	return c
}
