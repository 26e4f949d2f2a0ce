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

package session

import (
	"context"
	"time"

	"github.com/asgardeo/oidclogout/internal/system/cache"
	"github.com/asgardeo/oidclogout/internal/system/metrics"
)

// inMemoryStore is a SessionStateStoreInterface backed by an in-memory cache.
type inMemoryStore struct {
	name  string
	cache cache.CacheInterface[SessionCacheEntry]
}

// NewInMemoryStore creates an in-memory store whose entries expire after the TTL.
func NewInMemoryStore(name string, size int, ttl time.Duration) SessionStateStoreInterface {
	return &inMemoryStore{
		name:  name,
		cache: cache.NewInMemoryCache[SessionCacheEntry](name, size, ttl),
	}
}

// Add stores a copy of the entry.
func (s *inMemoryStore) Add(_ context.Context, id string, entry SessionCacheEntry) error {
	return s.cache.Set(cache.CacheKey{Key: id}, entry.clone())
}

// Lookup returns a copy of the stored entry.
func (s *inMemoryStore) Lookup(_ context.Context, id string) (SessionCacheEntry, bool, error) {
	if id == "" {
		return SessionCacheEntry{}, false, nil
	}
	entry, ok := s.cache.Get(cache.CacheKey{Key: id})
	if !ok {
		return SessionCacheEntry{}, false, nil
	}
	return entry.clone(), true, nil
}

// Invalidate removes the entry atomically.
func (s *inMemoryStore) Invalidate(_ context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	_, existed := s.cache.Take(cache.CacheKey{Key: id})
	metrics.ObserveSessionInvalidation(s.name, existed)
	return existed, nil
}
