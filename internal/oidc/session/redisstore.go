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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asgardeo/oidclogout/internal/system/metrics"
)

// redisStore is a SessionStateStoreInterface backed by Redis, for deployments where
// several server instances share the session state.
type redisStore struct {
	name      string
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore creates a Redis backed store. Keys are namespaced with the prefix.
func NewRedisStore(name string, client redis.UniversalClient, keyPrefix string,
	ttl time.Duration) SessionStateStoreInterface {
	return &redisStore{
		name:      name,
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Add stores the entry with the configured expiry.
func (s *redisStore) Add(ctx context.Context, id string, entry SessionCacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode session entry: %w", err)
	}
	return s.client.Set(ctx, s.key(id), data, s.ttl).Err()
}

// Lookup returns the entry stored under the identifier.
func (s *redisStore) Lookup(ctx context.Context, id string) (SessionCacheEntry, bool, error) {
	if id == "" {
		return SessionCacheEntry{}, false, nil
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return SessionCacheEntry{}, false, nil
	}
	if err != nil {
		return SessionCacheEntry{}, false, fmt.Errorf("failed to read session entry: %w", err)
	}

	var entry SessionCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return SessionCacheEntry{}, false, fmt.Errorf("failed to decode session entry: %w", err)
	}
	return entry, true, nil
}

// Invalidate deletes the entry. DEL reports the number of removed keys, so only one
// concurrent caller observes the entry as existing.
func (s *redisStore) Invalidate(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	removed, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete session entry: %w", err)
	}
	metrics.ObserveSessionInvalidation(s.name, removed > 0)
	return removed > 0, nil
}

// key returns the namespaced Redis key of the identifier.
func (s *redisStore) key(id string) string {
	return s.keyPrefix + id
}
