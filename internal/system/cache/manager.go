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
	"context"
	"sync"
	"time"

	"github.com/asgardeo/oidclogout/internal/system/log"
)

// cleanable is implemented by caches that can drop their expired entries.
type cleanable interface {
	GetName() string
	CleanupExpired()
}

var (
	registry   []cleanable
	registryMu sync.Mutex
)

// registerCache adds a cache to the periodic cleanup registry.
func registerCache(c cleanable) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, c)
}

// StartCleanupRoutine periodically removes expired entries from all registered caches
// until the context is cancelled. A non-positive interval uses the default.
func StartCleanupRoutine(ctx context.Context, intervalSeconds int) {
	if intervalSeconds <= 0 {
		intervalSeconds = defaultCleanupInterval
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CacheManager"))
	logger.Debug("Starting cache cleanup routine", log.Int("intervalSeconds", intervalSeconds))

	ticker := time.NewTicker(time.Duration(intervalSeconds) * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Debug("Stopping cache cleanup routine")
				return
			case <-ticker.C:
				cleanupAll()
			}
		}
	}()
}

// cleanupAll runs a cleanup pass on every registered cache.
func cleanupAll() {
	registryMu.Lock()
	caches := make([]cleanable, len(registry))
	copy(caches, registry)
	registryMu.Unlock()

	for _, c := range caches {
		c.CleanupExpired()
	}
}
