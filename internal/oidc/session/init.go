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
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asgardeo/oidclogout/internal/system/config"
	"github.com/asgardeo/oidclogout/internal/system/log"
)

const (
	// SessionStateStoreName is the name of the store holding the browser session states.
	SessionStateStoreName = "SessionStateCache"
	// PendingLogoutStoreName is the name of the store holding logout requests awaiting consent.
	PendingLogoutStoreName = "PendingLogoutRequestCache"

	pendingKeyPrefix = "pending:"
	redisPingTimeout = 5 * time.Second
	inMemoryCapacity = 100000
)

// Stores groups the session state store and the store of logout requests awaiting consent.
type Stores struct {
	SessionStates   SessionStateStoreInterface
	PendingRequests SessionStateStoreInterface
	closeFunc       func() error
}

// Close releases the resources held by the stores.
func (s *Stores) Close() error {
	if s.closeFunc == nil {
		return nil
	}
	return s.closeFunc()
}

// Initialize creates the stores selected by the session configuration.
func Initialize(ctx context.Context, cfg *config.Config) (*Stores, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SessionStoreInit"))

	sessionTTL := time.Duration(cfg.Session.TTL) * time.Second
	pendingTTL := time.Duration(cfg.OAuth.Logout.PendingRequestTTL) * time.Second

	if cfg.Session.Store != config.SessionStoreRedis {
		logger.Warn("Using the in-memory session state store, which only holds states added by this process")
		return &Stores{
			SessionStates:   NewInMemoryStore(SessionStateStoreName, inMemoryCapacity, sessionTTL),
			PendingRequests: NewInMemoryStore(PendingLogoutStoreName, inMemoryCapacity, pendingTTL),
		}, nil
	}

	redisCfg := cfg.Session.Redis
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Username: redisCfg.Username,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", redisCfg.Address, err)
	}

	logger.Info("Using redis session state store", log.String("address", redisCfg.Address))
	return &Stores{
		SessionStates:   NewRedisStore(SessionStateStoreName, client, redisCfg.KeyPrefix, sessionTTL),
		PendingRequests: NewRedisStore(PendingLogoutStoreName, client, redisCfg.KeyPrefix+pendingKeyPrefix, pendingTTL),
		closeFunc:       client.Close,
	}, nil
}
