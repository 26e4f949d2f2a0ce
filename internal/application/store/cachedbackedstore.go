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

package store

import (
	"context"

	"github.com/asgardeo/oidclogout/internal/application/model"
	"github.com/asgardeo/oidclogout/internal/system/cache"
	"github.com/asgardeo/oidclogout/internal/system/log"
)

// CachedBackedApplicationStore is the implementation of ApplicationStoreInterface that uses caching.
type CachedBackedApplicationStore struct {
	AppByClientIDCache cache.CacheInterface[*model.RegisteredApplication]
	Store              ApplicationStoreInterface
}

// NewCachedBackedApplicationStore creates a new instance of CachedBackedApplicationStore.
func NewCachedBackedApplicationStore(store ApplicationStoreInterface) ApplicationStoreInterface {
	return &CachedBackedApplicationStore{
		AppByClientIDCache: cache.GetCache[*model.RegisteredApplication]("ApplicationByClientIDCache"),
		Store:              store,
	}
}

// GetApplicationByClientID retrieves an application by client ID, using cache if available.
func (as *CachedBackedApplicationStore) GetApplicationByClientID(ctx context.Context,
	clientID string) (*model.RegisteredApplication, error) {
	cacheKey := cache.CacheKey{
		Key: clientID,
	}
	if cachedApp, ok := as.AppByClientIDCache.Get(cacheKey); ok {
		return cachedApp, nil
	}

	app, err := as.Store.GetApplicationByClientID(ctx, clientID)
	if err != nil || app == nil {
		return app, err
	}

	if cacheErr := as.AppByClientIDCache.Set(cacheKey, app); cacheErr != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ApplicationStore")).
			Error("Failed to cache application", log.String(log.LoggerKeyClientID, clientID),
				log.Error(cacheErr))
	}
	return app, nil
}
