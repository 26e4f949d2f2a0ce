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

// Package application wires the registered application lookup.
package application

import (
	"github.com/asgardeo/oidclogout/internal/application/service"
	"github.com/asgardeo/oidclogout/internal/application/store"
	"github.com/asgardeo/oidclogout/internal/system/config"
	"github.com/asgardeo/oidclogout/internal/system/log"
)

// Initialize creates the application service. Statically configured applications are served
// first; when an identity database is configured, the remaining clients are read through a cache.
func Initialize(cfg *config.Config) service.ApplicationServiceInterface {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ApplicationInit"))

	staticStore := store.NewStaticApplicationStore(cfg.Applications)
	logger.Debug("Loaded static application registrations", log.Int("count", staticStore.Len()))

	if cfg.Database.Identity.Type == "" {
		return service.NewApplicationService(staticStore)
	}

	dbStore := store.NewCachedBackedApplicationStore(store.NewApplicationStore())
	return service.NewApplicationService(store.NewChainedApplicationStore(staticStore, dbStore))
}
