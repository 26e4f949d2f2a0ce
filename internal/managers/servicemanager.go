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

// Package managers wires the server dependencies into the HTTP services.
package managers

import (
	"context"
	"errors"

	"github.com/go-chi/chi/v5"

	appservice "github.com/asgardeo/oidclogout/internal/application/service"
	"github.com/asgardeo/oidclogout/internal/cert"
	"github.com/asgardeo/oidclogout/internal/oidc/session"
	"github.com/asgardeo/oidclogout/internal/services"
	"github.com/asgardeo/oidclogout/internal/system/config"
	"github.com/asgardeo/oidclogout/internal/system/database/provider"
	"github.com/asgardeo/oidclogout/internal/system/healthcheck"
)

const readinessProbeKey = "readiness-probe"

// ServiceManagerInterface registers the HTTP services of the server.
type ServiceManagerInterface interface {
	RegisterServices() error
}

// Dependencies holds the components shared by the HTTP services.
type Dependencies struct {
	ApplicationService appservice.ApplicationServiceInterface
	KeyProvider        cert.KeyProviderInterface
	SessionStores      *session.Stores
}

// ServiceManager is the default implementation of ServiceManagerInterface.
type ServiceManager struct {
	router       chi.Router
	config       *config.Config
	dependencies Dependencies
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(router chi.Router, cfg *config.Config, deps Dependencies) ServiceManagerInterface {
	return &ServiceManager{
		router:       router,
		config:       cfg,
		dependencies: deps,
	}
}

// RegisterServices registers the logout and operations services.
func (sm *ServiceManager) RegisterServices() error {
	deps := sm.dependencies
	if deps.ApplicationService == nil || deps.KeyProvider == nil || deps.SessionStores == nil {
		return errors.New("service dependencies are not initialized")
	}

	services.NewLogoutService(sm.router, sm.config, deps.ApplicationService, deps.KeyProvider,
		deps.SessionStores)
	services.NewOperationsService(sm.router, sm.newHealthCheckService())

	return nil
}

// newHealthCheckService registers a readiness check per external dependency.
func (sm *ServiceManager) newHealthCheckService() *healthcheck.HealthCheckService {
	healthService := healthcheck.NewHealthCheckService()

	sessionStates := sm.dependencies.SessionStores.SessionStates
	healthService.Register("SessionStateStore", func(ctx context.Context) error {
		_, _, err := sessionStates.Lookup(ctx, readinessProbeKey)
		return err
	})
	if sm.config.Database.Identity.Type != "" {
		healthService.Register("IdentityDB", healthcheck.DatabaseCheck(provider.GetDBProvider(), provider.IdentityDB))
	}
	return healthService
}
