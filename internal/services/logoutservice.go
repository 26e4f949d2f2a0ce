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

// Package services registers the HTTP services of the server.
package services

import (
	"github.com/go-chi/chi/v5"

	appservice "github.com/asgardeo/oidclogout/internal/application/service"
	"github.com/asgardeo/oidclogout/internal/cert"
	"github.com/asgardeo/oidclogout/internal/oidc/logout"
	"github.com/asgardeo/oidclogout/internal/oidc/session"
	"github.com/asgardeo/oidclogout/internal/system/config"
)

// LogoutService serves the OpenID Connect RP-initiated logout endpoint.
type LogoutService struct {
	logoutHandler    *logout.LogoutHandler
	flowStatusHeader string
}

// NewLogoutService wires the logout coordinator and registers the logout routes.
func NewLogoutService(router chi.Router, cfg *config.Config, appService appservice.ApplicationServiceInterface,
	keyProvider cert.KeyProviderInterface, stores *session.Stores) *LogoutService {
	verifier := logout.NewIDTokenHintVerifier(appService, keyProvider, cfg.OAuth.JWT.SignedWithSPKey,
		cfg.Tenant.DefaultDomain, cfg.OAuth.JWT.SupportedAlgorithms)
	coordinator := logout.NewLogoutCoordinator(stores.SessionStates, stores.PendingRequests, appService,
		verifier, cfg.OAuth.Logout)

	instance := &LogoutService{
		logoutHandler: logout.NewLogoutHandler(coordinator, cfg.OAuth.Logout.SessionCookieName,
			!cfg.Server.HTTPOnly),
		flowStatusHeader: cfg.OAuth.Logout.FlowStatusHeader,
	}
	instance.RegisterRoutes(router)

	return instance
}

// RegisterRoutes registers the logout endpoint.
func (s *LogoutService) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		if s.flowStatusHeader != "" {
			r.Use(logout.FlowStatusMiddleware(s.flowStatusHeader))
		}
		s.logoutHandler.RegisterRoutes(r)
	})
}
