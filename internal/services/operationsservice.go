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

package services

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asgardeo/oidclogout/internal/system/healthcheck"
)

const (
	metricsEndpoint   = "/metrics"
	livenessEndpoint  = "/health/liveness"
	readinessEndpoint = "/health/readiness"
)

// OperationsService exposes the metrics and health check endpoints.
type OperationsService struct {
	healthCheckHandler *healthcheck.HealthCheckHandler
}

// NewOperationsService creates the operations service and registers its routes.
func NewOperationsService(router chi.Router, healthService healthcheck.HealthCheckServiceInterface) *OperationsService {
	instance := &OperationsService{
		healthCheckHandler: healthcheck.NewHealthCheckHandler(healthService),
	}
	instance.RegisterRoutes(router)
	return instance
}

// RegisterRoutes registers the metrics and health check endpoints.
func (s *OperationsService) RegisterRoutes(router chi.Router) {
	router.Method(http.MethodGet, metricsEndpoint, promhttp.Handler())
	router.Get(livenessEndpoint, s.healthCheckHandler.HandleLivenessRequest)
	router.Get(readinessEndpoint, s.healthCheckHandler.HandleReadinessRequest)
}
