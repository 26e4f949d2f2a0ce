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

// Package healthcheck provides the liveness and readiness checks of the server.
package healthcheck

import (
	"context"
	"sync"
	"time"

	dbmodel "github.com/asgardeo/oidclogout/internal/system/database/model"
	"github.com/asgardeo/oidclogout/internal/system/database/provider"
	"github.com/asgardeo/oidclogout/internal/system/log"
)

const checkTimeout = 3 * time.Second

var queryIdentityDBTable = dbmodel.DBQuery{
	ID:    "HLC-00001",
	Query: "SELECT CLIENT_ID FROM SP_OAUTH_APP WHERE 1 = 0",
}

// Check reports an error when a dependency is not ready.
type Check func(ctx context.Context) error

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) ServerStatus
}

type namedCheck struct {
	name  string
	check Check
}

// HealthCheckService runs the registered readiness checks.
type HealthCheckService struct {
	mu     sync.RWMutex
	checks []namedCheck
}

// NewHealthCheckService creates a health check service without checks.
func NewHealthCheckService() *HealthCheckService {
	return &HealthCheckService{}
}

// Register adds a readiness check reported under the given service name.
func (s *HealthCheckService) Register(name string, check Check) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = append(s.checks, namedCheck{name: name, check: check})
}

// CheckReadiness runs every check and reports the server as up only if all checks pass.
func (s *HealthCheckService) CheckReadiness(ctx context.Context) ServerStatus {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	s.mu.RLock()
	checks := append([]namedCheck(nil), s.checks...)
	s.mu.RUnlock()

	status := ServerStatus{Status: StatusUp, ServiceStatus: make([]ServiceStatus, 0, len(checks))}
	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := c.check(checkCtx)
		cancel()

		serviceStatus := ServiceStatus{ServiceName: c.name, Status: StatusUp}
		if err != nil {
			logger.Error("Readiness check failed", log.String("service", c.name), log.Error(err))
			serviceStatus.Status = StatusDown
			status.Status = StatusDown
		}
		status.ServiceStatus = append(status.ServiceStatus, serviceStatus)
	}
	return status
}

// DatabaseCheck returns a check querying the application table of the named database.
func DatabaseCheck(dbProvider provider.DBProviderInterface, dbName string) Check {
	return func(ctx context.Context) error {
		dbClient, err := dbProvider.GetDBClient(dbName)
		if err != nil {
			return err
		}
		_, err = dbClient.Query(ctx, queryIdentityDBTable)
		return err
	}
}
