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

package healthcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/oidclogout/internal/system/database/client"
	dbmodel "github.com/asgardeo/oidclogout/internal/system/database/model"
	"github.com/asgardeo/oidclogout/tests/mocks/databasemock"
)

type fakeDBProvider struct {
	client client.DBClientInterface
	err    error
}

func (p *fakeDBProvider) GetDBClient(string) (client.DBClientInterface, error) {
	return p.client, p.err
}

func (p *fakeDBProvider) Close() error {
	return nil
}

type HealthCheckTestSuite struct {
	suite.Suite
	service *HealthCheckService
}

func TestHealthCheckSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}

func (suite *HealthCheckTestSuite) SetupTest() {
	suite.service = NewHealthCheckService()
}

func (suite *HealthCheckTestSuite) TestReadinessWithoutChecks() {
	status := suite.service.CheckReadiness(context.Background())

	assert.Equal(suite.T(), StatusUp, status.Status)
	assert.Empty(suite.T(), status.ServiceStatus)
}

func (suite *HealthCheckTestSuite) TestReadinessReportsFailedCheck() {
	suite.service.Register("SessionStateStore", func(context.Context) error { return nil })
	suite.service.Register("IdentityDB", func(context.Context) error { return errors.New("connection refused") })

	status := suite.service.CheckReadiness(context.Background())

	assert.Equal(suite.T(), StatusDown, status.Status)
	assert.Equal(suite.T(), []ServiceStatus{
		{ServiceName: "SessionStateStore", Status: StatusUp},
		{ServiceName: "IdentityDB", Status: StatusDown},
	}, status.ServiceStatus)
}

func (suite *HealthCheckTestSuite) TestDatabaseCheck() {
	dbClient := &databasemock.MockDBClient{}
	check := DatabaseCheck(&fakeDBProvider{client: dbClient}, "identity")

	assert.NoError(suite.T(), check(context.Background()))
	suite.Require().Len(dbClient.QueryCalls, 1)
	assert.Equal(suite.T(), queryIdentityDBTable.ID, dbClient.QueryCalls[0].Query.ID)

	dbClient.MockQuery = func(dbmodel.DBQuery, ...interface{}) ([]map[string]interface{}, error) {
		return nil, errors.New("no such table: SP_OAUTH_APP")
	}
	assert.Error(suite.T(), check(context.Background()))

	failing := DatabaseCheck(&fakeDBProvider{err: errors.New("unsupported database type")}, "identity")
	assert.Error(suite.T(), failing(context.Background()))
}

func (suite *HealthCheckTestSuite) TestHandlers() {
	handler := NewHealthCheckHandler(suite.service)

	rr := httptest.NewRecorder()
	handler.HandleLivenessRequest(rr, httptest.NewRequest(http.MethodGet, "/health/liveness", nil))
	assert.Equal(suite.T(), http.StatusOK, rr.Code)

	suite.service.Register("SessionStateStore", func(context.Context) error { return errors.New("timeout") })
	rr = httptest.NewRecorder()
	handler.HandleReadinessRequest(rr, httptest.NewRequest(http.MethodGet, "/health/readiness", nil))

	assert.Equal(suite.T(), http.StatusServiceUnavailable, rr.Code)
	var status ServerStatus
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(suite.T(), StatusDown, status.Status)
}
