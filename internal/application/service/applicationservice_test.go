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

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/oidclogout/internal/application/constants"
	"github.com/asgardeo/oidclogout/internal/application/model"
	"github.com/asgardeo/oidclogout/internal/system/error/serviceerror"
	"github.com/asgardeo/oidclogout/tests/mocks/applicationmock"
)

type ApplicationServiceTestSuite struct {
	suite.Suite
	mockStore *applicationmock.MockApplicationStore
	service   ApplicationServiceInterface
}

func TestApplicationServiceSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.mockStore = &applicationmock.MockApplicationStore{}
	suite.service = NewApplicationService(suite.mockStore)
}

func (suite *ApplicationServiceTestSuite) TestGetApplicationByClientID() {
	suite.mockStore.MockGetApplicationByClientID = func(clientID string) (*model.RegisteredApplication, error) {
		return &model.RegisteredApplication{ClientID: clientID, Name: "Pickup"}, nil
	}

	app, svcErr := suite.service.GetApplicationByClientID(context.Background(), "client1")

	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "Pickup", app.Name)
}

func (suite *ApplicationServiceTestSuite) TestEmptyClientID() {
	app, svcErr := suite.service.GetApplicationByClientID(context.Background(), "")

	assert.Nil(suite.T(), app)
	assert.Equal(suite.T(), constants.ErrorInvalidClientID.Code, svcErr.Code)
	assert.Empty(suite.T(), suite.mockStore.GetApplicationByClientIDCalls)
}

func (suite *ApplicationServiceTestSuite) TestApplicationNotFound() {
	suite.mockStore.MockGetApplicationByClientID = func(clientID string) (*model.RegisteredApplication, error) {
		return nil, constants.ErrApplicationNotFound
	}

	app, svcErr := suite.service.GetApplicationByClientID(context.Background(), "unknown")

	assert.Nil(suite.T(), app)
	assert.Equal(suite.T(), constants.ErrorApplicationNotFound.Code, svcErr.Code)
	assert.Equal(suite.T(), serviceerror.ClientErrorType, svcErr.Type)
}

func (suite *ApplicationServiceTestSuite) TestNilApplicationIsNotFound() {
	app, svcErr := suite.service.GetApplicationByClientID(context.Background(), "ghost")

	assert.Nil(suite.T(), app)
	assert.Equal(suite.T(), constants.ErrorApplicationNotFound.Code, svcErr.Code)
}

func (suite *ApplicationServiceTestSuite) TestStoreFailure() {
	suite.mockStore.MockGetApplicationByClientID = func(clientID string) (*model.RegisteredApplication, error) {
		return nil, errors.New("db down")
	}

	app, svcErr := suite.service.GetApplicationByClientID(context.Background(), "client1")

	assert.Nil(suite.T(), app)
	assert.Equal(suite.T(), serviceerror.ServerErrorType, svcErr.Type)
}
