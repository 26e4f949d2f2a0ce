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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/oidclogout/internal/application/constants"
	"github.com/asgardeo/oidclogout/internal/application/model"
	"github.com/asgardeo/oidclogout/internal/system/cache"
	"github.com/asgardeo/oidclogout/tests/mocks/applicationmock"
)

type CachedBackedApplicationStoreTestSuite struct {
	suite.Suite
	mockStore   *applicationmock.MockApplicationStore
	cachedStore *CachedBackedApplicationStore
}

func TestCachedBackedApplicationStoreSuite(t *testing.T) {
	suite.Run(t, new(CachedBackedApplicationStoreTestSuite))
}

func (suite *CachedBackedApplicationStoreTestSuite) SetupTest() {
	suite.mockStore = &applicationmock.MockApplicationStore{
		MockGetApplicationByClientID: func(clientID string) (*model.RegisteredApplication, error) {
			if clientID == "client1" {
				return &model.RegisteredApplication{ClientID: clientID}, nil
			}
			return nil, constants.ErrApplicationNotFound
		},
	}
	suite.cachedStore = &CachedBackedApplicationStore{
		AppByClientIDCache: cache.NewInMemoryCache[*model.RegisteredApplication]("test", 10, time.Minute),
		Store:              suite.mockStore,
	}
}

func (suite *CachedBackedApplicationStoreTestSuite) TestReadThrough() {
	ctx := context.Background()

	first, err := suite.cachedStore.GetApplicationByClientID(ctx, "client1")
	assert.NoError(suite.T(), err)
	second, err := suite.cachedStore.GetApplicationByClientID(ctx, "client1")
	assert.NoError(suite.T(), err)

	assert.Same(suite.T(), first, second)
	assert.Equal(suite.T(), []string{"client1"}, suite.mockStore.GetApplicationByClientIDCalls)
}

func (suite *CachedBackedApplicationStoreTestSuite) TestNotFoundIsNotCached() {
	ctx := context.Background()

	_, err := suite.cachedStore.GetApplicationByClientID(ctx, "missing")
	assert.ErrorIs(suite.T(), err, constants.ErrApplicationNotFound)
	_, err = suite.cachedStore.GetApplicationByClientID(ctx, "missing")
	assert.ErrorIs(suite.T(), err, constants.ErrApplicationNotFound)

	assert.Len(suite.T(), suite.mockStore.GetApplicationByClientIDCalls, 2)
}
