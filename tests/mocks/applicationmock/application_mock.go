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

// Package applicationmock provides mock implementations of the application interfaces for testing.
package applicationmock

import (
	"context"
	"sync"

	"github.com/asgardeo/oidclogout/internal/application/model"
	"github.com/asgardeo/oidclogout/internal/system/error/serviceerror"
)

// MockApplicationStore is a mock implementation of the ApplicationStoreInterface.
type MockApplicationStore struct {
	// MockGetApplicationByClientID defines the behavior for the GetApplicationByClientID method.
	MockGetApplicationByClientID func(clientID string) (*model.RegisteredApplication, error)

	// GetApplicationByClientIDCalls tracks the arguments passed to GetApplicationByClientID.
	GetApplicationByClientIDCalls []string

	mu sync.Mutex
}

// GetApplicationByClientID mocks the GetApplicationByClientID method of the ApplicationStoreInterface.
func (m *MockApplicationStore) GetApplicationByClientID(_ context.Context,
	clientID string) (*model.RegisteredApplication, error) {
	m.mu.Lock()
	m.GetApplicationByClientIDCalls = append(m.GetApplicationByClientIDCalls, clientID)
	m.mu.Unlock()

	if m.MockGetApplicationByClientID != nil {
		return m.MockGetApplicationByClientID(clientID)
	}
	return nil, nil
}

// MockApplicationService is a mock implementation of the ApplicationServiceInterface.
type MockApplicationService struct {
	// MockGetApplicationByClientID defines the behavior for the GetApplicationByClientID method.
	MockGetApplicationByClientID func(clientID string) (*model.RegisteredApplication, *serviceerror.ServiceError)

	// GetApplicationByClientIDCalls tracks the arguments passed to GetApplicationByClientID.
	GetApplicationByClientIDCalls []string

	mu sync.Mutex
}

// GetApplicationByClientID mocks the GetApplicationByClientID method of the ApplicationServiceInterface.
func (m *MockApplicationService) GetApplicationByClientID(_ context.Context,
	clientID string) (*model.RegisteredApplication, *serviceerror.ServiceError) {
	m.mu.Lock()
	m.GetApplicationByClientIDCalls = append(m.GetApplicationByClientIDCalls, clientID)
	m.mu.Unlock()

	if m.MockGetApplicationByClientID != nil {
		return m.MockGetApplicationByClientID(clientID)
	}
	return nil, nil
}
