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

// Package certmock provides mock implementations of the key provider for testing.
package certmock

import (
	"context"
	"crypto"
	"sync"

	appmodel "github.com/asgardeo/oidclogout/internal/application/model"
)

// MockKeyProvider is a mock implementation of the KeyProviderInterface.
type MockKeyProvider struct {
	// MockGetTenantPublicKey defines the behavior for the GetTenantPublicKey method.
	MockGetTenantPublicKey func(tenantDomain string) (crypto.PublicKey, error)
	// MockGetApplicationPublicKey defines the behavior for the GetApplicationPublicKey method.
	MockGetApplicationPublicKey func(app *appmodel.RegisteredApplication, keyID string) (crypto.PublicKey, error)

	// GetTenantPublicKeyCalls tracks the tenant domains passed to GetTenantPublicKey.
	GetTenantPublicKeyCalls []string
	// GetApplicationPublicKeyCalls tracks the client IDs passed to GetApplicationPublicKey.
	GetApplicationPublicKeyCalls []string

	mu sync.Mutex
}

// GetTenantPublicKey mocks the GetTenantPublicKey method of the KeyProviderInterface.
func (m *MockKeyProvider) GetTenantPublicKey(_ context.Context, tenantDomain string) (crypto.PublicKey, error) {
	m.mu.Lock()
	m.GetTenantPublicKeyCalls = append(m.GetTenantPublicKeyCalls, tenantDomain)
	m.mu.Unlock()

	if m.MockGetTenantPublicKey != nil {
		return m.MockGetTenantPublicKey(tenantDomain)
	}
	return nil, nil
}

// GetApplicationPublicKey mocks the GetApplicationPublicKey method of the KeyProviderInterface.
func (m *MockKeyProvider) GetApplicationPublicKey(_ context.Context, app *appmodel.RegisteredApplication,
	keyID string) (crypto.PublicKey, error) {
	m.mu.Lock()
	m.GetApplicationPublicKeyCalls = append(m.GetApplicationPublicKeyCalls, app.ClientID)
	m.mu.Unlock()

	if m.MockGetApplicationPublicKey != nil {
		return m.MockGetApplicationPublicKey(app, keyID)
	}
	return nil, nil
}
