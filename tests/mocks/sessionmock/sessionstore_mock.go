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

// Package sessionmock provides mock implementations of the session state store for testing.
package sessionmock

import (
	"context"
	"sync"

	"github.com/asgardeo/oidclogout/internal/oidc/session"
)

// MockSessionStateStore is a mock implementation of the SessionStateStoreInterface.
type MockSessionStateStore struct {
	// MockAdd defines the behavior for the Add method.
	MockAdd func(id string, entry session.SessionCacheEntry) error
	// MockLookup defines the behavior for the Lookup method.
	MockLookup func(id string) (session.SessionCacheEntry, bool, error)
	// MockInvalidate defines the behavior for the Invalidate method.
	MockInvalidate func(id string) (bool, error)

	mu              sync.Mutex
	addCalls        []string
	lookupCalls     []string
	invalidateCalls []string
}

// Add mocks the Add method of the SessionStateStoreInterface.
func (m *MockSessionStateStore) Add(_ context.Context, id string, entry session.SessionCacheEntry) error {
	m.record(&m.addCalls, id)
	if m.MockAdd != nil {
		return m.MockAdd(id, entry)
	}
	return nil
}

// Lookup mocks the Lookup method of the SessionStateStoreInterface.
func (m *MockSessionStateStore) Lookup(_ context.Context, id string) (session.SessionCacheEntry, bool, error) {
	m.record(&m.lookupCalls, id)
	if m.MockLookup != nil {
		return m.MockLookup(id)
	}
	return session.SessionCacheEntry{}, false, nil
}

// Invalidate mocks the Invalidate method of the SessionStateStoreInterface.
func (m *MockSessionStateStore) Invalidate(_ context.Context, id string) (bool, error) {
	m.record(&m.invalidateCalls, id)
	if m.MockInvalidate != nil {
		return m.MockInvalidate(id)
	}
	return false, nil
}

// AddCalls returns the identifiers passed to Add.
func (m *MockSessionStateStore) AddCalls() []string {
	return m.calls(&m.addCalls)
}

// LookupCalls returns the identifiers passed to Lookup.
func (m *MockSessionStateStore) LookupCalls() []string {
	return m.calls(&m.lookupCalls)
}

// InvalidateCalls returns the identifiers passed to Invalidate.
func (m *MockSessionStateStore) InvalidateCalls() []string {
	return m.calls(&m.invalidateCalls)
}

func (m *MockSessionStateStore) record(calls *[]string, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*calls = append(*calls, id)
}

func (m *MockSessionStateStore) calls(calls *[]string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), *calls...)
}
