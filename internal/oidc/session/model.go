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

// Package session provides the session state stores consulted by the logout endpoint.
package session

import "maps"

const (
	// ParamClientID is the parameter holding the client the session was established for.
	ParamClientID = "client_id"
	// ParamTenantDomain is the parameter holding the tenant domain of the session.
	ParamTenantDomain = "tenant_domain")

// SessionCacheEntry is the parameter bag stored against a session state value.
type SessionCacheEntry struct {
	Params map[string]string `json:"params"`
}

// NewSessionCacheEntry creates an entry holding a copy of the given parameters.
func NewSessionCacheEntry(params map[string]string) SessionCacheEntry {
	return SessionCacheEntry{Params: maps.Clone(params)}
}

// Get returns the parameter value, or an empty string when absent.
func (e SessionCacheEntry) Get(name string) string {
	return e.Params[name]
}

// ClientID returns the client the session was established for.
func (e SessionCacheEntry) ClientID() string {
	return e.Get(ParamClientID)
}

// TenantDomain returns the tenant domain of the session.
func (e SessionCacheEntry) TenantDomain() string {
	return e.Get(ParamTenantDomain)
}

// clone returns a deep copy of the entry.
func (e SessionCacheEntry) clone() SessionCacheEntry {
	return SessionCacheEntry{Params: maps.Clone(e.Params)}
}
