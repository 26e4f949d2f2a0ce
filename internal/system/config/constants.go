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

package config

const (
	// DefaultServerHostname is the default hostname the server binds to.
	DefaultServerHostname = "localhost"
	// DefaultServerPort is the default port the server listens on.
	DefaultServerPort = 8090

	// SessionStoreInMemory selects the in-memory session state store.
	SessionStoreInMemory = "inmemory"
	// SessionStoreRedis selects the Redis backed session state store.
	SessionStoreRedis = "redis"
	// DefaultSessionTTL is the default lifetime of a session state entry in seconds.
	DefaultSessionTTL = 3600
	// DefaultRedisKeyPrefix is the default prefix for session state keys in Redis.
	DefaultRedisKeyPrefix = "oidc:opbs:"

	// DefaultSessionCookieName is the name of the browser session state cookie.
	DefaultSessionCookieName = "opbs"
	// DefaultConsentPageURL is the logout consent page.
	DefaultConsentPageURL = "/authenticationendpoint/oauth2_logout_consent.do"
	// DefaultLogoutPageURL is the generic logout confirmation page.
	DefaultLogoutPageURL = "/authenticationendpoint/oauth2_logout.do"
	// DefaultRetryPageURL is the page used when an authentication flow is still in progress.
	DefaultRetryPageURL = "/authenticationendpoint/retry.do"
	// DefaultErrorPageURL is the OAuth2 error page.
	DefaultErrorPageURL = "/authenticationendpoint/oauth2_error.do"
	// DefaultPendingRequestTTL is the lifetime of a logout request parked for consent, in seconds.
	DefaultPendingRequestTTL = 300

	// DefaultTenantDomain is the super tenant domain.
	DefaultTenantDomain = "carbon.super"
	// DefaultTenantKeyDirectory holds the tenant signing certificates.
	DefaultTenantKeyDirectory = "repository/resources/security/tenants"
)

// DefaultSupportedAlgorithms lists the ID token signing algorithms accepted by default.
var DefaultSupportedAlgorithms = []string{"RS256", "RS384", "RS512", "PS256", "ES256"}
