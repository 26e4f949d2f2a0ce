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

package cert

import "errors"

var (
	// ErrKeyNotFound is returned when no public key is available for the requested owner.
	ErrKeyNotFound = errors.New("public key not found")
	// ErrNoApplicationCertificate is returned when the application has not registered a key.
	ErrNoApplicationCertificate = errors.New("application has no registered certificate")
	// ErrUnsupportedCertificateType is returned for an unknown application certificate type.
	ErrUnsupportedCertificateType = errors.New("unsupported application certificate type")
)

const (
	// tenantCertificateExtension is the file extension of tenant certificates in the key directory.
	tenantCertificateExtension = ".pem"
	// jwksCacheTTL is how long a fetched JWKS document is reused, in seconds.
	jwksCacheTTL = 900
	// jwksCacheCleanupInterval is the cleanup interval of the JWKS cache, in seconds.
	jwksCacheCleanupInterval = 1800
	// jwksFetchTimeout bounds a single JWKS URI request, in seconds.
	jwksFetchTimeout = 10
	// maxJWKSResponseSize limits the size of a JWKS document.
	maxJWKSResponseSize = 1 << 20
)
