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

// Package model defines the data structures of registered OAuth applications.
package model

// SigningKeyPolicy defines which key is expected to sign the ID tokens issued to an application.
type SigningKeyPolicy string

const (
	// SigningKeyPolicyTenant selects the default signing key of the tenant.
	SigningKeyPolicyTenant SigningKeyPolicy = "tenant"
	// SigningKeyPolicyApplication selects the key registered for the application.
	SigningKeyPolicyApplication SigningKeyPolicy = "application"
)

// CertificateType defines how the public key of an application is provided.
type CertificateType string

const (
	// CertificateTypeNone denotes that the application has no registered key.
	CertificateTypeNone CertificateType = ""
	// CertificateTypeJWKS denotes an inline JSON web key set.
	CertificateTypeJWKS CertificateType = "JWKS"
	// CertificateTypeJWKSURI denotes a JSON web key set served from a URI.
	CertificateTypeJWKSURI CertificateType = "JWKS_URI"
)

// Certificate holds the public key reference of an application.
type Certificate struct {
	Type  CertificateType `json:"type"`
	Value string          `json:"value"`
}

// RegisteredApplication represents an OAuth client as seen by the logout endpoint.
type RegisteredApplication struct {
	ClientID          string           `json:"client_id"`
	Name              string           `json:"name"`
	TenantDomain      string           `json:"tenant_domain"`
	CallbackURLs      []string         `json:"callback_urls"`
	SigningKeyPolicy  SigningKeyPolicy `json:"signing_key_policy"`
	SkipLogoutConsent bool             `json:"skip_logout_consent"`
	Certificate       Certificate      `json:"certificate"`
}

// UsesApplicationSigningKey reports whether ID tokens of the application are signed with its own key.
func (a *RegisteredApplication) UsesApplicationSigningKey() bool {
	return a.SigningKeyPolicy == SigningKeyPolicyApplication
}
