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

package logout

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "playground"
	testTenant       = "wso2.com"
	testCallbackURL  = "http://localhost:8080/playground2/oauth2client"
	testKeyID        = "NTAxZmMxNDMyZDg3MTU1ZGM0MzEzODJhZWI4NDNlZDU1OGFkNjFiMQ"
	testErrorPage    = "https://localhost:9443/authenticationendpoint/oauth2_error.do"
	testConsentPage  = "https://localhost:9443/authenticationendpoint/oauth2_logout_consent.do"
	testLogoutPage   = "https://localhost:9443/authenticationendpoint/oauth2_logout.do"
	testRetryPage    = "/authenticationendpoint/retry.do"
	testDefaultURL   = "https://localhost:8080/playground/oauth2client"
	testSessionState = "090907ce-eab0-40d2-a46d-acd4bb33f0d0"
)

func newTestKey(t *testing.T) *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func newTestClaims(audience ...string) *idTokenClaims {
	return &idTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "admin",
			Issuer:   "https://localhost:9443/oauth2/token",
			Audience: jwt.ClaimStrings(audience),
		},
		AuthorizedParty: testClientID,
		SessionID:       "b5d4f0c2-3a07-4cbb-9f4e-2d2c3f2a1c55",
	}
}

func signTestToken(t *testing.T, key *rsa.PrivateKey, claims *idTokenClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}
