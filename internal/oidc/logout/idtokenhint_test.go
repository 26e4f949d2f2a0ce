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
	"context"
	"crypto"
	"crypto/rsa"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	appconstants "github.com/asgardeo/oidclogout/internal/application/constants"
	appmodel "github.com/asgardeo/oidclogout/internal/application/model"
	"github.com/asgardeo/oidclogout/internal/system/error/serviceerror"
	"github.com/asgardeo/oidclogout/tests/mocks/applicationmock"
	"github.com/asgardeo/oidclogout/tests/mocks/certmock"
)

var testValidMethods = []string{"RS256", "RS384", "RS512", "PS256", "ES256"}

type IDTokenHintVerifierTestSuite struct {
	suite.Suite
	signingKey     *rsa.PrivateKey
	otherKey       *rsa.PrivateKey
	mockAppService *applicationmock.MockApplicationService
	mockKeys       *certmock.MockKeyProvider
	app            *appmodel.RegisteredApplication
	verifier       *IDTokenHintVerifier
}

func TestIDTokenHintVerifierSuite(t *testing.T) {
	suite.Run(t, new(IDTokenHintVerifierTestSuite))
}

func (suite *IDTokenHintVerifierTestSuite) SetupSuite() {
	suite.signingKey = newTestKey(suite.T())
	suite.otherKey = newTestKey(suite.T())
}

func (suite *IDTokenHintVerifierTestSuite) SetupTest() {
	suite.app = &appmodel.RegisteredApplication{
		ClientID:         testClientID,
		TenantDomain:     testTenant,
		CallbackURLs:     []string{testCallbackURL},
		SigningKeyPolicy: appmodel.SigningKeyPolicyTenant,
	}
	suite.mockAppService = &applicationmock.MockApplicationService{
		MockGetApplicationByClientID: func(clientID string) (*appmodel.RegisteredApplication,
			*serviceerror.ServiceError) {
			if clientID == testClientID {
				return suite.app, nil
			}
			return nil, &appconstants.ErrorApplicationNotFound
		},
	}
	suite.mockKeys = &certmock.MockKeyProvider{
		MockGetTenantPublicKey: func(string) (crypto.PublicKey, error) {
			return &suite.signingKey.PublicKey, nil
		},
		MockGetApplicationPublicKey: func(*appmodel.RegisteredApplication, string) (crypto.PublicKey, error) {
			return &suite.signingKey.PublicKey, nil
		},
	}
	suite.verifier = NewIDTokenHintVerifier(suite.mockAppService, suite.mockKeys, false,
		"carbon.super", testValidMethods)
}

func (suite *IDTokenHintVerifierTestSuite) TestEmptyHintIsSkipped() {
	token, lerr := suite.verifier.Verify(context.Background(), "", testTenant)

	assert.Nil(suite.T(), token)
	assert.Nil(suite.T(), lerr)
	assert.Empty(suite.T(), suite.mockAppService.GetApplicationByClientIDCalls)
}

func (suite *IDTokenHintVerifierTestSuite) TestVerifyValidHint() {
	claims := newTestClaims(testClientID)
	claims.Realm = &realmClaim{Tenant: testTenant, UserStore: "PRIMARY"}
	hint := signTestToken(suite.T(), suite.signingKey, claims)

	token, lerr := suite.verifier.Verify(context.Background(), hint, "")

	suite.Require().Nil(lerr)
	assert.Equal(suite.T(), "admin", token.Subject)
	assert.Equal(suite.T(), testClientID, token.ClientID)
	assert.Equal(suite.T(), []string{testClientID}, token.Audience)
	assert.Equal(suite.T(), "https://localhost:9443/oauth2/token", token.Issuer)
	assert.Equal(suite.T(), testTenant, token.TenantDomain)
	assert.Equal(suite.T(), claims.SessionID, token.SessionID)
	assert.Equal(suite.T(), []string{testTenant}, suite.mockKeys.GetTenantPublicKeyCalls)
	assert.Empty(suite.T(), suite.mockKeys.GetApplicationPublicKeyCalls)
}

func (suite *IDTokenHintVerifierTestSuite) TestFirstAudienceIsClientID() {
	hint := signTestToken(suite.T(), suite.signingKey, newTestClaims(testClientID, "other-client"))

	token, lerr := suite.verifier.Verify(context.Background(), hint, "")

	suite.Require().Nil(lerr)
	assert.Equal(suite.T(), testClientID, token.ClientID)
	assert.Equal(suite.T(), []string{testClientID}, suite.mockAppService.GetApplicationByClientIDCalls)
}

func (suite *IDTokenHintVerifierTestSuite) TestTenantResolutionOrder() {
	testCases := []struct {
		name          string
		realm         *realmClaim
		sessionTenant string
		expected      string
	}{
		{"RealmClaim", &realmClaim{Tenant: testTenant}, "session.com", testTenant},
		{"SessionTenant", nil, "session.com", "session.com"},
		{"EmptyRealmTenant", &realmClaim{UserStore: "PRIMARY"}, "session.com", "session.com"},
		{"DefaultTenant", nil, "", "carbon.super"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.mockKeys.GetTenantPublicKeyCalls = nil
			claims := newTestClaims(testClientID)
			claims.Realm = tc.realm
			hint := signTestToken(suite.T(), suite.signingKey, claims)

			_, lerr := suite.verifier.Verify(context.Background(), hint, tc.sessionTenant)

			suite.Require().Nil(lerr)
			assert.Equal(suite.T(), []string{tc.expected}, suite.mockKeys.GetTenantPublicKeyCalls)
		})
	}
}

func (suite *IDTokenHintVerifierTestSuite) TestApplicationSigningKeyPolicy() {
	suite.app.SigningKeyPolicy = appmodel.SigningKeyPolicyApplication
	var receivedKeyID string
	suite.mockKeys.MockGetApplicationPublicKey = func(_ *appmodel.RegisteredApplication,
		keyID string) (crypto.PublicKey, error) {
		receivedKeyID = keyID
		return &suite.signingKey.PublicKey, nil
	}
	hint := signTestToken(suite.T(), suite.signingKey, newTestClaims(testClientID))

	_, lerr := suite.verifier.Verify(context.Background(), hint, "")

	suite.Require().Nil(lerr)
	assert.Equal(suite.T(), testKeyID, receivedKeyID)
	assert.Equal(suite.T(), []string{testClientID}, suite.mockKeys.GetApplicationPublicKeyCalls)
	assert.Empty(suite.T(), suite.mockKeys.GetTenantPublicKeyCalls)
}

func (suite *IDTokenHintVerifierTestSuite) TestSignedWithServiceProviderKey() {
	verifier := NewIDTokenHintVerifier(suite.mockAppService, suite.mockKeys, true, "carbon.super",
		testValidMethods)
	hint := signTestToken(suite.T(), suite.signingKey, newTestClaims(testClientID))

	_, lerr := verifier.Verify(context.Background(), hint, "")

	suite.Require().Nil(lerr)
	assert.Equal(suite.T(), []string{testClientID}, suite.mockKeys.GetApplicationPublicKeyCalls)
	assert.Empty(suite.T(), suite.mockKeys.GetTenantPublicKeyCalls)
}

func (suite *IDTokenHintVerifierTestSuite) TestMalformedHints() {
	valid := signTestToken(suite.T(), suite.signingKey, newTestClaims(testClientID))
	parts := strings.Split(valid, ".")

	testCases := []struct {
		name string
		hint string
	}{
		{"SingleSegment", "7893-090907ce-eab0-40d2"},
		{"TwoSegments", parts[0] + "." + parts[2]},
		{"FourSegments", valid + ".extra"},
		{"UndecodablePayload", parts[0] + ".!!!." + parts[2]},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.mockAppService.GetApplicationByClientIDCalls = nil
			suite.mockKeys.GetTenantPublicKeyCalls = nil

			token, lerr := suite.verifier.Verify(context.Background(), tc.hint, "")

			assert.Nil(suite.T(), token)
			suite.Require().NotNil(lerr)
			assert.Equal(suite.T(), ErrorKindMalformedToken, lerr.Kind)
			assert.Equal(suite.T(), "ID token hint is malformed.", lerr.Message)
			assert.Empty(suite.T(), suite.mockAppService.GetApplicationByClientIDCalls)
			assert.Empty(suite.T(), suite.mockKeys.GetTenantPublicKeyCalls)
		})
	}
}

func (suite *IDTokenHintVerifierTestSuite) TestHintWithoutAudience() {
	hint := signTestToken(suite.T(), suite.signingKey, newTestClaims())

	_, lerr := suite.verifier.Verify(context.Background(), hint, "")

	suite.Require().NotNil(lerr)
	assert.Equal(suite.T(), ErrorKindMalformedToken, lerr.Kind)
}

func (suite *IDTokenHintVerifierTestSuite) TestUnknownClient() {
	hint := signTestToken(suite.T(), suite.signingKey, newTestClaims("u5FIfG5xzLvBGiamoAYzzcqpBqga"))

	_, lerr := suite.verifier.Verify(context.Background(), hint, "")

	suite.Require().NotNil(lerr)
	assert.Equal(suite.T(), ErrorKindClientNotFound, lerr.Kind)
	assert.Equal(suite.T(), ErrorCodeAccessDenied, lerr.Code)
	assert.Equal(suite.T(),
		"Error occurred while getting application information. Client id not found", lerr.Message)
	assert.Empty(suite.T(), suite.mockKeys.GetTenantPublicKeyCalls)
}

func (suite *IDTokenHintVerifierTestSuite) TestSignatureMismatch() {
	hint := signTestToken(suite.T(), suite.otherKey, newTestClaims(testClientID))

	_, lerr := suite.verifier.Verify(context.Background(), hint, "")

	suite.Require().NotNil(lerr)
	assert.Equal(suite.T(), ErrorKindSignatureInvalid, lerr.Kind)
	assert.Equal(suite.T(), "ID token signature validation failed.", lerr.Message)
}

func (suite *IDTokenHintVerifierTestSuite) TestKeyRetrievalFailure() {
	suite.mockKeys.MockGetTenantPublicKey = func(string) (crypto.PublicKey, error) {
		return nil, errors.New("certificate not found")
	}
	hint := signTestToken(suite.T(), suite.signingKey, newTestClaims(testClientID))

	_, lerr := suite.verifier.Verify(context.Background(), hint, "")

	suite.Require().NotNil(lerr)
	assert.Equal(suite.T(), ErrorKindSignatureInvalid, lerr.Kind)
	assert.ErrorContains(suite.T(), lerr, "certificate not found")
}

func (suite *IDTokenHintVerifierTestSuite) TestUnsupportedAlgorithm() {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, newTestClaims(testClientID))
	hint, err := token.SignedString([]byte("a-shared-secret-of-the-client-app"))
	suite.Require().NoError(err)

	_, lerr := suite.verifier.Verify(context.Background(), hint, "")

	suite.Require().NotNil(lerr)
	assert.Equal(suite.T(), ErrorKindSignatureInvalid, lerr.Kind)
}

func (suite *IDTokenHintVerifierTestSuite) TestExpiredHintIsAccepted() {
	claims := newTestClaims(testClientID)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-24 * time.Hour))
	hint := signTestToken(suite.T(), suite.signingKey, claims)

	token, lerr := suite.verifier.Verify(context.Background(), hint, "")

	suite.Require().Nil(lerr)
	assert.Equal(suite.T(), testClientID, token.ClientID)
}

func (suite *IDTokenHintVerifierTestSuite) TestPeekClientID() {
	hint := signTestToken(suite.T(), suite.otherKey, newTestClaims(testClientID))

	clientID, lerr := suite.verifier.PeekClientID(hint)

	assert.Nil(suite.T(), lerr)
	assert.Equal(suite.T(), testClientID, clientID)
	assert.Empty(suite.T(), suite.mockAppService.GetApplicationByClientIDCalls)

	_, lerr = suite.verifier.PeekClientID("header.signature")
	suite.Require().NotNil(lerr)
	assert.Equal(suite.T(), ErrorKindMalformedToken, lerr.Kind)
}
