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
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	appmodel "github.com/asgardeo/oidclogout/internal/application/model"
	appservice "github.com/asgardeo/oidclogout/internal/application/service"
	"github.com/asgardeo/oidclogout/internal/cert"
	"github.com/asgardeo/oidclogout/internal/system/log"
	"github.com/asgardeo/oidclogout/internal/system/metrics"
)

// IDTokenHintVerifierInterface verifies the ID token hint of a logout request.
type IDTokenHintVerifierInterface interface {
	// Verify verifies the hint and returns its claims. An empty hint yields no claims and no
	// error. sessionTenant is the tenant of the browser session, used when the token carries
	// no realm.
	Verify(ctx context.Context, hint, sessionTenant string) (*VerifiedIDToken, *LogoutError)
	// PeekClientID returns the client the hint was issued to without verifying the hint.
	PeekClientID(hint string) (string, *LogoutError)
}

type realmClaim struct {
	Tenant    string `json:"tenant,omitempty"`
	UserStore string `json:"userstore,omitempty"`
}

type idTokenClaims struct {
	jwt.RegisteredClaims
	AuthorizedParty string      `json:"azp,omitempty"`
	SessionID       string      `json:"sid,omitempty"`
	Realm           *realmClaim `json:"realm,omitempty"`
}

// IDTokenHintVerifier is the default implementation of IDTokenHintVerifierInterface.
type IDTokenHintVerifier struct {
	appService      appservice.ApplicationServiceInterface
	keyProvider     cert.KeyProviderInterface
	signedWithSPKey bool
	defaultTenant   string
	validMethods    []string
}

// NewIDTokenHintVerifier creates a verifier resolving keys through the given key provider.
func NewIDTokenHintVerifier(appService appservice.ApplicationServiceInterface,
	keyProvider cert.KeyProviderInterface, signedWithSPKey bool, defaultTenant string,
	validMethods []string) *IDTokenHintVerifier {
	return &IDTokenHintVerifier{
		appService:      appService,
		keyProvider:     keyProvider,
		signedWithSPKey: signedWithSPKey,
		defaultTenant:   defaultTenant,
		validMethods:    validMethods,
	}
}

// Verify verifies the hint and returns its claims.
func (v *IDTokenHintVerifier) Verify(ctx context.Context, hint, sessionTenant string) (
	*VerifiedIDToken, *LogoutError) {
	if hint == "" {
		return nil, nil
	}
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "IDTokenHintVerifier"))

	token, lerr := v.verify(ctx, hint, sessionTenant, logger)
	if lerr != nil {
		metrics.ObserveHintVerification(string(lerr.Kind))
		logger.Debug("ID token hint verification failed", log.String("kind", string(lerr.Kind)),
			log.Error(lerr.Cause))
		return nil, lerr
	}
	metrics.ObserveHintVerification("verified")
	return token, nil
}

// PeekClientID returns the first audience of the hint without verifying its signature.
func (v *IDTokenHintVerifier) PeekClientID(hint string) (string, *LogoutError) {
	claims, lerr := v.decode(hint)
	if lerr != nil {
		return "", lerr
	}
	return claims.Audience[0], nil
}

// decode checks the structure of the hint and decodes its claims.
func (v *IDTokenHintVerifier) decode(hint string) (*idTokenClaims, *LogoutError) {
	if strings.Count(hint, ".") != 2 {
		return nil, newLogoutError(ErrorKindMalformedToken, errors.New("token is not a three part JWS"))
	}
	claims := &idTokenClaims{}
	if _, _, err := v.parser().ParseUnverified(hint, claims); err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, newLogoutError(ErrorKindMalformedToken, err)
		}
		return nil, newLogoutError(ErrorKindSignatureInvalid, err)
	}
	if len(claims.Audience) == 0 || claims.Audience[0] == "" {
		return nil, newLogoutError(ErrorKindMalformedToken, errors.New("token has no audience"))
	}
	return claims, nil
}

func (v *IDTokenHintVerifier) parser() *jwt.Parser {
	return jwt.NewParser(jwt.WithValidMethods(v.validMethods), jwt.WithoutClaimsValidation())
}

func (v *IDTokenHintVerifier) verify(ctx context.Context, hint, sessionTenant string,
	logger *log.Logger) (*VerifiedIDToken, *LogoutError) {
	unverified, lerr := v.decode(hint)
	if lerr != nil {
		return nil, lerr
	}
	clientID := unverified.Audience[0]

	app, svcErr := v.appService.GetApplicationByClientID(ctx, clientID)
	if svcErr != nil || app == nil {
		var cause error
		if svcErr != nil {
			cause = fmt.Errorf("%s: %s", svcErr.Code, svcErr.ErrorDescription)
		}
		return nil, newLogoutError(ErrorKindClientNotFound, cause)
	}

	tenant := v.resolveTenant(unverified, sessionTenant)
	if logger.IsDebugEnabled() {
		logger.Debug("Resolving ID token hint signing key", log.String(log.LoggerKeyClientID, clientID),
			log.String(log.LoggerKeyTenantDomain, tenant),
			log.Bool("applicationKey", v.useApplicationKey(app)))
	}

	verified := &idTokenClaims{}
	if _, err := v.parser().ParseWithClaims(hint, verified, v.keyFunc(ctx, app, tenant)); err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, newLogoutError(ErrorKindMalformedToken, err)
		}
		return nil, newLogoutError(ErrorKindSignatureInvalid, err)
	}

	tokenTenant := ""
	if verified.Realm != nil {
		tokenTenant = verified.Realm.Tenant
	}
	return &VerifiedIDToken{
		Subject:      verified.Subject,
		ClientID:     clientID,
		Audience:     []string(verified.Audience),
		Issuer:       verified.Issuer,
		TenantDomain: tokenTenant,
		SessionID:    verified.SessionID,
	}, nil
}

func (v *IDTokenHintVerifier) keyFunc(ctx context.Context, app *appmodel.RegisteredApplication,
	tenant string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if v.useApplicationKey(app) {
			keyID, _ := token.Header["kid"].(string)
			return v.keyProvider.GetApplicationPublicKey(ctx, app, keyID)
		}
		return v.keyProvider.GetTenantPublicKey(ctx, tenant)
	}
}

func (v *IDTokenHintVerifier) useApplicationKey(app *appmodel.RegisteredApplication) bool {
	return v.signedWithSPKey || app.UsesApplicationSigningKey()
}

// resolveTenant picks the tenant whose default key signs the token: the realm claim first,
// then the tenant of the session, then the default tenant.
func (v *IDTokenHintVerifier) resolveTenant(claims *idTokenClaims, sessionTenant string) string {
	if claims.Realm != nil && claims.Realm.Tenant != "" {
		return claims.Realm.Tenant
	}
	if sessionTenant != "" {
		return sessionTenant
	}
	return v.defaultTenant
}
