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

import (
	"context"
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	appmodel "github.com/asgardeo/oidclogout/internal/application/model"
	"github.com/asgardeo/oidclogout/internal/system/log"
)

// KeyProviderInterface resolves the public keys used to verify ID token signatures.
type KeyProviderInterface interface {
	// GetTenantPublicKey returns the default signing key of the tenant.
	GetTenantPublicKey(ctx context.Context, tenantDomain string) (crypto.PublicKey, error)
	// GetApplicationPublicKey returns the signing key registered for the application.
	// The key ID selects among multiple keys and may be empty.
	GetApplicationPublicKey(ctx context.Context, app *appmodel.RegisteredApplication,
		keyID string) (crypto.PublicKey, error)
}

// KeyProvider is the default implementation of KeyProviderInterface.
type KeyProvider struct {
	keyDirectory string
	tenantKeys   map[string]crypto.PublicKey
	mu           sync.RWMutex
	jwks         *jwksResolver
}

// NewKeyProvider creates a key provider reading tenant certificates from the given directory.
func NewKeyProvider(keyDirectory string) *KeyProvider {
	return &KeyProvider{
		keyDirectory: keyDirectory,
		tenantKeys:   make(map[string]crypto.PublicKey),
		jwks:         newJWKSResolver(nil),
	}
}

// GetTenantPublicKey returns the default signing key of the tenant, loading it from
// <keyDirectory>/<tenantDomain>.pem on first use.
func (kp *KeyProvider) GetTenantPublicKey(_ context.Context, tenantDomain string) (crypto.PublicKey, error) {
	if tenantDomain == "" || strings.ContainsAny(tenantDomain, `/\`) || strings.Contains(tenantDomain, "..") {
		return nil, fmt.Errorf("invalid tenant domain %q: %w", tenantDomain, ErrKeyNotFound)
	}

	kp.mu.RLock()
	key, ok := kp.tenantKeys[tenantDomain]
	kp.mu.RUnlock()
	if ok {
		return key, nil
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "KeyProvider"),
		log.String(log.LoggerKeyTenantDomain, tenantDomain))

	filePath := filepath.Join(kp.keyDirectory, tenantDomain+tenantCertificateExtension)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no certificate for tenant %s: %w", tenantDomain, ErrKeyNotFound)
		}
		return nil, fmt.Errorf("failed to read tenant certificate: %w", err)
	}

	key, err = ParsePublicKeyPEM(data)
	if err != nil {
		logger.Error("Failed to parse tenant certificate", log.Error(err))
		return nil, err
	}

	kp.mu.Lock()
	kp.tenantKeys[tenantDomain] = key
	kp.mu.Unlock()

	logger.Debug("Loaded tenant signing certificate")
	return key, nil
}

// GetApplicationPublicKey returns the signing key registered for the application.
func (kp *KeyProvider) GetApplicationPublicKey(ctx context.Context, app *appmodel.RegisteredApplication,
	keyID string) (crypto.PublicKey, error) {
	if app == nil {
		return nil, ErrNoApplicationCertificate
	}

	switch app.Certificate.Type {
	case appmodel.CertificateTypeNone:
		return nil, ErrNoApplicationCertificate
	case appmodel.CertificateTypeJWKS:
		keySet, err := parseJWKS([]byte(app.Certificate.Value))
		if err != nil {
			return nil, err
		}
		return selectKey(keySet, keyID)
	case appmodel.CertificateTypeJWKSURI:
		keySet, err := kp.jwks.fetch(ctx, app.Certificate.Value)
		if err != nil {
			return nil, err
		}
		return selectKey(keySet, keyID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCertificateType, app.Certificate.Type)
	}
}

// ParsePublicKeyPEM parses a PEM encoded X.509 certificate or PKIX public key.
func ParsePublicKeyPEM(data []byte) (crypto.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to decode PEM block")
	}

	switch block.Type {
	case "CERTIFICATE":
		certificate, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse certificate: %w", err)
		}
		return certificate.PublicKey, nil
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}
		return key, nil
	case "RSA PUBLIC KEY":
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported PEM block type: %s", block.Type)
	}
}
