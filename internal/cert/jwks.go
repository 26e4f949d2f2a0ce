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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-jose/go-jose/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/asgardeo/oidclogout/internal/system/log"
)

// jwksResolver fetches and caches JSON web key sets published by applications.
type jwksResolver struct {
	httpClient *http.Client
	cache      *gocache.Cache
	group      singleflight.Group
}

// newJWKSResolver creates a resolver using the given HTTP client or a default one.
func newJWKSResolver(httpClient *http.Client) *jwksResolver {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: jwksFetchTimeout * time.Second}
	}
	return &jwksResolver{
		httpClient: httpClient,
		cache:      gocache.New(jwksCacheTTL*time.Second, jwksCacheCleanupInterval*time.Second),
	}
}

// fetch returns the key set served at the URI. Concurrent fetches of the same URI share one request.
func (r *jwksResolver) fetch(ctx context.Context, uri string) (*jose.JSONWebKeySet, error) {
	if cached, ok := r.cache.Get(uri); ok {
		return cached.(*jose.JSONWebKeySet), nil
	}

	result, err, _ := r.group.Do(uri, func() (interface{}, error) {
		// The download is shared by all waiters, so it must not be tied to the first caller.
		keySet, err := r.download(context.WithoutCancel(ctx), uri)
		if err != nil {
			return nil, err
		}
		r.cache.Set(uri, keySet, gocache.DefaultExpiration)
		return keySet, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*jose.JSONWebKeySet), nil
}

// download retrieves and parses the key set at the URI.
func (r *jwksResolver) download(ctx context.Context, uri string) (*jose.JSONWebKeySet, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "JWKSResolver"),
		log.String("jwksURI", uri))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to fetch JWKS", log.Error(err))
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected JWKS response status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJWKSResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read JWKS response: %w", err)
	}

	logger.Debug("Fetched JWKS document")
	return parseJWKS(body)
}

// parseJWKS decodes a JSON web key set document.
func parseJWKS(data []byte) (*jose.JSONWebKeySet, error) {
	var keySet jose.JSONWebKeySet
	if err := json.Unmarshal(data, &keySet); err != nil {
		return nil, fmt.Errorf("failed to parse JWKS: %w", err)
	}
	return &keySet, nil
}

// selectKey picks the signing key matching the key ID. Without a key ID, the first
// signing key of the set is used.
func selectKey(keySet *jose.JSONWebKeySet, keyID string) (crypto.PublicKey, error) {
	if keyID != "" {
		for _, key := range keySet.Key(keyID) {
			if isSigningKey(key) {
				return publicKeyOf(key), nil
			}
		}
		return nil, fmt.Errorf("no signing key with kid %s: %w", keyID, ErrKeyNotFound)
	}

	for _, key := range keySet.Keys {
		if isSigningKey(key) {
			return publicKeyOf(key), nil
		}
	}
	return nil, ErrKeyNotFound
}

// isSigningKey reports whether the key may be used to verify signatures.
func isSigningKey(key jose.JSONWebKey) bool {
	return key.Valid() && (key.Use == "" || key.Use == "sig")
}

// publicKeyOf returns the public part of the key.
func publicKeyOf(key jose.JSONWebKey) crypto.PublicKey {
	if key.IsPublic() {
		return key.Key
	}
	return key.Public().Key
}
