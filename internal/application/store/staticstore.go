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

package store

import (
	"context"
	"errors"

	"github.com/asgardeo/oidclogout/internal/application/constants"
	"github.com/asgardeo/oidclogout/internal/application/model"
	"github.com/asgardeo/oidclogout/internal/system/config"
)

// StaticApplicationStore serves the applications registered in the deployment configuration.
type StaticApplicationStore struct {
	applications map[string]model.RegisteredApplication
}

// NewStaticApplicationStore creates a store from the configured application registrations.
func NewStaticApplicationStore(apps []config.ApplicationConfig) *StaticApplicationStore {
	applications := make(map[string]model.RegisteredApplication, len(apps))
	for _, app := range apps {
		policy := model.SigningKeyPolicy(app.SigningKeyPolicy)
		if policy == "" {
			policy = model.SigningKeyPolicyTenant
		}
		applications[app.ClientID] = model.RegisteredApplication{
			ClientID:          app.ClientID,
			Name:              app.Name,
			TenantDomain:      app.TenantDomain,
			CallbackURLs:      append([]string(nil), app.CallbackURLs...),
			SigningKeyPolicy:  policy,
			SkipLogoutConsent: app.SkipLogoutConsent,
			Certificate: model.Certificate{
				Type:  model.CertificateType(app.Certificate.Type),
				Value: app.Certificate.Value,
			},
		}
	}
	return &StaticApplicationStore{applications: applications}
}

// Len returns the number of registered applications.
func (st *StaticApplicationStore) Len() int {
	return len(st.applications)
}

// GetApplicationByClientID returns a copy of the registered application.
func (st *StaticApplicationStore) GetApplicationByClientID(_ context.Context,
	clientID string) (*model.RegisteredApplication, error) {
	app, ok := st.applications[clientID]
	if !ok {
		return nil, constants.ErrApplicationNotFound
	}
	app.CallbackURLs = append([]string(nil), app.CallbackURLs...)
	return &app, nil
}

// ChainedApplicationStore looks up the stores in order and returns the first match.
type ChainedApplicationStore struct {
	stores []ApplicationStoreInterface
}

// NewChainedApplicationStore creates a store that queries the given stores in order.
func NewChainedApplicationStore(stores ...ApplicationStoreInterface) ApplicationStoreInterface {
	return &ChainedApplicationStore{stores: stores}
}

// GetApplicationByClientID returns the application from the first store that knows the client.
func (st *ChainedApplicationStore) GetApplicationByClientID(ctx context.Context,
	clientID string) (*model.RegisteredApplication, error) {
	for _, s := range st.stores {
		app, err := s.GetApplicationByClientID(ctx, clientID)
		if err == nil {
			return app, nil
		}
		if !errors.Is(err, constants.ErrApplicationNotFound) {
			return nil, err
		}
	}
	return nil, constants.ErrApplicationNotFound
}
