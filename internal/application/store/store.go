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

// Package store provides the persistence layer of registered OAuth applications.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/asgardeo/oidclogout/internal/application/constants"
	"github.com/asgardeo/oidclogout/internal/application/model"
	dbclient "github.com/asgardeo/oidclogout/internal/system/database/client"
	"github.com/asgardeo/oidclogout/internal/system/database/provider"
)

// ApplicationStoreInterface defines the read operations on registered applications.
type ApplicationStoreInterface interface {
	GetApplicationByClientID(ctx context.Context, clientID string) (*model.RegisteredApplication, error)
}

// ApplicationStore is the database backed implementation of ApplicationStoreInterface.
type ApplicationStore struct {
	getDBClient func() (dbclient.DBClientInterface, error)
}

// NewApplicationStore creates a store reading from the identity database.
func NewApplicationStore() ApplicationStoreInterface {
	return &ApplicationStore{
		getDBClient: func() (dbclient.DBClientInterface, error) {
			return provider.GetDBProvider().GetDBClient(provider.IdentityDB)
		},
	}
}

// newApplicationStoreWithClient creates a store reading through the given database client.
func newApplicationStoreWithClient(client dbclient.DBClientInterface) ApplicationStoreInterface {
	return &ApplicationStore{
		getDBClient: func() (dbclient.DBClientInterface, error) {
			return client, nil
		},
	}
}

// GetApplicationByClientID retrieves a registered application by its client ID.
func (st *ApplicationStore) GetApplicationByClientID(ctx context.Context,
	clientID string) (*model.RegisteredApplication, error) {
	dbClient, err := st.getDBClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, QueryGetApplicationByClientID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrApplicationNotFound
	}
	if len(results) > 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	return buildApplicationFromResultRow(results[0])
}

// buildApplicationFromResultRow constructs a RegisteredApplication from a database row.
func buildApplicationFromResultRow(row map[string]interface{}) (*model.RegisteredApplication, error) {
	clientID, ok := row["client_id"].(string)
	if !ok {
		return nil, errors.New("failed to parse client_id as string")
	}

	app := &model.RegisteredApplication{
		ClientID:         clientID,
		Name:             stringValue(row["app_name"]),
		TenantDomain:     stringValue(row["tenant_domain"]),
		SigningKeyPolicy: model.SigningKeyPolicy(stringValue(row["signing_key_policy"])),
		Certificate: model.Certificate{
			Type:  model.CertificateType(stringValue(row["cert_type"])),
			Value: stringValue(row["cert_value"]),
		},
	}
	if app.SigningKeyPolicy == "" {
		app.SigningKeyPolicy = model.SigningKeyPolicyTenant
	}

	callbackURIs := stringValue(row["callback_uris"])
	if callbackURIs != "" {
		if err := json.Unmarshal([]byte(callbackURIs), &app.CallbackURLs); err != nil {
			return nil, fmt.Errorf("failed to parse callback_uris: %w", err)
		}
	}

	skipConsent, err := boolValue(row["skip_logout_consent"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse skip_logout_consent: %w", err)
	}
	app.SkipLogoutConsent = skipConsent

	return app, nil
}

// stringValue returns the string value of a nullable column.
func stringValue(value interface{}) string {
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}

// boolValue parses a boolean column, which SQLite reports as an integer.
func boolValue(value interface{}) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case string:
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("unsupported boolean value type %T", value)
	}
}
