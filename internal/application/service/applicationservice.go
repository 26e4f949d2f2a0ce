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

// Package service provides the lookup of registered OAuth applications.
package service

import (
	"context"
	"errors"

	"github.com/asgardeo/oidclogout/internal/application/constants"
	"github.com/asgardeo/oidclogout/internal/application/model"
	"github.com/asgardeo/oidclogout/internal/application/store"
	"github.com/asgardeo/oidclogout/internal/system/error/serviceerror"
	"github.com/asgardeo/oidclogout/internal/system/log"
)

// ApplicationServiceInterface defines the interface for the application service.
type ApplicationServiceInterface interface {
	GetApplicationByClientID(ctx context.Context, clientID string) (
		*model.RegisteredApplication, *serviceerror.ServiceError)
}

// ApplicationService is the default implementation of the ApplicationServiceInterface.
type ApplicationService struct {
	store store.ApplicationStoreInterface
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(appStore store.ApplicationStoreInterface) ApplicationServiceInterface {
	return &ApplicationService{
		store: appStore,
	}
}

// GetApplicationByClientID retrieves the registered application of the given client ID.
func (as *ApplicationService) GetApplicationByClientID(ctx context.Context, clientID string) (
	*model.RegisteredApplication, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ApplicationService"))

	if clientID == "" {
		return nil, &constants.ErrorInvalidClientID
	}

	app, err := as.store.GetApplicationByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, constants.ErrApplicationNotFound) {
			logger.Debug("Application not found", log.String(log.LoggerKeyClientID, clientID))
			return nil, &constants.ErrorApplicationNotFound
		}
		logger.Error("Failed to retrieve application", log.String(log.LoggerKeyClientID, clientID),
			log.Error(err))
		return nil, &serviceerror.InternalServerError
	}
	if app == nil {
		return nil, &constants.ErrorApplicationNotFound
	}

	return app, nil
}
