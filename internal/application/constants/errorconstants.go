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

// Package constants defines the constants and errors of the application package.
package constants

import (
	"errors"

	"github.com/asgardeo/oidclogout/internal/system/error/serviceerror"
)

// ErrApplicationNotFound is returned by the stores when no application matches the client ID.
var ErrApplicationNotFound = errors.New("application not found")

// Client errors for application lookups.
var (
	// ErrorInvalidClientID is the error returned when the client ID is empty.
	ErrorInvalidClientID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APP-1001",
		Error:            "Invalid client ID",
		ErrorDescription: "The client ID must not be empty",
	}
	// ErrorApplicationNotFound is the error returned when the application does not exist.
	ErrorApplicationNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APP-1002",
		Error:            "Application not found",
		ErrorDescription: "No application is registered for the given client ID",
	}
)
