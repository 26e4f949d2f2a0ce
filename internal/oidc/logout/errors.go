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

import "fmt"

// ErrorKind classifies the failures of the logout flow.
type ErrorKind string

const (
	ErrorKindMissingSessionCookie     ErrorKind = "MissingSessionCookie"
	ErrorKindSessionNotFound          ErrorKind = "SessionNotFound"
	ErrorKindConsentDenied            ErrorKind = "ConsentDenied"
	ErrorKindLogoutFinalizationFailed ErrorKind = "LogoutFinalizationFailed"
	ErrorKindSessionStoreFailure      ErrorKind = "SessionStoreFailure"
	ErrorKindPendingRequestNotFound   ErrorKind = "PendingRequestNotFound"
	ErrorKindMalformedToken           ErrorKind = "MalformedToken"
	ErrorKindSignatureInvalid         ErrorKind = "SignatureInvalid"
	ErrorKindClientNotFound           ErrorKind = "ClientNotFound"
	ErrorKindPostLogoutURIMismatch    ErrorKind = "PostLogoutURIMismatch"
)

type errorDescriptor struct {
	code    string
	message string
}

var errorDescriptors = map[ErrorKind]errorDescriptor{
	ErrorKindMissingSessionCookie: {ErrorCodeAccessDenied,
		"opbs cookie not received. Missing session state."},
	ErrorKindSessionNotFound: {ErrorCodeAccessDenied,
		"No valid session found for the received session state."},
	ErrorKindConsentDenied: {ErrorCodeAccessDenied,
		"End User denied the logout request"},
	ErrorKindLogoutFinalizationFailed: {ErrorCodeServerError,
		"User logout failed"},
	ErrorKindSessionStoreFailure: {ErrorCodeServerError,
		"Error occurred while processing the logout request."},
	ErrorKindPendingRequestNotFound: {ErrorCodeServerError,
		"User logout failed"},
	ErrorKindMalformedToken: {ErrorCodeAccessDenied,
		"ID token hint is malformed."},
	ErrorKindSignatureInvalid: {ErrorCodeAccessDenied,
		"ID token signature validation failed."},
	ErrorKindClientNotFound: {ErrorCodeAccessDenied,
		"Error occurred while getting application information. Client id not found"},
	ErrorKindPostLogoutURIMismatch: {ErrorCodeAccessDenied,
		"Post logout URI does not match with registered callback URI."},
}

// LogoutError is a failure of the logout flow that maps to an error decision.
type LogoutError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Cause   error
}

// newLogoutError creates a logout error of the given kind wrapping an optional cause.
func newLogoutError(kind ErrorKind, cause error) *LogoutError {
	desc, ok := errorDescriptors[kind]
	if !ok {
		desc = errorDescriptors[ErrorKindLogoutFinalizationFailed]
	}
	return &LogoutError{
		Kind:    kind,
		Code:    desc.code,
		Message: desc.message,
		Cause:   cause,
	}
}

func (e *LogoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LogoutError) Unwrap() error {
	return e.Cause
}
