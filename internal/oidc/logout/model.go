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

// Package logout implements OpenID Connect RP-initiated logout.
package logout

import (
	"context"
	"net/http"
)

// FlowStatus is the status of an authentication flow the logout request is resumed from.
type FlowStatus string

const (
	FlowStatusNone             FlowStatus = "NONE"
	FlowStatusIncomplete       FlowStatus = "INCOMPLETE"
	FlowStatusSuccessCompleted FlowStatus = "SUCCESS_COMPLETED"
)

// ParseFlowStatus maps a raw flow status to a FlowStatus, defaulting to FlowStatusNone.
func ParseFlowStatus(raw string) FlowStatus {
	switch FlowStatus(raw) {
	case FlowStatusIncomplete:
		return FlowStatusIncomplete
	case FlowStatusSuccessCompleted:
		return FlowStatusSuccessCompleted
	default:
		return FlowStatusNone
	}
}

type flowStatusContextKey struct{}

// WithFlowStatus returns a context carrying the flow status of the request. The server sets it
// through FlowStatusMiddleware. A server embedding the logout handler sets it from its own
// authentication framework.
func WithFlowStatus(ctx context.Context, status FlowStatus) context.Context {
	return context.WithValue(ctx, flowStatusContextKey{}, status)
}

// FlowStatusMiddleware reads the flow status from the named request header. The header must
// be set by a trusted upstream that strips it from client requests.
func FlowStatusMiddleware(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(header)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithFlowStatus(r.Context(), ParseFlowStatus(raw))))
		})
	}
}

// FlowStatusFromContext returns the flow status carried by the context, or FlowStatusNone.
func FlowStatusFromContext(ctx context.Context) FlowStatus {
	if status, ok := ctx.Value(flowStatusContextKey{}).(FlowStatus); ok {
		return status
	}
	return FlowStatusNone
}

// LogoutRequestContext holds the inputs of a single logout request. It is passed by value
// and not modified once the request has been read.
type LogoutRequestContext struct {
	// SessionState is the value of the session cookie. Empty when the cookie was not sent.
	SessionState          string
	Consent               string
	SessionDataKey        string
	IDTokenHint           string
	PostLogoutRedirectURI string
	State                 string
	FlowStatus            FlowStatus
}

// HasSessionCookie reports whether the session cookie was received.
func (r LogoutRequestContext) HasSessionCookie() bool {
	return r.SessionState != ""
}

// DecisionType is the kind of a logout decision.
type DecisionType string

const (
	DecisionTypeRedirect DecisionType = "redirect"
	DecisionTypeError    DecisionType = "error"
)

// LogoutDecision is the single outcome of a logout request. Both kinds are delivered to the
// user agent as a redirect to Location; error decisions point at the error page.
type LogoutDecision struct {
	Type               DecisionType
	Location           string
	ErrorCode          string
	ErrorMessage       string
	ClearSessionCookie bool
	Reason             string
}

// IsError reports whether the decision is an error decision.
func (d LogoutDecision) IsError() bool {
	return d.Type == DecisionTypeError
}

// VerifiedIDToken holds the claims of an ID token hint whose signature has been verified.
type VerifiedIDToken struct {
	Subject      string
	ClientID     string
	Audience     []string
	Issuer       string
	TenantDomain string
	SessionID    string
}
