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

// Request parameters of the logout endpoint.
const (
	RequestParamConsent               = "consent"
	RequestParamSessionDataKey        = "sessionDataKey"
	RequestParamIDTokenHint           = "id_token_hint"
	RequestParamPostLogoutRedirectURI = "post_logout_redirect_uri"
	RequestParamState                 = "state"
)

// Query parameters appended to the error page URL.
const (
	ErrorPageParamCode    = "oauthErrorCode"
	ErrorPageParamMessage = "oauthErrorMsg"
)

// OAuth error codes carried by error decisions.
const (
	ErrorCodeAccessDenied = "access_denied"
	ErrorCodeServerError  = "server_error"
)

const (
	// OIDCLogoutEndpoint is the path the logout endpoint is served on.
	OIDCLogoutEndpoint = "/oidc/logout"

	// ConsentApprove is the consent value through which the end user approves the logout.
	ConsentApprove = "approve"

	// RegexpCallbackPrefix marks a registered callback that is a regular expression.
	RegexpCallbackPrefix = "regexp="

	// pending request parameters parked while consent is collected.
	pendingParamIDTokenHint           = "id_token_hint"
	pendingParamPostLogoutRedirectURI = "post_logout_redirect_uri"
	pendingParamState                 = "state"
	pendingParamSessionState          = "session_state"
)
