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
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zitadel/schema"

	"github.com/asgardeo/oidclogout/internal/system/log"
	"github.com/asgardeo/oidclogout/internal/system/utils"
)

// logoutRequest is the form of an RP-initiated logout request.
type logoutRequest struct {
	Consent               string `schema:"consent"`
	SessionDataKey        string `schema:"sessionDataKey"`
	IDTokenHint           string `schema:"id_token_hint"`
	PostLogoutRedirectURI string `schema:"post_logout_redirect_uri"`
	State                 string `schema:"state"`
}

// LogoutHandler serves the RP-initiated logout endpoint.
type LogoutHandler struct {
	coordinator  LogoutCoordinatorInterface
	cookieName   string
	secureCookie bool
	decoder      *schema.Decoder
}

// NewLogoutHandler creates a logout handler reading the session state from the named cookie.
func NewLogoutHandler(coordinator LogoutCoordinatorInterface, cookieName string,
	secureCookie bool) *LogoutHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &LogoutHandler{
		coordinator:  coordinator,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		decoder:      decoder,
	}
}

// RegisterRoutes registers the logout endpoint for both GET and POST requests.
func (h *LogoutHandler) RegisterRoutes(router chi.Router) {
	router.Get(OIDCLogoutEndpoint, h.HandleLogoutRequest)
	router.Post(OIDCLogoutEndpoint, h.HandleLogoutRequest)
}

// HandleLogoutRequest handles an RP-initiated logout request.
func (h *LogoutHandler) HandleLogoutRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LogoutHandler"))

	if err := r.ParseForm(); err != nil {
		logger.Debug("Failed to parse the logout request", log.Error(err))
		utils.WriteJSONError(w, "invalid_request", "Failed to parse request body", http.StatusBadRequest, nil)
		return
	}
	form := new(logoutRequest)
	if err := h.decoder.Decode(form, r.Form); err != nil {
		logger.Debug("Failed to decode the logout request", log.Error(err))
		utils.WriteJSONError(w, "invalid_request", "Invalid logout request parameters", http.StatusBadRequest, nil)
		return
	}

	sessionState := ""
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		sessionState = cookie.Value
	}

	decision := h.coordinator.Handle(r.Context(), LogoutRequestContext{
		SessionState:          sessionState,
		Consent:               form.Consent,
		SessionDataKey:        form.SessionDataKey,
		IDTokenHint:           form.IDTokenHint,
		PostLogoutRedirectURI: form.PostLogoutRedirectURI,
		State:                 form.State,
		FlowStatus:            FlowStatusFromContext(r.Context()),
	})

	if decision.ClearSessionCookie {
		http.SetCookie(w, h.expiredSessionCookie())
	}
	if decision.IsError() {
		logger.Debug("Logout request failed", log.String("code", decision.ErrorCode),
			log.String("message", decision.ErrorMessage))
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	http.Redirect(w, r, decision.Location, http.StatusFound)
}

func (h *LogoutHandler) expiredSessionCookie() *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if h.secureCookie {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
