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
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type stubCoordinator struct {
	decision LogoutDecision
	requests []LogoutRequestContext
}

func (s *stubCoordinator) Handle(_ context.Context, req LogoutRequestContext) LogoutDecision {
	s.requests = append(s.requests, req)
	return s.decision
}

type LogoutHandlerTestSuite struct {
	suite.Suite
	coordinator *stubCoordinator
	router      chi.Router
}

func TestLogoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(LogoutHandlerTestSuite))
}

func (suite *LogoutHandlerTestSuite) SetupTest() {
	suite.coordinator = &stubCoordinator{
		decision: LogoutDecision{Type: DecisionTypeRedirect, Location: testCallbackURL, Reason: reasonLoggedOut},
	}
	suite.router = chi.NewRouter()
	NewLogoutHandler(suite.coordinator, "opbs", true).RegisterRoutes(suite.router)
}

func (suite *LogoutHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)
	return rr
}

func (suite *LogoutHandlerTestSuite) TestGetRequest() {
	query := url.Values{
		"id_token_hint":            {"a.b.c"},
		"post_logout_redirect_uri": {testCallbackURL},
		"state":                    {"af0ifjsldkj"},
		"client_id":                {testClientID},
	}
	req := httptest.NewRequest(http.MethodGet, OIDCLogoutEndpoint+"?"+query.Encode(), nil)
	req.AddCookie(&http.Cookie{Name: "opbs", Value: testSessionState})

	rr := suite.serve(req)

	assert.Equal(suite.T(), http.StatusFound, rr.Code)
	assert.Equal(suite.T(), testCallbackURL, rr.Header().Get("Location"))
	assert.Equal(suite.T(), "no-store", rr.Header().Get("Cache-Control"))
	suite.Require().Len(suite.coordinator.requests, 1)
	assert.Equal(suite.T(), LogoutRequestContext{
		SessionState:          testSessionState,
		IDTokenHint:           "a.b.c",
		PostLogoutRedirectURI: testCallbackURL,
		State:                 "af0ifjsldkj",
		FlowStatus:            FlowStatusNone,
	}, suite.coordinator.requests[0])
	assert.Empty(suite.T(), rr.Result().Cookies())
}

func (suite *LogoutHandlerTestSuite) TestPostConsentRequest() {
	form := url.Values{"consent": {"approve"}, "sessionDataKey": {generatedSessionDataKey}}
	req := httptest.NewRequest(http.MethodPost, OIDCLogoutEndpoint, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "opbs", Value: testSessionState})
	req = req.WithContext(WithFlowStatus(req.Context(), FlowStatusSuccessCompleted))
	suite.coordinator.decision.ClearSessionCookie = true

	rr := suite.serve(req)

	assert.Equal(suite.T(), http.StatusFound, rr.Code)
	suite.Require().Len(suite.coordinator.requests, 1)
	got := suite.coordinator.requests[0]
	assert.Equal(suite.T(), "approve", got.Consent)
	assert.Equal(suite.T(), generatedSessionDataKey, got.SessionDataKey)
	assert.Equal(suite.T(), FlowStatusSuccessCompleted, got.FlowStatus)

	cookies := rr.Result().Cookies()
	suite.Require().Len(cookies, 1)
	assert.Equal(suite.T(), "opbs", cookies[0].Name)
	assert.Empty(suite.T(), cookies[0].Value)
	assert.Equal(suite.T(), -1, cookies[0].MaxAge)
	assert.True(suite.T(), cookies[0].Secure)
	assert.True(suite.T(), cookies[0].HttpOnly)
}

func (suite *LogoutHandlerTestSuite) TestMissingCookie() {
	req := httptest.NewRequest(http.MethodGet, OIDCLogoutEndpoint, nil)
	req.AddCookie(&http.Cookie{Name: "JSESSIONID", Value: "unrelated"})
	suite.coordinator.decision = LogoutDecision{
		Type:         DecisionTypeError,
		Location:     cookieNotReceivedURL,
		ErrorCode:    ErrorCodeAccessDenied,
		ErrorMessage: "opbs cookie not received. Missing session state.",
	}

	rr := suite.serve(req)

	assert.Equal(suite.T(), http.StatusFound, rr.Code)
	assert.Equal(suite.T(), cookieNotReceivedURL, rr.Header().Get("Location"))
	suite.Require().Len(suite.coordinator.requests, 1)
	assert.Empty(suite.T(), suite.coordinator.requests[0].SessionState)
}

func (suite *LogoutHandlerTestSuite) TestMethodNotAllowed() {
	rr := suite.serve(httptest.NewRequest(http.MethodPut, OIDCLogoutEndpoint, nil))

	assert.Equal(suite.T(), http.StatusMethodNotAllowed, rr.Code)
	assert.Empty(suite.T(), suite.coordinator.requests)
}

func (suite *LogoutHandlerTestSuite) TestMalformedQuery() {
	req := httptest.NewRequest(http.MethodGet, OIDCLogoutEndpoint, nil)
	req.URL.RawQuery = "state=%zz"

	rr := suite.serve(req)

	assert.Equal(suite.T(), http.StatusBadRequest, rr.Code)
	assert.Contains(suite.T(), rr.Body.String(), "invalid_request")
	assert.Empty(suite.T(), suite.coordinator.requests)
}

func (suite *LogoutHandlerTestSuite) TestInsecureCookieUsesLaxSameSite() {
	router := chi.NewRouter()
	NewLogoutHandler(suite.coordinator, "opbs", false).RegisterRoutes(router)
	suite.coordinator.decision.ClearSessionCookie = true
	req := httptest.NewRequest(http.MethodGet, OIDCLogoutEndpoint, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	cookies := rr.Result().Cookies()
	suite.Require().Len(cookies, 1)
	assert.False(suite.T(), cookies[0].Secure)
	assert.Equal(suite.T(), http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestParseFlowStatus(t *testing.T) {
	assert.Equal(t, FlowStatusIncomplete, ParseFlowStatus("INCOMPLETE"))
	assert.Equal(t, FlowStatusSuccessCompleted, ParseFlowStatus("SUCCESS_COMPLETED"))
	assert.Equal(t, FlowStatusNone, ParseFlowStatus(""))
	assert.Equal(t, FlowStatusNone, ParseFlowStatus("FAIL_COMPLETED"))
	assert.Equal(t, FlowStatusNone, FlowStatusFromContext(context.Background()))
}

func (suite *LogoutHandlerTestSuite) TestFlowStatusMiddleware() {
	router := chi.NewRouter()
	router.Use(FlowStatusMiddleware("X-Flow-Status"))
	NewLogoutHandler(suite.coordinator, "opbs", true).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, OIDCLogoutEndpoint, nil)
	req.Header.Set("X-Flow-Status", "SUCCESS_COMPLETED")
	router.ServeHTTP(httptest.NewRecorder(), req)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, OIDCLogoutEndpoint, nil))

	suite.Require().Len(suite.coordinator.requests, 2)
	assert.Equal(suite.T(), FlowStatusSuccessCompleted, suite.coordinator.requests[0].FlowStatus)
	assert.Equal(suite.T(), FlowStatusNone, suite.coordinator.requests[1].FlowStatus)
}
