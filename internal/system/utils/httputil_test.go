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

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type HTTPUtilTestSuite struct {
	suite.Suite
}

func TestHTTPUtilSuite(t *testing.T) {
	suite.Run(t, new(HTTPUtilTestSuite))
}

func (suite *HTTPUtilTestSuite) TestAppendQueryParam() {
	testCases := []struct {
		name     string
		uri      string
		key      string
		value    string
		expected string
	}{
		{"NoQuery", "http://localhost:8080/playground2/oauth2client", "state", "n6556",
			"http://localhost:8080/playground2/oauth2client?state=n6556"},
		{"ExistingQuery", "http://localhost:8080/playground2/oauth2client?x=y", "state", "n6556",
			"http://localhost:8080/playground2/oauth2client?x=y&state=n6556"},
		{"TrailingQuestionMark", "http://localhost/cb?", "state", "abc", "http://localhost/cb?state=abc"},
		{"TrailingAmpersand", "http://localhost/cb?a=b&", "state", "abc", "http://localhost/cb?a=b&state=abc"},
		{"WithFragment", "http://localhost/cb#section", "state", "abc", "http://localhost/cb?state=abc#section"},
		{"EscapedValue", "/error", "oauthErrorMsg", "End User denied the logout request",
			"/error?oauthErrorMsg=End+User+denied+the+logout+request"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.expected, AppendQueryParam(tc.uri, tc.key, tc.value))
		})
	}
}

func (suite *HTTPUtilTestSuite) TestGetURIWithQueryParams() {
	result := GetURIWithQueryParams("/authenticationendpoint/oauth2_error.do",
		"oauthErrorCode", "access_denied", "oauthErrorMsg", "a b")
	assert.Equal(suite.T(),
		"/authenticationendpoint/oauth2_error.do?oauthErrorCode=access_denied&oauthErrorMsg=a+b", result)

	// A dangling key without a value is ignored.
	assert.Equal(suite.T(), "/page", GetURIWithQueryParams("/page", "orphan"))
}

func (suite *HTTPUtilTestSuite) TestWriteJSONError() {
	rr := httptest.NewRecorder()
	WriteJSONError(rr, "invalid_request", "Method not allowed", http.StatusMethodNotAllowed,
		[]map[string]string{{"Allow": "GET, POST"}})

	assert.Equal(suite.T(), http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(suite.T(), "GET, POST", rr.Header().Get("Allow"))
	assert.Equal(suite.T(), "application/json", rr.Header().Get("Content-Type"))

	var body map[string]string
	assert.NoError(suite.T(), json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(suite.T(), "invalid_request", body["error"])
	assert.Equal(suite.T(), "Method not allowed", body["error_description"])
}

func (suite *HTTPUtilTestSuite) TestIsBlank() {
	assert.True(suite.T(), IsBlank(""))
	assert.True(suite.T(), IsBlank("  \t"))
	assert.False(suite.T(), IsBlank(" approve "))
}

func (suite *HTTPUtilTestSuite) TestGenerateUUID() {
	first := GenerateUUID()
	second := GenerateUUID()
	assert.Len(suite.T(), first, 36)
	assert.NotEqual(suite.T(), first, second)
}
