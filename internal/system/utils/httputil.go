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

// Package utils provides utility functions shared across the server.
package utils

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/asgardeo/oidclogout/internal/system/log"
)

// WriteJSONError writes a JSON error response with the given details.
func WriteJSONError(w http.ResponseWriter, code, desc string, statusCode int, respHeaders []map[string]string) {
	logger := log.GetLogger()
	logger.Error("Error in HTTP response", log.String("error", code), log.String("description", desc))

	for _, header := range respHeaders {
		for key, value := range header {
			w.Header().Set(key, value)
		}
	}
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(map[string]string{
		"error":             code,
		"error_description": desc,
	})
	if err != nil {
		logger.Error("Failed to write JSON error response", log.Error(err))
	}
}

// AppendQueryParam appends a query parameter to the given URI, keeping the existing query and
// fragment untouched. The value is query escaped.
func AppendQueryParam(uri, key, value string) string {
	base, fragment, hasFragment := strings.Cut(uri, "#")

	separator := "?"
	if strings.Contains(base, "?") {
		separator = "&"
		if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
			separator = ""
		}
	}

	result := base + separator + key + "=" + url.QueryEscape(value)
	if hasFragment {
		result += "#" + fragment
	}
	return result
}

// GetURIWithQueryParams appends the given ordered key-value pairs to the URI.
func GetURIWithQueryParams(uri string, keyValues ...string) string {
	result := uri
	for i := 0; i+1 < len(keyValues); i += 2 {
		result = AppendQueryParam(result, keyValues[i], keyValues[i+1])
	}
	return result
}
