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
	"regexp"
	"strings"
	"sync"

	"github.com/asgardeo/oidclogout/internal/system/log"
)

// RedirectURIResolver validates post logout redirect URIs against registered callbacks.
type RedirectURIResolver struct {
	defaultRedirectURL string
	patterns           sync.Map
}

// NewRedirectURIResolver creates a resolver falling back to the given URL when the request
// carries no post logout redirect URI.
func NewRedirectURIResolver(defaultRedirectURL string) *RedirectURIResolver {
	return &RedirectURIResolver{defaultRedirectURL: defaultRedirectURL}
}

// Resolve returns the URI the user agent is sent to after logout. An empty candidate
// resolves to the default URL.
func (r *RedirectURIResolver) Resolve(candidate string, callbacks []string) (string, *LogoutError) {
	if candidate == "" {
		return r.defaultRedirectURL, nil
	}
	if !r.Matches(candidate, callbacks) {
		return "", newLogoutError(ErrorKindPostLogoutURIMismatch, nil)
	}
	return candidate, nil
}

// Matches reports whether the candidate matches any of the registered callbacks. A callback
// prefixed with "regexp=" must match the whole candidate; any other callback must be equal
// to it.
func (r *RedirectURIResolver) Matches(candidate string, callbacks []string) bool {
	for _, callback := range callbacks {
		if expr, ok := strings.CutPrefix(callback, RegexpCallbackPrefix); ok {
			if re := r.compile(expr); re != nil && re.MatchString(candidate) {
				return true
			}
			continue
		}
		if callback == candidate {
			return true
		}
	}
	return false
}

func (r *RedirectURIResolver) compile(expr string) *regexp.Regexp {
	if cached, ok := r.patterns.Load(expr); ok {
		return cached.(*regexp.Regexp)
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RedirectURIResolver")).
			Warn("Ignoring invalid callback expression", log.String("expression", expr), log.Error(err))
		return nil
	}
	r.patterns.Store(expr, re)
	return re
}
