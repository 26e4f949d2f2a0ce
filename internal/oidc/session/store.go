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

package session

import "context"

// SessionStateStoreInterface stores parameter bags keyed by an opaque identifier.
// Absence of an entry is a normal result, not an error.
type SessionStateStoreInterface interface {
	// Add stores the entry under the identifier, replacing any existing entry.
	Add(ctx context.Context, id string, entry SessionCacheEntry) error
	// Lookup returns the entry for the identifier and whether it exists.
	Lookup(ctx context.Context, id string) (SessionCacheEntry, bool, error)
	// Invalidate removes the entry and reports whether it existed. For any number of
	// concurrent invalidations of the same identifier, at most one reports true.
	Invalidate(ctx context.Context, id string) (bool, error)
}
