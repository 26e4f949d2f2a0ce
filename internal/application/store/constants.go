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

package store

import dbmodel "github.com/asgardeo/oidclogout/internal/system/database/model"

// QueryGetApplicationByClientID is the query to retrieve a registered application by its client ID.
var QueryGetApplicationByClientID = dbmodel.DBQuery{
	ID: "ASQ-APP_MGT-01",
	Query: "SELECT CLIENT_ID, APP_NAME, TENANT_DOMAIN, CALLBACK_URIS, SIGNING_KEY_POLICY, " +
		"SKIP_LOGOUT_CONSENT, CERT_TYPE, CERT_VALUE FROM SP_OAUTH_APP WHERE CLIENT_ID = $1",
}
