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

// Package config provides structures and functions for loading the server configurations.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
	Options  string `yaml:"options"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Identity DataSource `yaml:"identity"`
}

// CacheProperty defines the properties of an individual named cache.
type CacheProperty struct {
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled"`
	Size     int    `yaml:"size"`
	TTL      int    `yaml:"ttl"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	Disabled        bool            `yaml:"disabled"`
	Size            int             `yaml:"size"`
	TTL             int             `yaml:"ttl"`
	CleanupInterval int             `yaml:"cleanup_interval"`
	Properties      []CacheProperty `yaml:"properties,omitempty"`
}

// RedisConfig holds the Redis connection details.
type RedisConfig struct {
	Address   string `yaml:"address"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// SessionConfig holds the session state store configuration details. Session states are
// written by the login server, so only a store shared with it can resolve them. The in-memory
// store is only accepted in development mode.
type SessionConfig struct {
	Store       string      `yaml:"store"`
	TTL         int         `yaml:"ttl"`
	Development bool        `yaml:"development"`
	Redis       RedisConfig `yaml:"redis"`
}

// JWTConfig holds the JWT verification configuration details.
type JWTConfig struct {
	Issuer              string   `yaml:"issuer"`
	SignedWithSPKey     bool     `yaml:"signed_with_sp_key"`
	SupportedAlgorithms []string `yaml:"supported_algorithms"`
}

// LogoutConfig holds the RP-initiated logout endpoint configuration details.
type LogoutConfig struct {
	SkipUserConsent                bool   `yaml:"skip_user_consent"`
	HandleMissingSessionGracefully bool   `yaml:"handle_missing_session_gracefully"`
	SessionCookieName              string `yaml:"session_cookie_name"`
	DefaultRedirectURL             string `yaml:"default_redirect_url"`
	ConsentPageURL                 string `yaml:"consent_page_url"`
	LogoutPageURL                  string `yaml:"logout_page_url"`
	RetryPageURL                   string `yaml:"retry_page_url"`
	ErrorPageURL                   string `yaml:"error_page_url"`
	PendingRequestTTL              int    `yaml:"pending_request_ttl"`
	// FlowStatusHeader names the request header an upstream authentication framework uses to
	// pass the flow status of a resumed logout. Empty disables it.
	FlowStatusHeader               string `yaml:"flow_status_header"`
}

// OAuthConfig holds the OAuth configuration details.
type OAuthConfig struct {
	JWT    JWTConfig    `yaml:"jwt"`
	Logout LogoutConfig `yaml:"logout"`
}

// TenantConfig holds the tenant key configuration details.
type TenantConfig struct {
	DefaultDomain string `yaml:"default_domain"`
	KeyDirectory  string `yaml:"key_directory"`
}

// ApplicationCertificate holds the certificate reference of a statically registered application.
type ApplicationCertificate struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

// ApplicationConfig holds a statically registered OAuth application.
type ApplicationConfig struct {
	ClientID          string                 `yaml:"client_id"`
	Name              string                 `yaml:"name"`
	TenantDomain      string                 `yaml:"tenant_domain"`
	CallbackURLs      []string               `yaml:"callback_urls"`
	SigningKeyPolicy  string                 `yaml:"signing_key_policy"`
	SkipLogoutConsent bool                   `yaml:"skip_logout_consent"`
	Certificate       ApplicationCertificate `yaml:"certificate"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server       ServerConfig        `yaml:"server"`
	Security     SecurityConfig      `yaml:"security"`
	Database     DatabaseConfig      `yaml:"database"`
	Cache        CacheConfig         `yaml:"cache"`
	Session      SessionConfig       `yaml:"session"`
	OAuth        OAuthConfig         `yaml:"oauth"`
	Tenant       TenantConfig        `yaml:"tenant"`
	Applications []ApplicationConfig `yaml:"applications"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills the optional configurations that are not set in the file.
func applyDefaults(cfg *Config) {
	if cfg.Server.Hostname == "" {
		cfg.Server.Hostname = DefaultServerHostname
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	cfg.Session.Store = strings.ToLower(strings.TrimSpace(cfg.Session.Store))
	if cfg.Session.Store == "" {
		cfg.Session.Store = SessionStoreRedis
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = DefaultSessionTTL
	}
	if cfg.Session.Redis.KeyPrefix == "" {
		cfg.Session.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if len(cfg.OAuth.JWT.SupportedAlgorithms) == 0 {
		cfg.OAuth.JWT.SupportedAlgorithms = DefaultSupportedAlgorithms
	}

	logout := &cfg.OAuth.Logout
	if logout.SessionCookieName == "" {
		logout.SessionCookieName = DefaultSessionCookieName
	}
	if logout.ConsentPageURL == "" {
		logout.ConsentPageURL = DefaultConsentPageURL
	}
	if logout.LogoutPageURL == "" {
		logout.LogoutPageURL = DefaultLogoutPageURL
	}
	if logout.RetryPageURL == "" {
		logout.RetryPageURL = DefaultRetryPageURL
	}
	if logout.ErrorPageURL == "" {
		logout.ErrorPageURL = DefaultErrorPageURL
	}
	if logout.PendingRequestTTL <= 0 {
		logout.PendingRequestTTL = DefaultPendingRequestTTL
	}

	if cfg.Tenant.DefaultDomain == "" {
		cfg.Tenant.DefaultDomain = DefaultTenantDomain
	}
	if cfg.Tenant.KeyDirectory == "" {
		cfg.Tenant.KeyDirectory = DefaultTenantKeyDirectory
	}
}

// validate checks the loaded configurations for values that cannot be defaulted.
func validate(cfg *Config) error {
	switch cfg.Session.Store {
	case SessionStoreInMemory:
		if !cfg.Session.Development {
			return fmt.Errorf("session store %s is only allowed when session.development is enabled",
				SessionStoreInMemory)
		}
	case SessionStoreRedis:
		if cfg.Session.Redis.Address == "" {
			return fmt.Errorf("session.redis.address is required when the session store is %s",
				SessionStoreRedis)
		}
	default:
		return fmt.Errorf("unsupported session store type: %s", cfg.Session.Store)
	}

	for _, app := range cfg.Applications {
		if app.ClientID == "" {
			return fmt.Errorf("application %q is missing a client_id", app.Name)
		}
	}
	return nil
}
