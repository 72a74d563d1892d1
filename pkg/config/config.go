/*
 * Copyright 2025 The Halgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config provides the daemon's YAML configuration with defaults and
// load-time validation
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/halgateway/halgate/pkg/cache/options"
	"github.com/halgateway/halgate/pkg/observability/logging/level"
	"github.com/halgateway/halgate/pkg/observability/tracing"
)

// Config is the root configuration object
type Config struct {
	Frontend *FrontendConfig `yaml:"frontend,omitempty"`
	Metrics  *MetricsConfig  `yaml:"metrics,omitempty"`
	Logging  *LoggingConfig  `yaml:"logging,omitempty"`
	Tracing  *TracingConfig  `yaml:"tracing,omitempty"`
	Auth     *AuthConfig     `yaml:"auth,omitempty"`
	Caching  *CachingConfig  `yaml:"caching,omitempty"`
}

// FrontendConfig configures the main HTTP listener
type FrontendConfig struct {
	// ListenAddress is the host:port the gateway serves on
	ListenAddress string `yaml:"listen_address,omitempty"`
	// ReadHeaderTimeoutMS bounds request header reads
	ReadHeaderTimeoutMS int `yaml:"read_header_timeout_ms,omitempty"`
}

// MetricsConfig configures the prometheus metrics listener
type MetricsConfig struct {
	// ListenAddress is the host:port the /metrics endpoint serves on;
	// empty disables the listener
	ListenAddress string `yaml:"listen_address,omitempty"`
}

// LoggingConfig configures the application logger
type LoggingConfig struct {
	// LogLevel is debug, info, warn, error or fatal
	LogLevel string `yaml:"log_level,omitempty"`
	// LogFile routes log output to a rotated file; empty logs to console
	LogFile string `yaml:"log_file,omitempty"`
}

// TracingConfig configures the OpenTelemetry tracer
type TracingConfig struct {
	// Provider is none or stdout
	Provider string `yaml:"provider,omitempty"`
}

// AuthConfig configures the authentication layer
type AuthConfig struct {
	// CookieDomain is the optional Domain attribute on session cookies
	CookieDomain string `yaml:"cookie_domain,omitempty"`
	// Users seeds the in-process authenticator
	Users []SeedUser `yaml:"users,omitempty"`
}

// SeedUser is one user provisioned into the in-process authenticator at
// startup
type SeedUser struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name,omitempty"`
	Secret string   `yaml:"secret"`
	Roles  []string `yaml:"roles,omitempty"`
	APIKey string   `yaml:"api_key,omitempty"`
}

// CachingConfig configures the response cache
type CachingConfig struct {
	// Cache selects and configures the backend
	Cache *options.Options `yaml:"cache,omitempty"`
	// TTLSeconds is the response memoization lifetime
	TTLSeconds int `yaml:"ttl_seconds,omitempty"`
}

// TTL returns the response cache TTL as a duration
func (c *CachingConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// New returns a Config with default values
func New() *Config {
	return &Config{
		Frontend: &FrontendConfig{
			ListenAddress:       ":8480",
			ReadHeaderTimeoutMS: 10000,
		},
		Metrics: &MetricsConfig{ListenAddress: ":8481"},
		Logging: &LoggingConfig{LogLevel: string(level.Info)},
		Tracing: &TracingConfig{Provider: tracing.ProviderNone},
		Auth:    &AuthConfig{},
		Caching: &CachingConfig{Cache: options.New(), TTLSeconds: 60},
	}
}

// Load reads, parses and validates the YAML file at path, applied over the
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	c := New()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration for values the daemon cannot start with
func (c *Config) Validate() error {
	if c.Frontend == nil || c.Frontend.ListenAddress == "" {
		return fmt.Errorf("frontend.listen_address is required")
	}
	if c.Logging != nil && c.Logging.LogLevel != "" {
		if level.GetID(level.Level(c.Logging.LogLevel)) == 0 {
			return fmt.Errorf("invalid logging.log_level: %s", c.Logging.LogLevel)
		}
	}
	if c.Tracing != nil {
		switch c.Tracing.Provider {
		case "", tracing.ProviderNone, tracing.ProviderStdout:
		default:
			return fmt.Errorf("invalid tracing.provider: %s", c.Tracing.Provider)
		}
	}
	if c.Auth != nil {
		for _, su := range c.Auth.Users {
			if su.ID == "" || su.Secret == "" {
				return fmt.Errorf("auth.users entries require id and secret")
			}
		}
	}
	if c.Caching != nil {
		if c.Caching.TTLSeconds < 0 {
			return fmt.Errorf("caching.ttl_seconds must not be negative")
		}
		if c.Caching.Cache != nil {
			switch c.Caching.Cache.Provider {
			case "", options.ProviderMemory, options.ProviderRedis,
				options.ProviderBBolt, options.ProviderBadger:
			default:
				return fmt.Errorf("invalid caching.cache.provider: %s",
					c.Caching.Cache.Provider)
			}
		}
	}
	return nil
}
