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

// Package options defines the configuration options for a halgate cache
package options

// Provider names
const (
	ProviderMemory = "memory"
	ProviderRedis  = "redis"
	ProviderBBolt  = "bbolt"
	ProviderBadger = "badger"
)

// Options is a collection of defining the user-configurable cache properties
type Options struct {
	// Provider is the cache provider name: memory, redis, bbolt or badger
	Provider string `yaml:"provider,omitempty"`
	// Redis is the Redis-specific configuration, used when Provider is redis
	Redis *RedisOptions `yaml:"redis,omitempty"`
	// BBolt is the BBolt-specific configuration, used when Provider is bbolt
	BBolt *BBoltOptions `yaml:"bbolt,omitempty"`
	// Badger is the Badger-specific configuration, used when Provider is badger
	Badger *BadgerOptions `yaml:"badger,omitempty"`
}

// RedisOptions is a collection of the Redis-specific cache properties
type RedisOptions struct {
	// ClientType is standard, sentinel or cluster
	ClientType string `yaml:"client_type,omitempty"`
	// Endpoint is the host:port of the standalone redis server
	Endpoint string `yaml:"endpoint,omitempty"`
	// Endpoints is the list of sentinel/cluster endpoints
	Endpoints []string `yaml:"endpoints,omitempty"`
	// SentinelMaster is the sentinel master name
	SentinelMaster string `yaml:"sentinel_master,omitempty"`
	// Password is the optional server password
	Password string `yaml:"password,omitempty"`
	// DB selects the redis database on standalone clients
	DB int `yaml:"db,omitempty"`
}

// BBoltOptions is a collection of the BBolt-specific cache properties
type BBoltOptions struct {
	Filename string `yaml:"filename,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`
}

// BadgerOptions is a collection of the Badger-specific cache properties
type BadgerOptions struct {
	Directory      string `yaml:"directory,omitempty"`
	ValueDirectory string `yaml:"value_directory,omitempty"`
}

// New returns an Options reference with default values
func New() *Options {
	return &Options{
		Provider: ProviderMemory,
		Redis:    &RedisOptions{ClientType: "standard", Endpoint: "redis:6379"},
		BBolt:    &BBoltOptions{Filename: "halgate.db", Bucket: "halgate"},
		Badger:   &BadgerOptions{Directory: "/tmp/halgate", ValueDirectory: "/tmp/halgate"},
	}
}
