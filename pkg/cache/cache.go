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

// Package cache defines the halgate cache interface and provides general
// cache functionality
package cache

import (
	"errors"
	"time"

	"github.com/halgateway/halgate/pkg/cache/options"
	"github.com/halgateway/halgate/pkg/cache/status"
)

// ErrKNF represents the error "key not found in cache"
var ErrKNF = errors.New("key not found in cache")

// Client is the interface for the supported caching fabrics.
// When making new cache providers, Retrieve() must return an error on cache miss.
type Client interface {
	Connect() error
	Store(cacheKey string, data []byte, ttl time.Duration) error
	Retrieve(cacheKey string) ([]byte, status.LookupStatus, error)
	Remove(cacheKeys ...string) error
	Close() error
	Configuration() *options.Options
}
