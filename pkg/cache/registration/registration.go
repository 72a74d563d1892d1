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

// Package registration instantiates the configured cache client
package registration

import (
	"fmt"

	"github.com/halgateway/halgate/pkg/cache"
	"github.com/halgateway/halgate/pkg/cache/badger"
	"github.com/halgateway/halgate/pkg/cache/bbolt"
	"github.com/halgateway/halgate/pkg/cache/memory"
	"github.com/halgateway/halgate/pkg/cache/options"
	"github.com/halgateway/halgate/pkg/cache/redis"
)

// NewCache returns a connected cache client for the provider named in the
// provided options
func NewCache(name string, cfg *options.Options) (cache.Client, error) {
	if cfg == nil {
		cfg = options.New()
	}
	var c cache.Client
	switch cfg.Provider {
	case "", options.ProviderMemory:
		c = memory.New(name, cfg)
	case options.ProviderRedis:
		c = redis.New(name, cfg)
	case options.ProviderBBolt:
		c = bbolt.New(name, cfg)
	case options.ProviderBadger:
		c = badger.New(name, cfg)
	default:
		return nil, fmt.Errorf("invalid cache provider: %s", cfg.Provider)
	}
	if err := c.Connect(); err != nil {
		return nil, err
	}
	return c, nil
}
