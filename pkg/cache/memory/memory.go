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

// Package memory is the memory implementation of the halgate cache and uses
// a sync.Map to manage cache objects
package memory

import (
	"sync"
	"time"

	"github.com/halgateway/halgate/pkg/cache"
	"github.com/halgateway/halgate/pkg/cache/options"
	"github.com/halgateway/halgate/pkg/cache/status"
)

var _ cache.Client = &CacheClient{}

// CacheClient defines a memory cache client that conforms to the cache.Client interface
type CacheClient struct {
	Name   string
	Config *options.Options
	client sync.Map
}

type cacheObject struct {
	data    []byte
	expires time.Time
}

// New returns a new memory cache client
func New(name string, cfg *options.Options) *CacheClient {
	if cfg == nil {
		cfg = options.New()
	}
	return &CacheClient{Name: name, Config: cfg}
}

// Connect initializes the cache
func (c *CacheClient) Connect() error {
	return nil
}

// Store places an object in the cache using the specified key and ttl.
// A zero ttl stores the object without an expiry; a negative ttl stores it
// already expired.
func (c *CacheClient) Store(cacheKey string, data []byte, ttl time.Duration) error {
	o := &cacheObject{data: data}
	if ttl != 0 {
		o.expires = time.Now().Add(ttl)
	}
	c.client.Store(cacheKey, o)
	return nil
}

// Retrieve gets an object from the cache, reporting expired entries distinctly
// from missing keys
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	v, ok := c.client.Load(cacheKey)
	if !ok {
		return nil, status.LookupStatusKeyMiss, cache.ErrKNF
	}
	o := v.(*cacheObject)
	if !o.expires.IsZero() && o.expires.Before(time.Now()) {
		c.client.Delete(cacheKey)
		return nil, status.LookupStatusExpired, cache.ErrKNF
	}
	return o.data, status.LookupStatusHit, nil
}

// Remove deletes the provided keys from the cache
func (c *CacheClient) Remove(cacheKeys ...string) error {
	for _, k := range cacheKeys {
		c.client.Delete(k)
	}
	return nil
}

// Close is not used by the memory cache
func (c *CacheClient) Close() error {
	return nil
}

// Configuration returns the Configuration for the cache client
func (c *CacheClient) Configuration() *options.Options {
	return c.Config
}
