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

// Package redis is the redis implementation of the halgate cache and
// supports Standalone, Sentinel and Cluster
package redis

import (
	"fmt"
	"time"

	"github.com/halgateway/halgate/pkg/cache"
	"github.com/halgateway/halgate/pkg/cache/options"
	"github.com/halgateway/halgate/pkg/cache/status"

	"github.com/go-redis/redis"
)

var _ cache.Client = &CacheClient{}

// Client types
const (
	ClientTypeStandard = "standard"
	ClientTypeSentinel = "sentinel"
	ClientTypeCluster  = "cluster"
)

// CacheClient represents a redis cache client that conforms to the
// cache.Client interface
type CacheClient struct {
	Name   string
	Config *options.Options
	client redis.Cmdable
	closer func() error
}

// New returns a new redis cache client
func New(name string, cfg *options.Options) *CacheClient {
	if cfg == nil {
		cfg = options.New()
		cfg.Provider = options.ProviderRedis
	}
	return &CacheClient{Name: name, Config: cfg}
}

// Connect connects to the configured Redis endpoint
func (c *CacheClient) Connect() error {
	switch c.Config.Redis.ClientType {
	case ClientTypeSentinel:
		opts, err := c.sentinelOpts()
		if err != nil {
			return err
		}
		client := redis.NewFailoverClient(opts)
		c.closer = client.Close
		c.client = client
	case ClientTypeCluster:
		opts, err := c.clusterOpts()
		if err != nil {
			return err
		}
		client := redis.NewClusterClient(opts)
		c.closer = client.Close
		c.client = client
	default:
		opts, err := c.clientOpts()
		if err != nil {
			return err
		}
		client := redis.NewClient(opts)
		c.closer = client.Close
		c.client = client
	}
	return c.client.Ping().Err()
}

// Store places the data into the Redis Cache using the provided Key and TTL
func (c *CacheClient) Store(cacheKey string, data []byte, ttl time.Duration) error {
	return c.client.Set(cacheKey, data, ttl).Err()
}

// Retrieve gets data from the Redis Cache using the provided Key.
// Redis manages object expiration internally, so expired keys surface as misses.
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	res, err := c.client.Get(cacheKey).Result()
	if err == nil {
		return []byte(res), status.LookupStatusHit, nil
	}
	if err == redis.Nil {
		return nil, status.LookupStatusKeyMiss, cache.ErrKNF
	}
	return nil, status.LookupStatusError, err
}

// Remove removes the provided keys from the Redis Cache
func (c *CacheClient) Remove(cacheKeys ...string) error {
	return c.client.Del(cacheKeys...).Err()
}

// Close disconnects from the Redis Cache
func (c *CacheClient) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// Configuration returns the Configuration for the cache client
func (c *CacheClient) Configuration() *options.Options {
	return c.Config
}

func (c *CacheClient) clientOpts() (*redis.Options, error) {
	if c.Config.Redis.Endpoint == "" {
		return nil, fmt.Errorf("invalid endpoint: %s", c.Config.Redis.Endpoint)
	}
	o := &redis.Options{Addr: c.Config.Redis.Endpoint}
	if c.Config.Redis.Password != "" {
		o.Password = c.Config.Redis.Password
	}
	if c.Config.Redis.DB != 0 {
		o.DB = c.Config.Redis.DB
	}
	return o, nil
}

func (c *CacheClient) sentinelOpts() (*redis.FailoverOptions, error) {
	if c.Config.Redis.SentinelMaster == "" {
		return nil, fmt.Errorf("invalid sentinel_master: %s", c.Config.Redis.SentinelMaster)
	}
	if len(c.Config.Redis.Endpoints) == 0 {
		return nil, fmt.Errorf("invalid endpoints: %s", c.Config.Redis.Endpoints)
	}
	o := &redis.FailoverOptions{
		SentinelAddrs: c.Config.Redis.Endpoints,
		MasterName:    c.Config.Redis.SentinelMaster,
	}
	if c.Config.Redis.Password != "" {
		o.Password = c.Config.Redis.Password
	}
	return o, nil
}

func (c *CacheClient) clusterOpts() (*redis.ClusterOptions, error) {
	if len(c.Config.Redis.Endpoints) == 0 {
		return nil, fmt.Errorf("invalid endpoints: %s", c.Config.Redis.Endpoints)
	}
	o := &redis.ClusterOptions{Addrs: c.Config.Redis.Endpoints}
	if c.Config.Redis.Password != "" {
		o.Password = c.Config.Redis.Password
	}
	return o, nil
}
