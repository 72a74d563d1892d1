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

// Package badger is the BadgerDB implementation of the halgate cache
package badger

import (
	"time"

	"github.com/halgateway/halgate/pkg/cache"
	"github.com/halgateway/halgate/pkg/cache/options"
	"github.com/halgateway/halgate/pkg/cache/status"

	"github.com/dgraph-io/badger"
)

var _ cache.Client = &CacheClient{}

// CacheClient describes a Badger cache client
type CacheClient struct {
	Name   string
	Config *options.Options
	dbh    *badger.DB
}

// New returns a new badger cache client
func New(name string, cfg *options.Options) *CacheClient {
	if cfg == nil {
		cfg = options.New()
		cfg.Provider = options.ProviderBadger
	}
	return &CacheClient{Name: name, Config: cfg}
}

// Connect opens the configured Badger key-value store
func (c *CacheClient) Connect() error {
	opts := badger.DefaultOptions(c.Config.Badger.Directory)
	opts.ValueDir = c.Config.Badger.ValueDirectory
	opts.Logger = nil

	var err error
	c.dbh, err = badger.Open(opts)
	return err
}

// Store places the data into the Badger Cache using the provided Key and TTL.
// A zero ttl stores the entry without an expiry; a negative ttl stores it
// already expired.
func (c *CacheClient) Store(cacheKey string, data []byte, ttl time.Duration) error {
	return c.dbh.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(cacheKey), data)
		if ttl != 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Retrieve gets data from the Badger Cache using the provided Key.
// Badger manages object expiration internally, so expired keys surface as misses.
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	var data []byte
	err := c.dbh.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cacheKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == nil {
		return data, status.LookupStatusHit, nil
	}
	if err == badger.ErrKeyNotFound {
		return nil, status.LookupStatusKeyMiss, cache.ErrKNF
	}
	return nil, status.LookupStatusError, err
}

// Remove removes the provided keys from the Badger Cache
func (c *CacheClient) Remove(cacheKeys ...string) error {
	return c.dbh.Update(func(txn *badger.Txn) error {
		for _, k := range cacheKeys {
			if err := txn.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the Badger store
func (c *CacheClient) Close() error {
	return c.dbh.Close()
}

// Configuration returns the Configuration for the cache client
func (c *CacheClient) Configuration() *options.Options {
	return c.Config
}
