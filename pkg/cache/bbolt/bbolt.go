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

// Package bbolt is the bbolt implementation of the halgate cache
package bbolt

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/halgateway/halgate/pkg/cache"
	"github.com/halgateway/halgate/pkg/cache/options"
	"github.com/halgateway/halgate/pkg/cache/status"
	"go.etcd.io/bbolt"
)

var _ cache.Client = &CacheClient{}

// CacheClient describes a BBolt cache client
type CacheClient struct {
	Name   string
	Config *options.Options
	dbh    *bbolt.DB
}

// New returns a new bbolt cache client
func New(name string, cfg *options.Options) *CacheClient {
	if cfg == nil {
		cfg = options.New()
		cfg.Provider = options.ProviderBBolt
	}
	return &CacheClient{Name: name, Config: cfg}
}

// Connect opens the configured BBolt database file and ensures the bucket exists
func (c *CacheClient) Connect() error {
	var err error
	c.dbh, err = bbolt.Open(c.Config.BBolt.Filename, 0o644,
		&bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return err
	}
	return c.dbh.Update(func(tx *bbolt.Tx) error {
		_, err2 := tx.CreateBucketIfNotExists([]byte(c.Config.BBolt.Bucket))
		if err2 != nil {
			return fmt.Errorf("create bucket: %w", err2)
		}
		return nil
	})
}

// bbolt has no native TTL, so each value is prefixed with an 8-byte
// expiration envelope of epoch nanoseconds. A zero ttl writes a zero prefix,
// meaning no expiry; a negative ttl seals an already-expired envelope.
func sealEnvelope(data []byte, ttl time.Duration) []byte {
	out := make([]byte, 8+len(data))
	if ttl != 0 {
		binary.BigEndian.PutUint64(out, uint64(time.Now().Add(ttl).UnixNano()))
	}
	copy(out[8:], data)
	return out
}

func openEnvelope(raw []byte) ([]byte, bool) {
	if len(raw) < 8 {
		return nil, false
	}
	exp := binary.BigEndian.Uint64(raw)
	if exp != 0 && time.Now().UnixNano() > int64(exp) {
		return nil, false
	}
	return raw[8:], true
}

// Store places an object in the cache using the specified key and ttl
func (c *CacheClient) Store(cacheKey string, data []byte, ttl time.Duration) error {
	return c.dbh.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(c.Config.BBolt.Bucket))
		return b.Put([]byte(cacheKey), sealEnvelope(data, ttl))
	})
}

// Retrieve looks for an object in the cache and returns it (or an error if not found)
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	var data []byte
	expired := false
	err := c.dbh.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(c.Config.BBolt.Bucket))
		raw := b.Get([]byte(cacheKey))
		if raw == nil {
			return cache.ErrKNF
		}
		var ok bool
		data, ok = openEnvelope(raw)
		if !ok {
			expired = true
			return cache.ErrKNF
		}
		// Get returns memory owned by the transaction
		data = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		if expired {
			c.Remove(cacheKey)
			return nil, status.LookupStatusExpired, err
		}
		return nil, status.LookupStatusKeyMiss, err
	}
	return data, status.LookupStatusHit, nil
}

// Remove removes an object from the cache
func (c *CacheClient) Remove(cacheKeys ...string) error {
	return c.dbh.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(c.Config.BBolt.Bucket))
		for _, k := range cacheKeys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the database handle
func (c *CacheClient) Close() error {
	if c.dbh == nil {
		return nil
	}
	return c.dbh.Close()
}

// Configuration returns the Configuration for the cache client
func (c *CacheClient) Configuration() *options.Options {
	return c.Config
}
