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

// Package caching provides the GET response-caching wrapper and the ETag
// derivations used for conditional requests
package caching

import (
	"bytes"
	"net/http"
	"time"

	"github.com/halgateway/halgate/pkg/cache"
	"github.com/halgateway/halgate/pkg/gateway/headers"
	"github.com/halgateway/halgate/pkg/gateway/middleware"
	"github.com/halgateway/halgate/pkg/observability/metrics"
	"github.com/halgateway/halgate/pkg/router"
)

// responseBuffer captures the inner handler's response so it can be
// validated, cached and replayed
type responseBuffer struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{header: make(http.Header), status: http.StatusOK}
}

func (rb *responseBuffer) Header() http.Header { return rb.header }

func (rb *responseBuffer) WriteHeader(code int) { rb.status = code }

func (rb *responseBuffer) Write(b []byte) (int, error) { return rb.body.Write(b) }

// Middleware returns the response-caching wrapper. Only GET requests are
// cached; all other methods pass through untouched, with no conditional
// headers added. A GET whose If-None-Match equals the current ETag is
// answered 304 with an empty body, whether the tag came from the response
// cache or from a fresh handler invocation.
func Middleware(c cache.Client, cacheName string, ttl time.Duration) middleware.Middleware {
	ttlSeconds := int(ttl.Seconds())
	return func(next router.Handler) router.Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			if r.Method != http.MethodGet {
				return next(w, r)
			}
			key := r.URL.Path
			if r.URL.RawQuery != "" {
				key += "?" + r.URL.RawQuery
			}

			if data, ls, err := c.Retrieve(key); err == nil {
				if d, derr := UnsealDocument(data); derr == nil {
					metrics.CacheObjectOperations.WithLabelValues(cacheName,
						"retrieve", ls.String()).Inc()
					respondFromDocument(w, r, d, ttlSeconds)
					return nil
				}
				// an unreadable entry is dropped and recomputed
				c.Remove(key)
			} else {
				metrics.CacheObjectOperations.WithLabelValues(cacheName,
					"retrieve", ls.String()).Inc()
			}

			rb := newResponseBuffer()
			if err := next(rb, r); err != nil {
				return err
			}

			etag := rb.header.Get(headers.NameETag)
			if etag == "" {
				etag = contentETag(rb.body.Bytes())
			}

			if rb.status >= 200 && rb.status < 300 {
				d := &Document{
					StatusCode: rb.status,
					Headers:    rb.header,
					Body:       rb.body.Bytes(),
					ETag:       etag,
					StoredAt:   time.Now(),
				}
				if sealed, err := d.Seal(); err == nil {
					if err := c.Store(key, sealed, ttl); err == nil {
						metrics.CacheObjectOperations.WithLabelValues(cacheName,
							"store", "ok").Inc()
					} else {
						metrics.CacheObjectOperations.WithLabelValues(cacheName,
							"store", "error").Inc()
					}
				}
			}

			if notModified(r, etag, w, ttlSeconds) {
				return nil
			}
			copyHeader(w.Header(), rb.header)
			headers.SetResultHeaders(w.Header(), etag, ttlSeconds,
				headers.ValueXCacheMiss)
			w.WriteHeader(rb.status)
			w.Write(rb.body.Bytes())
			return nil
		}
	}
}

func respondFromDocument(w http.ResponseWriter, r *http.Request, d *Document,
	ttlSeconds int) {
	if notModified(r, d.ETag, w, ttlSeconds) {
		return
	}
	copyHeader(w.Header(), d.Headers)
	headers.SetResultHeaders(w.Header(), d.ETag, ttlSeconds,
		headers.ValueXCacheHit)
	w.WriteHeader(d.StatusCode)
	w.Write(d.Body)
}

// notModified answers the request with a bodyless 304 when its
// If-None-Match equals the current etag
func notModified(r *http.Request, etag string, w http.ResponseWriter,
	ttlSeconds int) bool {
	if inm := r.Header.Get(headers.NameIfNoneMatch); inm == "" || inm != etag {
		return false
	}
	w.Header().Set(headers.NameETag, etag)
	w.Header().Set(headers.NameCacheControl, headers.CacheControlValue(ttlSeconds))
	w.WriteHeader(http.StatusNotModified)
	return true
}

func copyHeader(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Set(k, v)
		}
	}
}
