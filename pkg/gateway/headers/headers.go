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

// Package headers provides functionality for HTTP Headers not provided by
// the builtin net/http package
package headers

import (
	"net/http"
	"strconv"
)

const (
	// Common HTTP Header Values

	// ValueApplicationJSON represents the HTTP Header Value of "application/json"
	ValueApplicationJSON = "application/json"
	// ValueApplicationHALJSON represents the HTTP Header Value of "application/hal+json"
	ValueApplicationHALJSON = "application/hal+json"
	// ValueApplicationProblemJSON represents the HTTP Header Value of "application/problem+json"
	ValueApplicationProblemJSON = "application/problem+json"
	// ValueApplicationXHTML represents the HTTP Header Value of "application/xhtml+xml"
	ValueApplicationXHTML = "application/xhtml+xml"
	// ValueTextHTML represents the HTTP Header Value of "text/html"
	ValueTextHTML = "text/html"
	// ValueMaxAge represents the HTTP Header Value of "max-age"
	ValueMaxAge = "max-age"
	// ValueMustRevalidate represents the HTTP Header Value of "must-revalidate"
	ValueMustRevalidate = "must-revalidate"
	// ValuePrivate represents the HTTP Header Value of "private"
	ValuePrivate = "private"
	// ValueXCacheHit represents the HTTP Header Value of "HIT"
	ValueXCacheHit = "HIT"
	// ValueXCacheMiss represents the HTTP Header Value of "MISS"
	ValueXCacheMiss = "MISS"

	// Common HTTP Header Names

	// NameAccept represents the HTTP Header Name of "Accept"
	NameAccept = "Accept"
	// NameAuthorization represents the HTTP Header Name of "Authorization"
	NameAuthorization = "Authorization"
	// NameCacheControl represents the HTTP Header Name of "Cache-Control"
	NameCacheControl = "Cache-Control"
	// NameContentType represents the HTTP Header Name of "Content-Type"
	NameContentType = "Content-Type"
	// NameCookie represents the HTTP Header Name of "Cookie"
	NameCookie = "Cookie"
	// NameETag represents the HTTP Header Name of "ETag"
	NameETag = "ETag"
	// NameIfNoneMatch represents the HTTP Header Name of "If-None-Match"
	NameIfNoneMatch = "If-None-Match"
	// NameSetCookie represents the HTTP Header Name of "Set-Cookie"
	NameSetCookie = "Set-Cookie"
	// NameUserAgent represents the HTTP Header Name of "User-Agent"
	NameUserAgent = "User-Agent"
	// NameXCache represents the HTTP Header Name of "X-Cache"
	NameXCache = "X-Cache"
	// NameXForwardedFor represents the HTTP Header Name of "X-Forwarded-For"
	NameXForwardedFor = "X-Forwarded-For"
	// NameXTraceID represents the HTTP Header Name of "X-Trace-Id"
	NameXTraceID = "X-Trace-Id"
)

// CacheControlValue returns the Cache-Control header value for a private
// response cacheable for ttlSeconds
func CacheControlValue(ttlSeconds int) string {
	return ValuePrivate + ", " + ValueMaxAge + "=" +
		strconv.Itoa(ttlSeconds) + ", " + ValueMustRevalidate
}

// SetResultHeaders applies the conditional-caching response headers for the
// provided etag, ttl and cache disposition (HIT or MISS)
func SetResultHeaders(h http.Header, etag string, ttlSeconds int, disposition string) {
	h.Set(NameETag, etag)
	h.Set(NameCacheControl, CacheControlValue(ttlSeconds))
	h.Set(NameXCache, disposition)
}
