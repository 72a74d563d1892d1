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

// Package request provides the per-request Resources object shared by every
// layer of the middleware chain
package request

import (
	"context"
	"net/http"

	"github.com/halgateway/halgate/pkg/gateway/auth"
	"github.com/halgateway/halgate/pkg/observability/logging"
)

type contextKey int

const resourcesKey contextKey = 0

// Resources holds the state attached to a single inbound request. It is
// created once at dispatch and enriched in place, so every wrapper and the
// business handler observe the same instance.
type Resources struct {
	// Logger is the request-scoped logger
	Logger logging.Logger
	// TraceID correlates log events, the response and the problem body
	TraceID string
	// PathParams holds the percent-decoded route parameters
	PathParams map[string]string
	// RouteTemplate is the matched route's path template, used as the
	// cardinality-safe path label on metrics
	RouteTemplate string
	// AuthContext is nil until the authentication wrapper attaches an
	// identity, and stays nil for anonymous requests
	AuthContext *auth.Context
}

// WithResources attaches res to the request's context
func WithResources(r *http.Request, res *Resources) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), resourcesKey, res))
}

// GetResources returns the Resources attached to the request, or nil
func GetResources(r *http.Request) *Resources {
	if v := r.Context().Value(resourcesKey); v != nil {
		if res, ok := v.(*Resources); ok {
			return res
		}
	}
	return nil
}
