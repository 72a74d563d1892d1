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

package router

import "net/http"

// Handler is the unit of business logic dispatched by the Router. Unlike
// http.Handler it returns an error, which the gateway's outermost boundary
// maps to a problem response.
type Handler func(http.ResponseWriter, *http.Request) error

// Router matches inbound method/path pairs against registered route templates
type Router interface {
	// RegisterRoute registers a handler for the provided method and path
	// template. Templates may contain {name} parameter segments.
	RegisterRoute(method, template string, handler Handler) error
	// Match returns the most specific route matching the method and path,
	// or nil if no route matches. Method comparison is byte-for-byte.
	Match(method, path string) *MatchResult
	// Routes returns the registered routes in match order
	Routes() []*Route
}

// Route is one immutable method/template/handler binding, built at
// registration time
type Route struct {
	// Method is the HTTP method, exactly as registered
	Method string
	// Template is the path template, e.g. /users/{userId}
	Template string
	// ParamNames lists the {name} segments in left-to-right template order
	ParamNames []string
	// LiteralCount is the number of non-parameter path segments and
	// determines the route's match specificity
	LiteralCount int
	// Handler is invoked when the route matches
	Handler Handler
}

// MatchResult pairs a matched Route with the percent-decoded path parameters
// extracted from the concrete request path
type MatchResult struct {
	Route  *Route
	Params map[string]string
}
