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

// Package middleware provides the composable request wrappers stacked
// around every business handler
package middleware

import (
	"net/http"

	"github.com/halgateway/halgate/pkg/router"
)

// Middleware wraps a handler with one cross-cutting behavior. Wrappers must
// preserve the handler signature and propagate errors unmodified.
type Middleware func(router.Handler) router.Handler

// Chain folds the middlewares around h right-to-left, so the first listed
// middleware is outermost: it runs first on the way in and last on the way
// out. Composition happens once at route-registration time.
func Chain(h router.Handler, mw ...Middleware) router.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// statusRecorder captures the status code written by inner layers; 200 is
// reported when the handler never calls WriteHeader explicitly
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.wrote {
		sr.status = code
		sr.wrote = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.wrote {
		sr.status = http.StatusOK
		sr.wrote = true
	}
	return sr.ResponseWriter.Write(b)
}
