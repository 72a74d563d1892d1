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

// Package gateway assembles the route table, the middleware chains and the
// outermost response boundary into a single http.Handler
package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/halgateway/halgate/pkg/cache"
	"github.com/halgateway/halgate/pkg/errors"
	"github.com/halgateway/halgate/pkg/gateway/auth"
	"github.com/halgateway/halgate/pkg/gateway/caching"
	"github.com/halgateway/halgate/pkg/gateway/headers"
	"github.com/halgateway/halgate/pkg/gateway/middleware"
	"github.com/halgateway/halgate/pkg/gateway/request"
	"github.com/halgateway/halgate/pkg/hal"
	"github.com/halgateway/halgate/pkg/observability/logging"
	"github.com/halgateway/halgate/pkg/observability/tracing"
	"github.com/halgateway/halgate/pkg/router"
	"github.com/halgateway/halgate/pkg/router/sm"
)

// HandlerDescriptor declares one route and its per-route chain behavior.
// Descriptors are the registration surface handlers expose to the gateway.
type HandlerDescriptor struct {
	// Method is the HTTP method, canonical uppercase
	Method string
	// Path is the route template, e.g. /users/{userId}
	Path string
	// Handler is the business handler at the center of the chain
	Handler router.Handler
	// AllowAnonymous permits unauthenticated access to this route
	AllowAnonymous bool
	// Cacheable enables the response-caching wrapper for this route.
	// Only meaningful for GET routes.
	Cacheable bool
	// CacheTTL overrides the gateway default TTL when nonzero
	CacheTTL time.Duration
}

// Options carries the collaborators the Gateway dispatches with
type Options struct {
	Logger        logging.Logger
	Tracer        *tracing.Tracer
	Authenticator auth.Authenticator
	// Cache is the response cache; nil disables response caching entirely
	Cache     cache.Client
	CacheName string
	// DefaultCacheTTL applies to cacheable routes without a CacheTTL
	DefaultCacheTTL time.Duration
}

// Gateway is the front door: it spans, matches, dispatches and maps errors.
// The route table is built up front via RegisterRoutes and immutable during
// serving.
type Gateway struct {
	router router.Router
	o      *Options
}

// New returns a Gateway with an empty route table
func New(o *Options) *Gateway {
	if o == nil {
		o = &Options{}
	}
	if o.Logger == nil {
		o.Logger = logging.NoopLogger()
	}
	if o.Tracer == nil {
		o.Tracer, _ = tracing.New(tracing.ProviderNone)
	}
	if o.DefaultCacheTTL <= 0 {
		o.DefaultCacheTTL = 60 * time.Second
	}
	return &Gateway{router: sm.NewRouter(), o: o}
}

// RegisterRoutes composes each descriptor's chain and installs it in the
// route table. Chains are composed once, here, not per request.
func (g *Gateway) RegisterRoutes(descriptors ...*HandlerDescriptor) error {
	for _, d := range descriptors {
		mw := []middleware.Middleware{middleware.Logging()}
		if g.o.Authenticator != nil {
			mw = append(mw, middleware.Authentication(g.o.Authenticator,
				d.AllowAnonymous))
		}
		if d.Cacheable && g.o.Cache != nil {
			ttl := d.CacheTTL
			if ttl <= 0 {
				ttl = g.o.DefaultCacheTTL
			}
			mw = append(mw, caching.Middleware(g.o.Cache, g.o.CacheName, ttl))
		}
		h := middleware.Chain(d.Handler, mw...)
		if err := g.router.RegisterRoute(d.Method, d.Path, h); err != nil {
			return fmt.Errorf("route %s %s: %w", d.Method, d.Path, err)
		}
	}
	return nil
}

// Router exposes the underlying route table
func (g *Gateway) Router() router.Router {
	return g.router
}

// ServeHTTP spans the request, matches it against the route table, attaches
// the per-request resources, and maps any error settled by the chain onto a
// problem response
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span, traceID := g.o.Tracer.StartSpan(r.Context(),
		r.Method+" "+r.URL.Path)
	defer span.End()
	r = r.WithContext(ctx)
	w.Header().Set(headers.NameXTraceID, traceID)

	res := &request.Resources{
		Logger:  g.o.Logger,
		TraceID: traceID,
	}
	r = request.WithResources(r, res)

	defer func() {
		if p := recover(); p != nil {
			g.o.Logger.Error("request panicked", logging.Pairs{
				"method":  r.Method,
				"path":    r.URL.Path,
				"traceID": traceID,
				"detail":  fmt.Sprintf("%v", p),
			})
			g.writeProblem(w, r,
				errors.NewInternalServerError("An unexpected error occurred"),
				traceID)
		}
	}()

	// match on the escaped form: net/http has already decoded URL.Path, and
	// the matcher owns the single percent-decode of parameter values
	m := g.router.Match(r.Method, r.URL.EscapedPath())
	if m == nil {
		g.writeProblem(w, r,
			errors.NewNotFoundError("no route matches the request"), traceID)
		return
	}
	res.PathParams = m.Params
	res.RouteTemplate = m.Route.Template

	if err := m.Route.Handler(w, r); err != nil {
		g.writeProblem(w, r, err, traceID)
	}
}

// writeProblem renders err as a problem response in the representation the
// request negotiated. Errors outside the taxonomy are logged here, at the
// boundary, and leave as a generic 500.
func (g *Gateway) writeProblem(w http.ResponseWriter, r *http.Request,
	err error, traceID string) {
	if errors.AsError(err) == nil {
		g.o.Logger.Error("unclassified error", logging.Pairs{
			"method":  r.Method,
			"path":    r.URL.Path,
			"traceID": traceID,
			"detail":  err,
		})
	}
	p := hal.NewProblem(err, r.URL.Path, traceID)
	body, ct, rerr := p.Render(hal.Negotiate(r.Header.Get(headers.NameAccept)))
	if rerr != nil {
		w.Header().Set(headers.NameContentType, headers.ValueApplicationProblemJSON)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set(headers.NameContentType, ct)
	w.WriteHeader(p.Status)
	w.Write(body)
}
