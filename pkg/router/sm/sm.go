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

// package sm represents a simple Specificity Match router: routes with more
// literal path segments are tried before routes with fewer, so a literal
// branch always wins over a parameterized one
package sm

import (
	"net/http"
	"sort"

	"github.com/halgateway/halgate/pkg/errors"
	"github.com/halgateway/halgate/pkg/router"
)

var _ router.Router = &smRouter{}

type boundRoute struct {
	route    *router.Route
	template *compiledTemplate
}

type smRouter struct {
	routes []*boundRoute
}

// NewRouter returns a new Specificity Match router
func NewRouter() router.Router {
	return &smRouter{routes: make([]*boundRoute, 0, 16)}
}

var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

func (rt *smRouter) RegisterRoute(method, template string,
	handler router.Handler) error {
	if !validMethods[method] {
		return errors.ErrInvalidMethod
	}
	ct, err := compileTemplate(template)
	if err != nil {
		return err
	}
	for _, br := range rt.routes {
		if br.route.Method == method && br.route.Template == template {
			return errors.ErrDuplicateRoute
		}
	}
	rt.routes = append(rt.routes, &boundRoute{
		route: &router.Route{
			Method:       method,
			Template:     template,
			ParamNames:   ct.paramNames,
			LiteralCount: ct.literalCount,
			Handler:      handler,
		},
		template: ct,
	})
	rt.sort()
	return nil
}

// this sorts the routes by descending literal-segment count, with ties
// broken by method then template so the ordering is total and deterministic
// regardless of insertion order
func (rt *smRouter) sort() {
	sort.SliceStable(rt.routes, func(i, j int) bool {
		a, b := rt.routes[i].route, rt.routes[j].route
		if a.LiteralCount != b.LiteralCount {
			return a.LiteralCount > b.LiteralCount
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		return a.Template < b.Template
	})
}

func (rt *smRouter) Match(method, path string) *router.MatchResult {
	for _, br := range rt.routes {
		if br.route.Method != method {
			continue
		}
		if params, ok := br.template.match(path); ok {
			if params == nil {
				params = map[string]string{}
			}
			return &router.MatchResult{Route: br.route, Params: params}
		}
	}
	return nil
}

func (rt *smRouter) Routes() []*router.Route {
	out := make([]*router.Route, len(rt.routes))
	for i, br := range rt.routes {
		out[i] = br.route
	}
	return out
}
