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

// Package home provides the API home and help documents
package home

import (
	"net/http"

	"github.com/halgateway/halgate/pkg/gateway"
	"github.com/halgateway/halgate/pkg/hal"
)

// Descriptors returns the home and help routes. Both are anonymous and
// cacheable.
func Descriptors() []*gateway.HandlerDescriptor {
	return []*gateway.HandlerDescriptor{
		{
			Method:         http.MethodGet,
			Path:           "/",
			Handler:        HomeHandler,
			AllowAnonymous: true,
			Cacheable:      true,
		},
		{
			Method:         http.MethodGet,
			Path:           "/docs",
			Handler:        DocsHandler,
			AllowAnonymous: true,
			Cacheable:      true,
		},
	}
}

// HomeHandler serves the hypermedia entry point for the API
func HomeHandler(w http.ResponseWriter, r *http.Request) error {
	d := hal.NewDocument("/").
		AddLink("users", "/users").
		AddTemplatedLink("user", "/users/{userId}").
		AddLink("sessions", "/sessions").
		AddLink("help", "/docs").
		Set("name", "halgate").
		Set("description", "hypermedia API gateway")
	return hal.WriteDocument(w, http.StatusOK, d)
}

// DocsHandler serves the help document linked from every problem response
func DocsHandler(w http.ResponseWriter, r *http.Request) error {
	d := hal.NewDocument("/docs").
		AddLink("home", "/").
		Set("authentication", "Authorization: Bearer <session token>, "+
			"SessionToken <session token> or ApiKey <api key>; a session "+
			"cookie is honored when no Authorization header is present").
		Set("errors", "failed requests return application/problem+json "+
			"(or an XHTML rendering when negotiated) with status, title, "+
			"detail, timestamp, traceId and optional violations")
	return hal.WriteDocument(w, http.StatusOK, d)
}
