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

// Package users provides the user resource handlers: list, get, create and
// delete over an in-process store
package users

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/halgateway/halgate/pkg/errors"
	"github.com/halgateway/halgate/pkg/gateway"
	"github.com/halgateway/halgate/pkg/gateway/caching"
	"github.com/halgateway/halgate/pkg/gateway/headers"
	"github.com/halgateway/halgate/pkg/gateway/request"
	"github.com/halgateway/halgate/pkg/hal"
	"github.com/halgateway/halgate/pkg/validation"
)

// DefaultPageLimit bounds list pages when the request names no limit
const DefaultPageLimit = 20

// MaxPageLimit is the largest accepted page size
const MaxPageLimit = 100

// Handlers serves the user resource over a Store
type Handlers struct {
	store *Store
}

// NewHandlers returns Handlers over the provided store
func NewHandlers(store *Store) *Handlers {
	return &Handlers{store: store}
}

// Store returns the underlying user store
func (h *Handlers) Store() *Store {
	return h.store
}

// Descriptors returns the user routes
func (h *Handlers) Descriptors() []*gateway.HandlerDescriptor {
	return []*gateway.HandlerDescriptor{
		{Method: http.MethodGet, Path: "/users", Handler: h.List, Cacheable: true},
		{Method: http.MethodPost, Path: "/users", Handler: h.Create},
		{Method: http.MethodGet, Path: "/users/{userId}", Handler: h.Get,
			Cacheable: true},
		{Method: http.MethodDelete, Path: "/users/{userId}", Handler: h.Delete},
	}
}

func userDocument(u *User) *hal.Document {
	return hal.NewDocument("/users/"+u.ID).
		AddLink("sessions", "/users/"+u.ID+"/sessions/active").
		Set("id", u.ID).
		Set("name", u.Name).
		Set("email", u.Email).
		Set("roles", u.Roles).
		Set("version", u.Version).
		Set("createdAt", u.CreatedAt).
		Set("updatedAt", u.UpdatedAt)
}

// List serves the user collection with cursor paging and a collection ETag
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	limit := DefaultPageLimit
	if ls := q.Get("limit"); ls != "" {
		n, err := strconv.Atoi(ls)
		if err != nil || n < 1 || n > MaxPageLimit {
			return errors.NewValidationError("limit must be an integer between 1 and " +
				strconv.Itoa(MaxPageLimit))
		}
		limit = n
	}
	cursor := q.Get("cursor")

	page, nextCursor, total, maxUpdated := h.store.List(cursor, limit)
	w.Header().Set(headers.NameETag,
		caching.CollectionETag(total, maxUpdated, cursor))

	embedded := make([]*hal.Document, len(page))
	for i, u := range page {
		embedded[i] = userDocument(u)
	}
	self := "/users"
	if cursor != "" {
		self += "?cursor=" + cursor
	}
	d := hal.NewDocument(self).
		Embed("users", embedded).
		Set("count", len(page)).
		Set("total", total)
	if nextCursor != "" {
		d.AddLink("next", "/users?cursor="+nextCursor)
	}
	return hal.WriteDocument(w, http.StatusOK, d)
}

type createRequest struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Create inserts a new user from the JSON request body
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) error {
	var in createRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return errors.NewValidationError("malformed request body")
	}
	v := validation.New()
	v.Require("name", in.Name)
	v.MaxLength("name", in.Name, 64)
	v.Require("email", in.Email)
	v.Matches("email", in.Email, func(s string) bool {
		return strings.Count(s, "@") == 1 && !strings.HasPrefix(s, "@") &&
			!strings.HasSuffix(s, "@")
	}, "must be an email address")
	if err := v.Err("invalid user"); err != nil {
		return err
	}

	u := &User{ID: in.ID, Name: in.Name, Email: in.Email, Roles: in.Roles}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := h.store.Create(u); err != nil {
		return err
	}
	w.Header().Set(headers.NameETag,
		caching.EntityETag(u.Version, u.UpdatedAt))
	return hal.WriteDocument(w, http.StatusCreated, userDocument(u))
}

// Get serves one user by id with its entity ETag
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) error {
	id := pathParam(r, "userId")
	u, err := h.store.Get(id)
	if err != nil {
		return err
	}
	w.Header().Set(headers.NameETag,
		caching.EntityETag(u.Version, u.UpdatedAt))
	return hal.WriteDocument(w, http.StatusOK, userDocument(u))
}

// Delete removes one user by id. Requires the admin role; a request with no
// authenticated identity fails closed.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) error {
	res := request.GetResources(r)
	if res == nil || !res.AuthContext.HasRole("admin") {
		return errors.NewForbiddenError("deleting users requires the admin role")
	}
	if err := h.store.Delete(pathParam(r, "userId")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func pathParam(r *http.Request, name string) string {
	if res := request.GetResources(r); res != nil {
		return res.PathParams[name]
	}
	return ""
}
