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

// Package sessions provides session login and logout, and the per-user
// session subresource
package sessions

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/halgateway/halgate/pkg/errors"
	"github.com/halgateway/halgate/pkg/gateway"
	"github.com/halgateway/halgate/pkg/gateway/auth"
	"github.com/halgateway/halgate/pkg/gateway/request"
	"github.com/halgateway/halgate/pkg/hal"
	"github.com/halgateway/halgate/pkg/validation"
)

// Session is one issued session as exposed by the subresource. The secret
// token itself is never stored here.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
}

// registry tracks issued sessions for the subresource views
type registry struct {
	mtx     sync.RWMutex
	byToken map[string]*Session
	byUser  map[string][]*Session
}

func newRegistry() *registry {
	return &registry{
		byToken: make(map[string]*Session),
		byUser:  make(map[string][]*Session),
	}
}

func (g *registry) add(token string, s *Session) {
	g.mtx.Lock()
	g.byToken[token] = s
	g.byUser[s.UserID] = append(g.byUser[s.UserID], s)
	g.mtx.Unlock()
}

func (g *registry) removeByToken(token string) {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	s, ok := g.byToken[token]
	if !ok {
		return
	}
	delete(g.byToken, token)
	list := g.byUser[s.UserID]
	for i, cur := range list {
		if cur.ID == s.ID {
			g.byUser[s.UserID] = append(list[:i], list[i+1:]...)
			break
		}
	}
}

// active returns the most recently issued unexpired session for the user
func (g *registry) active(userID string) *Session {
	g.mtx.RLock()
	defer g.mtx.RUnlock()
	var latest *Session
	now := time.Now()
	for _, s := range g.byUser[userID] {
		if s.ExpiresAt.Before(now) {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	return latest
}

func (g *registry) get(userID, sessionID string) *Session {
	g.mtx.RLock()
	defer g.mtx.RUnlock()
	for _, s := range g.byUser[userID] {
		if s.ID == sessionID {
			return s
		}
	}
	return nil
}

// Handlers serves session login, logout and the session subresource
type Handlers struct {
	authenticator auth.Authenticator
	registry      *registry
}

// NewHandlers returns Handlers backed by the provided Authenticator
func NewHandlers(a auth.Authenticator) *Handlers {
	return &Handlers{authenticator: a, registry: newRegistry()}
}

// Descriptors returns the session routes. The literal "active" subresource
// is registered beside the parameterized session route; the more specific
// template wins on match.
func (h *Handlers) Descriptors() []*gateway.HandlerDescriptor {
	return []*gateway.HandlerDescriptor{
		{Method: http.MethodPost, Path: "/sessions", Handler: h.Login,
			AllowAnonymous: true},
		{Method: http.MethodDelete, Path: "/sessions", Handler: h.Logout,
			AllowAnonymous: true},
		{Method: http.MethodGet, Path: "/users/{userId}/sessions/active",
			Handler: h.Active},
		{Method: http.MethodGet, Path: "/users/{userId}/sessions/{sessionId}",
			Handler: h.Get},
	}
}

func sessionDocument(s *Session) *hal.Document {
	return hal.NewDocument("/users/"+s.UserID+"/sessions/"+s.ID).
		AddLink("user", "/users/"+s.UserID).
		AddLink("active", "/users/"+s.UserID+"/sessions/active").
		Set("id", s.ID).
		Set("userId", s.UserID).
		Set("createdAt", s.CreatedAt).
		Set("expiresAt", s.ExpiresAt)
}

type loginRequest struct {
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}

// Login authenticates the caller and issues a session, returned both as a
// token in the document and as the session cookie
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) error {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return errors.NewValidationError("malformed request body")
	}
	v := validation.New()
	v.Require("userId", in.UserID)
	v.Require("secret", in.Secret)
	if err := v.Err("invalid login request"); err != nil {
		return err
	}
	ipAddress, userAgent, err := auth.ClientInfo(r)
	if err != nil {
		return err
	}
	ac, token, err := h.authenticator.Authenticate(r.Context(), in.UserID,
		in.Secret, ipAddress, userAgent)
	if err != nil {
		return err
	}
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    ac.Identity.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: ac.Access.Expiry,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	h.registry.add(token, s)
	http.SetCookie(w, auth.NewSessionCookie(token, s.ExpiresAt))
	d := sessionDocument(s).Set("token", token)
	return hal.WriteDocument(w, http.StatusCreated, d)
}

// Logout revokes the presented session and clears the session cookie. The
// cookie is cleared whether or not the credential was still valid.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) error {
	cred, err := auth.ExtractCredential(r)
	if err != nil {
		return err
	}
	if cred.Source == auth.SourceNone {
		return errors.NewUnauthorizedError("no session to revoke")
	}
	ipAddress, userAgent, err := auth.ClientInfo(r)
	if err != nil {
		return err
	}
	if err := h.authenticator.Revoke(r.Context(), cred.Token, ipAddress,
		userAgent); err != nil {
		return err
	}
	h.registry.removeByToken(cred.Token)
	http.SetCookie(w, auth.RemovalCookie())
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Active serves the user's most recent unexpired session
func (h *Handlers) Active(w http.ResponseWriter, r *http.Request) error {
	userID := pathParam(r, "userId")
	s := h.registry.active(userID)
	if s == nil {
		return errors.NewNotFoundError("no active session for this user")
	}
	return hal.WriteDocument(w, http.StatusOK, sessionDocument(s))
}

// Get serves one session by id
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) error {
	s := h.registry.get(pathParam(r, "userId"), pathParam(r, "sessionId"))
	if s == nil {
		return errors.NewNotFoundError("no such session")
	}
	return hal.WriteDocument(w, http.StatusOK, sessionDocument(s))
}

func pathParam(r *http.Request, name string) string {
	if res := request.GetResources(r); res != nil {
		return res.PathParams[name]
	}
	return ""
}
