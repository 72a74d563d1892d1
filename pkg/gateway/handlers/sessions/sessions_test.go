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

package sessions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halgateway/halgate/pkg/errors"
	"github.com/halgateway/halgate/pkg/gateway/auth"
	authmem "github.com/halgateway/halgate/pkg/gateway/auth/memory"
	"github.com/halgateway/halgate/pkg/gateway/headers"
	"github.com/halgateway/halgate/pkg/gateway/request"
)

func newTestHandlers() *Handlers {
	a := authmem.New()
	a.AddUser(auth.User{ID: "u1", Name: "Test User"}, "hunter2")
	return NewHandlers(a)
}

func clientRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set(headers.NameXForwardedFor, "203.0.113.5")
	r.Header.Set(headers.NameUserAgent, "test-agent")
	return r
}

func login(t *testing.T, h *Handlers) (sessionID, token string) {
	t.Helper()
	w := httptest.NewRecorder()
	r := clientRequest(http.MethodPost, "/sessions",
		`{"userId":"u1","secret":"hunter2"}`)
	if err := h.Login(w, r); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	sessionID, _ = doc["id"].(string)
	token, _ = doc["token"].(string)
	if sessionID == "" || token == "" {
		t.Fatalf("expected a session id and token in %v", doc)
	}
	sc := w.Header().Get(headers.NameSetCookie)
	if !strings.Contains(sc, auth.SessionCookieName+"="+token) {
		t.Errorf("expected the session cookie, got %q", sc)
	}
	return sessionID, token
}

func TestLoginAndSubresource(t *testing.T) {
	h := newTestHandlers()
	sessionID, _ := login(t, h)

	// the literal active route and the parameterized route see the same record
	w := httptest.NewRecorder()
	r := request.WithResources(clientRequest(http.MethodGet,
		"/users/u1/sessions/active", ""),
		&request.Resources{PathParams: map[string]string{"userId": "u1"}})
	if err := h.Active(w, r); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc["id"] != sessionID || doc["userId"] != "u1" {
		t.Errorf("unexpected active session %v", doc)
	}

	w = httptest.NewRecorder()
	r = request.WithResources(clientRequest(http.MethodGet,
		"/users/u1/sessions/"+sessionID, ""),
		&request.Resources{PathParams: map[string]string{
			"userId": "u1", "sessionId": sessionID}})
	if err := h.Get(w, r); err != nil {
		t.Fatal(err)
	}
}

func TestLoginBadSecret(t *testing.T) {
	h := newTestHandlers()
	r := clientRequest(http.MethodPost, "/sessions",
		`{"userId":"u1","secret":"wrong"}`)
	err := h.Login(httptest.NewRecorder(), r)
	he := errors.AsError(err)
	if he == nil || he.Kind != errors.KindUnauthorized {
		t.Fatalf("expected an unauthorized error, got %v", err)
	}
}

func TestLoginValidation(t *testing.T) {
	h := newTestHandlers()
	r := clientRequest(http.MethodPost, "/sessions", `{"userId":"","secret":""}`)
	err := h.Login(httptest.NewRecorder(), r)
	he := errors.AsError(err)
	if he == nil || he.Kind != errors.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(he.Violations) != 2 {
		t.Errorf("expected 2 violations, got %v", he.Violations)
	}
}

func TestLoginRequiresClientInfo(t *testing.T) {
	h := newTestHandlers()
	r := httptest.NewRequest(http.MethodPost, "/sessions",
		strings.NewReader(`{"userId":"u1","secret":"hunter2"}`))
	err := h.Login(httptest.NewRecorder(), r)
	he := errors.AsError(err)
	if he == nil || he.Kind != errors.KindValidation {
		t.Fatalf("expected a validation error for missing client headers, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	h := newTestHandlers()
	_, token := login(t, h)

	w := httptest.NewRecorder()
	r := clientRequest(http.MethodDelete, "/sessions", "")
	r.Header.Set(headers.NameAuthorization, "SessionToken "+token)
	if err := h.Logout(w, r); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}
	sc := w.Header().Get(headers.NameSetCookie)
	if !strings.Contains(sc, "Thu, 01 Jan 1970 00:00:00 GMT") {
		t.Errorf("expected the removal cookie, got %q", sc)
	}

	// the session is no longer active
	r2 := request.WithResources(clientRequest(http.MethodGet,
		"/users/u1/sessions/active", ""),
		&request.Resources{PathParams: map[string]string{"userId": "u1"}})
	err := h.Active(httptest.NewRecorder(), r2)
	he := errors.AsError(err)
	if he == nil || he.Kind != errors.KindNotFound {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestLogoutWithoutCredential(t *testing.T) {
	h := newTestHandlers()
	r := clientRequest(http.MethodDelete, "/sessions", "")
	err := h.Logout(httptest.NewRecorder(), r)
	he := errors.AsError(err)
	if he == nil || he.Kind != errors.KindUnauthorized {
		t.Fatalf("expected an unauthorized error, got %v", err)
	}
}

func TestActiveNotFound(t *testing.T) {
	h := newTestHandlers()
	r := request.WithResources(clientRequest(http.MethodGet,
		"/users/u1/sessions/active", ""),
		&request.Resources{PathParams: map[string]string{"userId": "u1"}})
	err := h.Active(httptest.NewRecorder(), r)
	if errors.AsError(err) == nil {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	h := newTestHandlers()
	r := request.WithResources(clientRequest(http.MethodGet,
		"/users/u1/sessions/zz", ""),
		&request.Resources{PathParams: map[string]string{
			"userId": "u1", "sessionId": "zz"}})
	err := h.Get(httptest.NewRecorder(), r)
	if errors.AsError(err) == nil {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}
