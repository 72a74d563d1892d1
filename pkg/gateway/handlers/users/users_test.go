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

package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halgateway/halgate/pkg/errors"
	"github.com/halgateway/halgate/pkg/gateway/auth"
	"github.com/halgateway/halgate/pkg/gateway/headers"
	"github.com/halgateway/halgate/pkg/gateway/request"
)

func paramRequest(method, target, name, value string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return request.WithResources(r, &request.Resources{
		PathParams: map[string]string{name: value},
	})
}

func adminRequest(method, target, name, value string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return request.WithResources(r, &request.Resources{
		PathParams: map[string]string{name: value},
		AuthContext: &auth.Context{
			Identity: &auth.User{ID: "admin", Roles: []string{"admin"}},
		},
	})
}

func seeded(t *testing.T, n int) *Handlers {
	t.Helper()
	h := NewHandlers(NewStore())
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		err := h.store.Create(&User{ID: id, Name: "User " + id,
			Email: id + "@example.com"})
		if err != nil {
			t.Fatal(err)
		}
	}
	return h
}

func TestCreateAndGet(t *testing.T) {
	h := NewHandlers(NewStore())
	body := `{"id":"u1","name":"Ada","email":"ada@example.com","roles":["admin"]}`
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	if err := h.Create(w, r); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}
	etag := w.Header().Get(headers.NameETag)
	if !strings.HasPrefix(etag, "v1-") {
		t.Errorf("expected a version-1 entity etag, got %q", etag)
	}

	w = httptest.NewRecorder()
	if err := h.Get(w, paramRequest(http.MethodGet, "/users/u1", "userId", "u1")); err != nil {
		t.Fatal(err)
	}
	if w.Header().Get(headers.NameETag) != etag {
		t.Errorf("expected the same etag on get, got %q", w.Header().Get(headers.NameETag))
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc["name"] != "Ada" || doc["email"] != "ada@example.com" {
		t.Errorf("unexpected document %v", doc)
	}
	links, _ := doc["_links"].(map[string]any)
	self, _ := links["self"].(map[string]any)
	if self["href"] != "/users/u1" {
		t.Errorf("unexpected self link %v", links)
	}
}

func TestCreateValidation(t *testing.T) {
	h := NewHandlers(NewStore())
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"","email":"not-an-email"}`))
	err := h.Create(w, r)
	he := errors.AsError(err)
	if he == nil || he.Kind != errors.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(he.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", he.Violations)
	}
	// violations are reported in input order
	if he.Violations[0].Field != "name" || he.Violations[1].Field != "email" {
		t.Errorf("unexpected violation order %v", he.Violations)
	}
}

func TestCreateMalformedBody(t *testing.T) {
	h := NewHandlers(NewStore())
	r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{"))
	err := h.Create(httptest.NewRecorder(), r)
	if errors.AsError(err) == nil {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCreateConflict(t *testing.T) {
	h := seeded(t, 1)
	for _, body := range []string{
		`{"id":"a","name":"Dup","email":"new@example.com"}`,
		`{"name":"Dup","email":"a@example.com"}`,
	} {
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		err := h.Create(httptest.NewRecorder(), r)
		he := errors.AsError(err)
		if he == nil || he.Kind != errors.KindConflict {
			t.Errorf("%s: expected a conflict, got %v", body, err)
		}
	}
}

func TestGetNotFound(t *testing.T) {
	h := NewHandlers(NewStore())
	err := h.Get(httptest.NewRecorder(),
		paramRequest(http.MethodGet, "/users/zz", "userId", "zz"))
	he := errors.AsError(err)
	if he == nil || he.Kind != errors.KindNotFound {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	h := seeded(t, 1)
	w := httptest.NewRecorder()
	if err := h.Delete(w, adminRequest(http.MethodDelete, "/users/a", "userId", "a")); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}
	err := h.Delete(httptest.NewRecorder(),
		adminRequest(http.MethodDelete, "/users/a", "userId", "a"))
	if errors.AsError(err) == nil {
		t.Fatal("expected a not-found error on the second delete")
	}
}

func TestDeleteRequiresAdminRole(t *testing.T) {
	h := seeded(t, 1)
	r := httptest.NewRequest(http.MethodDelete, "/users/a", nil)
	r = request.WithResources(r, &request.Resources{
		PathParams:  map[string]string{"userId": "a"},
		AuthContext: &auth.Context{Identity: &auth.User{ID: "u2"}},
	})
	err := h.Delete(httptest.NewRecorder(), r)
	he := errors.AsError(err)
	if he == nil || he.Kind != errors.KindForbidden {
		t.Fatalf("expected a forbidden error, got %v", err)
	}
	if _, err := h.store.Get("a"); err != nil {
		t.Error("expected the user to survive the forbidden delete")
	}

	// no authenticated identity at all also fails closed
	err = h.Delete(httptest.NewRecorder(),
		paramRequest(http.MethodDelete, "/users/a", "userId", "a"))
	he = errors.AsError(err)
	if he == nil || he.Kind != errors.KindForbidden {
		t.Fatalf("expected a forbidden error without an identity, got %v", err)
	}
	if _, err := h.store.Get("a"); err != nil {
		t.Error("expected the user to survive the anonymous delete")
	}
}

func TestListPaging(t *testing.T) {
	h := seeded(t, 5)
	w := httptest.NewRecorder()
	if err := h.List(w, httptest.NewRequest(http.MethodGet, "/users?limit=2", nil)); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc["count"].(float64) != 2 || doc["total"].(float64) != 5 {
		t.Errorf("unexpected counts in %v", doc)
	}
	links, _ := doc["_links"].(map[string]any)
	next, ok := links["next"].(map[string]any)
	if !ok {
		t.Fatalf("expected a next link in %v", links)
	}
	if next["href"] != "/users?cursor=b" {
		t.Errorf("unexpected next link %v", next)
	}
	etag1 := w.Header().Get(headers.NameETag)
	if !strings.HasPrefix(etag1, "c5-") {
		t.Errorf("expected a count-5 collection etag, got %q", etag1)
	}

	// the second page carries the cursor in its etag
	w = httptest.NewRecorder()
	if err := h.List(w, httptest.NewRequest(http.MethodGet,
		"/users?limit=2&cursor=b", nil)); err != nil {
		t.Fatal(err)
	}
	etag2 := w.Header().Get(headers.NameETag)
	if !strings.HasSuffix(etag2, "-b") {
		t.Errorf("expected the cursor in the collection etag, got %q", etag2)
	}
	if etag1 == etag2 {
		t.Error("expected distinct etags per page")
	}
}

func TestListLimitValidation(t *testing.T) {
	h := seeded(t, 1)
	for _, target := range []string{"/users?limit=0", "/users?limit=abc",
		"/users?limit=101"} {
		err := h.List(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, target, nil))
		he := errors.AsError(err)
		if he == nil || he.Kind != errors.KindValidation {
			t.Errorf("%s: expected a validation error, got %v", target, err)
		}
	}
}

func TestListEmptyCollection(t *testing.T) {
	h := NewHandlers(NewStore())
	w := httptest.NewRecorder()
	if err := h.List(w, httptest.NewRequest(http.MethodGet, "/users", nil)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(w.Header().Get(headers.NameETag), "c0-") {
		t.Errorf("expected a count-0 etag, got %q", w.Header().Get(headers.NameETag))
	}
}
