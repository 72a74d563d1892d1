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

package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halgateway/halgate/pkg/config"
	"github.com/halgateway/halgate/pkg/gateway/headers"
)

func TestBuildAndServe(t *testing.T) {
	cfg := config.New()
	cfg.Auth.Users = []config.SeedUser{
		{ID: "admin", Name: "Administrator", Secret: "hunter2",
			Roles: []string{"admin"}, APIKey: "key-123"},
	}
	in, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Cache.Close()
	defer in.Logger.Close()

	// the home document is served anonymously
	w := httptest.NewRecorder()
	in.Gateway.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	// the seeded user can log in
	r := httptest.NewRequest(http.MethodPost, "/sessions",
		strings.NewReader(`{"userId":"admin","secret":"hunter2"}`))
	r.Header.Set(headers.NameXForwardedFor, "203.0.113.5")
	r.Header.Set(headers.NameUserAgent, "test-agent")
	w = httptest.NewRecorder()
	in.Gateway.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc["userId"] != "admin" {
		t.Errorf("unexpected session document %v", doc)
	}

	// the seeded api key authorizes protected routes
	r = httptest.NewRequest(http.MethodGet, "/users", nil)
	r.Header.Set(headers.NameXForwardedFor, "203.0.113.5")
	r.Header.Set(headers.NameUserAgent, "test-agent")
	r.Header.Set(headers.NameAuthorization, "ApiKey key-123")
	w = httptest.NewRecorder()
	in.Gateway.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
}
