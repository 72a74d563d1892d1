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

package home

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/halgateway/halgate/pkg/gateway/headers"
)

func TestHomeHandler(t *testing.T) {
	w := httptest.NewRecorder()
	if err := HomeHandler(w, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatal(err)
	}
	if ct := w.Header().Get(headers.NameContentType); ct != headers.ValueApplicationHALJSON {
		t.Errorf("unexpected content type %q", ct)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	links, ok := doc["_links"].(map[string]any)
	if !ok {
		t.Fatalf("expected _links in %v", doc)
	}
	for _, rel := range []string{"self", "users", "user", "help"} {
		if _, ok := links[rel]; !ok {
			t.Errorf("expected a %q link", rel)
		}
	}
	user, _ := links["user"].(map[string]any)
	if tv, _ := user["templated"].(bool); !tv {
		t.Error("expected the user link to be templated")
	}
}

func TestDocsHandler(t *testing.T) {
	w := httptest.NewRecorder()
	if err := DocsHandler(w, httptest.NewRequest(http.MethodGet, "/docs", nil)); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["authentication"]; !ok {
		t.Error("expected the authentication property")
	}
}

func TestDescriptors(t *testing.T) {
	ds := Descriptors()
	if len(ds) != 2 {
		t.Fatalf("expected 2 descriptors got %d", len(ds))
	}
	for _, d := range ds {
		if !d.AllowAnonymous {
			t.Errorf("%s %s: expected anonymous access", d.Method, d.Path)
		}
	}
}
