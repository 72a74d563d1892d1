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

package hal

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestDocumentMarshal(t *testing.T) {
	d := NewDocument("/users/1").
		AddLink("sessions", "/users/1/sessions/active").
		AddTemplatedLink("session", "/users/1/sessions/{sid}").
		Set("name", "Ada").
		Set("_links", "must not clobber").
		Embed("latest", map[string]any{"id": "s1"})
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	links := m["_links"].(map[string]any)
	if links["self"].(map[string]any)["href"] != "/users/1" {
		t.Error("expected self link")
	}
	if links["session"].(map[string]any)["templated"] != true {
		t.Error("expected templated link flag")
	}
	if m["name"] != "Ada" {
		t.Error("expected inline property")
	}
	if _, ok := m["_embedded"]; !ok {
		t.Error("expected embedded member")
	}
}

func TestWriteDocument(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteDocument(w, 201, NewDocument("/users/2").Set("name", "Grace")); err != nil {
		t.Fatal(err)
	}
	if w.Code != 201 {
		t.Errorf("expected 201 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/hal+json" {
		t.Errorf("unexpected content type %s", ct)
	}
}
