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

package auth

import (
	"strings"
	"testing"
	"time"
)

func TestNewSessionCookie(t *testing.T) {
	SetCookieDomain("")
	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewSessionCookie("tok-1", expires)
	if c.Name != SessionCookieName || c.Value != "tok-1" {
		t.Errorf("unexpected cookie %+v", c)
	}
	if !c.HttpOnly || !c.Secure || c.Path != "/" {
		t.Errorf("expected an HttpOnly Secure cookie at /, got %+v", c)
	}
	if !c.Expires.Equal(expires) {
		t.Errorf("expected expiry %v got %v", expires, c.Expires)
	}
	if c.Domain != "" {
		t.Errorf("expected no domain, got %q", c.Domain)
	}

	SetCookieDomain("api.example.com")
	defer SetCookieDomain("")
	c = NewSessionCookie("tok-2", expires)
	if c.Domain != "api.example.com" {
		t.Errorf("expected the configured domain, got %q", c.Domain)
	}
}

func TestRemovalCookie(t *testing.T) {
	// the removal cookie carries an empty value and the epoch expiry in every
	// configuration
	for _, domain := range []string{"", "api.example.com"} {
		SetCookieDomain(domain)
		c := RemovalCookie()
		if c.Value != "" {
			t.Errorf("domain %q: expected an empty value, got %q", domain, c.Value)
		}
		if !c.Expires.Equal(time.Unix(0, 0).UTC()) {
			t.Errorf("domain %q: expected the epoch expiry, got %v", domain, c.Expires)
		}
		if !strings.Contains(c.String(), "Thu, 01 Jan 1970 00:00:00 GMT") {
			t.Errorf("domain %q: expected the epoch Expires attribute in %q",
				domain, c.String())
		}
		if c.Name != SessionCookieName || !c.HttpOnly || !c.Secure {
			t.Errorf("domain %q: unexpected cookie %+v", domain, c)
		}
	}
	SetCookieDomain("")
}
