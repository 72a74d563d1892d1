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
	"net/http"
	"sync"
	"time"
)

// SessionCookieName is the name of the session cookie
const SessionCookieName = "slp_session"

// cookieDomain is set once at startup and read-only thereafter
var (
	cookieDomain    string
	cookieDomainMtx sync.RWMutex
)

// SetCookieDomain configures the optional Domain attribute applied to all
// session cookies. Call once during startup.
func SetCookieDomain(domain string) {
	cookieDomainMtx.Lock()
	cookieDomain = domain
	cookieDomainMtx.Unlock()
}

// CookieDomain returns the configured cookie domain, or empty
func CookieDomain() string {
	cookieDomainMtx.RLock()
	defer cookieDomainMtx.RUnlock()
	return cookieDomain
}

// NewSessionCookie builds the session cookie for the provided token
func NewSessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires.UTC(),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Domain:   CookieDomain(),
	}
}

// RemovalCookie builds the cookie that clears the session cookie: an empty
// value expiring at the Unix epoch, always, whether or not a domain is
// configured
func RemovalCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Domain:   CookieDomain(),
	}
}
