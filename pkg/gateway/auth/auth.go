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

// Package auth provides credential extraction, the external Authenticator
// collaborator interface, and the session cookie wire format
package auth

import (
	"context"
	"time"
)

// AccessType distinguishes how a caller authenticated
type AccessType string

const (
	// AccessTypeSession indicates a session-token credential
	AccessTypeSession AccessType = "session"
	// AccessTypeAPIKey indicates an api-key credential
	AccessTypeAPIKey AccessType = "apiKey"
	// AccessTypeUnknown indicates an unclassified credential
	AccessTypeUnknown AccessType = "unknown"
)

// User is the authenticated identity resolved by the Authenticator
type User struct {
	ID       string
	Name     string
	Roles    []string
	Features []string
}

// Access describes the verified credential and the client it was presented from
type Access struct {
	Type      AccessType
	IPAddress string
	UserAgent string
	Expiry    time.Time
}

// Context is the authentication context attached to a request after a
// successful verification. It is never persisted by the gateway.
type Context struct {
	Identity *User
	Access   Access
}

// HasRole reports whether the authenticated identity carries the named role
func (c *Context) HasRole(role string) bool {
	if c == nil || c.Identity == nil {
		return false
	}
	for _, r := range c.Identity.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Credentials carries one extracted credential plus the client metadata the
// Authenticator requires
type Credentials struct {
	SessionToken string
	APIKey       string
	IPAddress    string
	UserAgent    string
}

// Authenticator is the external collaborator that owns credential
// verification and session lifecycle. Verify returns a nil Context for an
// unrecognized credential without an error.
type Authenticator interface {
	Verify(ctx context.Context, creds Credentials) (*Context, error)
	Authenticate(ctx context.Context, userID, secret, ipAddress, userAgent string) (*Context, string, error)
	Revoke(ctx context.Context, sessionToken, ipAddress, userAgent string) error
}
