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

// Package memory provides an in-process Authenticator backed by maps. It is
// the provider used by the standalone daemon and by tests; production
// deployments substitute an implementation backed by a real identity store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/halgateway/halgate/pkg/errors"
	"github.com/halgateway/halgate/pkg/gateway/auth"
)

// SessionTTL is the lifetime of a session issued by Authenticate
const SessionTTL = 24 * time.Hour

type session struct {
	userID string
	expiry time.Time
}

type account struct {
	user   auth.User
	secret string
}

// Authenticator is a map-backed implementation of auth.Authenticator
type Authenticator struct {
	mtx      sync.RWMutex
	accounts map[string]*account // keyed by user id
	sessions map[string]*session // keyed by session token
	apiKeys  map[string]string   // key -> user id
}

// New returns an empty Authenticator
func New() *Authenticator {
	return &Authenticator{
		accounts: make(map[string]*account),
		sessions: make(map[string]*session),
		apiKeys:  make(map[string]string),
	}
}

// AddUser registers a user and its login secret
func (a *Authenticator) AddUser(u auth.User, secret string) {
	a.mtx.Lock()
	a.accounts[u.ID] = &account{user: u, secret: secret}
	a.mtx.Unlock()
}

// AddAPIKey binds an api key to a registered user
func (a *Authenticator) AddAPIKey(key, userID string) {
	a.mtx.Lock()
	a.apiKeys[key] = userID
	a.mtx.Unlock()
}

// Verify resolves the presented credential. An unrecognized or expired
// credential yields a nil context without an error; errors are reserved for
// verification infrastructure failures, which cannot occur here.
func (a *Authenticator) Verify(_ context.Context, creds auth.Credentials) (*auth.Context, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	if creds.APIKey != "" {
		userID, ok := a.apiKeys[creds.APIKey]
		if !ok {
			return nil, nil
		}
		acct, ok := a.accounts[userID]
		if !ok {
			return nil, nil
		}
		return &auth.Context{
			Identity: cloneUser(&acct.user),
			Access: auth.Access{
				Type:      auth.AccessTypeAPIKey,
				IPAddress: creds.IPAddress,
				UserAgent: creds.UserAgent,
			},
		}, nil
	}
	s, ok := a.sessions[creds.SessionToken]
	if !ok || time.Now().After(s.expiry) {
		return nil, nil
	}
	acct, ok := a.accounts[s.userID]
	if !ok {
		return nil, nil
	}
	return &auth.Context{
		Identity: cloneUser(&acct.user),
		Access: auth.Access{
			Type:      auth.AccessTypeSession,
			IPAddress: creds.IPAddress,
			UserAgent: creds.UserAgent,
			Expiry:    s.expiry,
		},
	}, nil
}

// Authenticate validates the user's secret and issues a new session token
func (a *Authenticator) Authenticate(_ context.Context, userID, secret,
	ipAddress, userAgent string) (*auth.Context, string, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	acct, ok := a.accounts[userID]
	if !ok || acct.secret != secret {
		return nil, "", errors.NewUnauthorizedError("invalid user id or secret")
	}
	token := uuid.NewString()
	expiry := time.Now().Add(SessionTTL)
	a.sessions[token] = &session{userID: userID, expiry: expiry}
	return &auth.Context{
		Identity: cloneUser(&acct.user),
		Access: auth.Access{
			Type:      auth.AccessTypeSession,
			IPAddress: ipAddress,
			UserAgent: userAgent,
			Expiry:    expiry,
		},
	}, token, nil
}

// Revoke invalidates a session token. Revoking an unknown token is a no-op.
func (a *Authenticator) Revoke(_ context.Context, sessionToken, _, _ string) error {
	a.mtx.Lock()
	delete(a.sessions, sessionToken)
	a.mtx.Unlock()
	return nil
}

func cloneUser(u *auth.User) *auth.User {
	c := *u
	c.Roles = append([]string(nil), u.Roles...)
	c.Features = append([]string(nil), u.Features...)
	return &c
}
