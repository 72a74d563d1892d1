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
	"regexp"

	"github.com/halgateway/halgate/pkg/errors"
	"github.com/halgateway/halgate/pkg/gateway/headers"
)

// CredentialSource identifies where a request credential was read from
type CredentialSource int

const (
	// SourceNone means the request carried no credential
	SourceNone CredentialSource = iota
	// SourceHeader means the credential came from the Authorization header
	SourceHeader
	// SourceCookie means the credential came from the session cookie
	SourceCookie
)

// Authorization header schemes
const (
	SchemeBearer       = "Bearer"
	SchemeSessionToken = "SessionToken"
	SchemeAPIKey       = "ApiKey"
)

var authorizationRE = regexp.MustCompile(`^(Bearer|SessionToken|ApiKey) (.+)$`)

// ExtractedCredential is one credential read from a request, prior to
// verification
type ExtractedCredential struct {
	Scheme string
	Token  string
	Source CredentialSource
}

// ExtractCredential reads the request credential, checking the Authorization
// header before falling back to the session cookie. A present but malformed
// Authorization header is a ValidationError; an absent credential returns a
// SourceNone result without error.
func ExtractCredential(r *http.Request) (*ExtractedCredential, error) {
	if h := r.Header.Get(headers.NameAuthorization); h != "" {
		m := authorizationRE.FindStringSubmatch(h)
		if m == nil {
			return nil, errors.NewValidationError("malformed Authorization header")
		}
		return &ExtractedCredential{Scheme: m[1], Token: m[2], Source: SourceHeader}, nil
	}
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return &ExtractedCredential{
			Scheme: SchemeSessionToken,
			Token:  c.Value,
			Source: SourceCookie,
		}, nil
	}
	return &ExtractedCredential{Source: SourceNone}, nil
}

// ClientInfo reads the client network metadata the Authenticator requires.
// Both headers must be present on any request that attempts verification.
func ClientInfo(r *http.Request) (ipAddress, userAgent string, err error) {
	ipAddress = r.Header.Get(headers.NameXForwardedFor)
	if ipAddress == "" {
		return "", "", errors.NewValidationError("missing required header: X-Forwarded-For")
	}
	userAgent = r.Header.Get(headers.NameUserAgent)
	if userAgent == "" {
		return "", "", errors.NewValidationError("missing required header: User-Agent")
	}
	return ipAddress, userAgent, nil
}

// ToCredentials maps an extracted credential and client metadata onto the
// Authenticator's input. Bearer and SessionToken schemes both verify as
// session tokens; ApiKey verifies as an api key.
func (ec *ExtractedCredential) ToCredentials(ipAddress, userAgent string) Credentials {
	creds := Credentials{IPAddress: ipAddress, UserAgent: userAgent}
	if ec.Scheme == SchemeAPIKey {
		creds.APIKey = ec.Token
	} else {
		creds.SessionToken = ec.Token
	}
	return creds
}
