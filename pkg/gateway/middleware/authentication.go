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

package middleware

import (
	"net/http"

	"github.com/halgateway/halgate/pkg/errors"
	"github.com/halgateway/halgate/pkg/gateway/auth"
	"github.com/halgateway/halgate/pkg/gateway/request"
	"github.com/halgateway/halgate/pkg/router"
)

// Authentication returns the authentication wrapper. The Authorization
// header takes precedence over the session cookie. When allowAnonymous is
// false (the default posture), a missing or unverifiable credential fails
// the request; when true, such requests proceed without an auth context,
// and a stale session cookie is cleared.
func Authentication(a auth.Authenticator, allowAnonymous bool) Middleware {
	return func(next router.Handler) router.Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			cred, err := auth.ExtractCredential(r)
			if err != nil {
				return err
			}
			if cred.Source == auth.SourceNone {
				if !allowAnonymous {
					return errors.NewUnauthorizedError("credentials required")
				}
				return next(w, r)
			}
			ipAddress, userAgent, err := auth.ClientInfo(r)
			if err != nil {
				return err
			}
			authCtx, err := a.Verify(r.Context(), cred.ToCredentials(ipAddress, userAgent))
			if err != nil {
				return err
			}
			if authCtx == nil {
				if !allowAnonymous {
					return errors.NewUnauthorizedError("invalid credentials")
				}
				if cred.Source == auth.SourceCookie {
					http.SetCookie(w, auth.RemovalCookie())
				}
				return next(w, r)
			}
			if res := request.GetResources(r); res != nil {
				// in-place enrichment: downstream layers observe the
				// same Resources instance
				res.AuthContext = authCtx
			}
			return next(w, r)
		}
	}
}
