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
	"strings"

	"github.com/halgateway/halgate/pkg/gateway/headers"
)

// ContentType is the negotiated response representation
type ContentType int

const (
	// ContentTypeJSON selects the JSON hypermedia representation (default)
	ContentTypeJSON ContentType = iota
	// ContentTypeXHTML selects the XHTML representation
	ContentTypeXHTML
)

// Negotiate selects the response representation from an Accept header value.
// JSON is the default; only an explicit XHTML or HTML preference selects the
// XHTML form.
func Negotiate(accept string) ContentType {
	for _, part := range strings.Split(accept, ",") {
		mt := strings.TrimSpace(part)
		if i := strings.Index(mt, ";"); i >= 0 {
			mt = strings.TrimSpace(mt[:i])
		}
		switch mt {
		case headers.ValueApplicationXHTML, headers.ValueTextHTML:
			return ContentTypeXHTML
		case headers.ValueApplicationHALJSON, headers.ValueApplicationJSON,
			headers.ValueApplicationProblemJSON:
			return ContentTypeJSON
		}
	}
	return ContentTypeJSON
}
