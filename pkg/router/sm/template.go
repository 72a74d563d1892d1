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

package sm

import (
	"net/url"
	"strings"

	"github.com/halgateway/halgate/pkg/errors"
)

// segment is one /-delimited element of a compiled path template. A segment
// is either a literal (param == "") or a parameter capture.
type segment struct {
	literal string
	param   string
}

// compiledTemplate matches concrete paths against one parsed path template.
// Matching is whole-path: the segment counts must be equal, so /test/ never
// matches a template compiled from /test.
type compiledTemplate struct {
	segments     []segment
	paramNames   []string
	literalCount int
}

// compileTemplate parses a path template into its segment matcher and the
// ordered parameter-name list
func compileTemplate(template string) (*compiledTemplate, error) {
	if template == "" || template[0] != '/' {
		return nil, errors.ErrInvalidPath
	}
	parts := strings.Split(template[1:], "/")
	ct := &compiledTemplate{
		segments: make([]segment, len(parts)),
	}
	for i, part := range parts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			if name == "" {
				return nil, errors.ErrInvalidPath
			}
			ct.segments[i] = segment{param: name}
			ct.paramNames = append(ct.paramNames, name)
			continue
		}
		if strings.ContainsAny(part, "{}") {
			return nil, errors.ErrInvalidPath
		}
		ct.segments[i] = segment{literal: part}
		ct.literalCount++
	}
	return ct, nil
}

// match tests path against the template, returning the percent-decoded
// parameter values on success. Parameter segments accept any non-empty run
// of non-slash characters.
func (ct *compiledTemplate) match(path string) (map[string]string, bool) {
	if path == "" || path[0] != '/' {
		return nil, false
	}
	parts := strings.Split(path[1:], "/")
	if len(parts) != len(ct.segments) {
		return nil, false
	}
	var params map[string]string
	for i, part := range parts {
		s := ct.segments[i]
		if s.param == "" {
			if part != s.literal {
				return nil, false
			}
			continue
		}
		if part == "" {
			return nil, false
		}
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return nil, false
		}
		if params == nil {
			params = make(map[string]string, len(ct.paramNames))
		}
		params[s.param] = decoded
	}
	return params, true
}
