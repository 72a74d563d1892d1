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
	"bytes"
	"encoding/json"
	"html/template"
	"time"

	"github.com/google/uuid"
	"github.com/halgateway/halgate/pkg/errors"
	"github.com/halgateway/halgate/pkg/gateway/headers"
)

// genericDetail is returned for any error outside the closed taxonomy so
// internal failure detail never reaches the client
const genericDetail = "An unexpected error occurred"

// Problem is the structured error body returned for every failed request
type Problem struct {
	Status     int                `json:"status"`
	Title      string             `json:"title"`
	Detail     string             `json:"detail"`
	Instance   string             `json:"instance,omitempty"`
	Timestamp  string             `json:"timestamp"`
	TraceID    string             `json:"traceId"`
	Violations []errors.Violation `json:"violations,omitempty"`
	Links      map[string]Link    `json:"_links"`
}

// NewProblem classifies err into the HTTP error taxonomy and builds its
// response body. Unrecognized errors map to a 500 with a generic detail;
// the caller is responsible for logging the original error beforehand.
func NewProblem(err error, instance, traceID string) *Problem {
	he := errors.AsError(err)
	if he == nil {
		he = errors.NewInternalServerError(genericDetail)
	}
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return &Problem{
		Status:     he.Status,
		Title:      he.Title,
		Detail:     he.Message,
		Instance:   instance,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		TraceID:    traceID,
		Violations: he.Violations,
		Links: map[string]Link{
			"home": {Href: "/"},
			"help": {Href: "/docs"},
		},
	}
}

// Render serializes the problem in the negotiated representation, returning
// the body and its content type
func (p *Problem) Render(ct ContentType) ([]byte, string, error) {
	if ct == ContentTypeXHTML {
		b, err := p.renderXHTML()
		return b, headers.ValueApplicationXHTML, err
	}
	b, err := json.Marshal(p)
	return b, headers.ValueApplicationProblemJSON, err
}

// the XHTML form carries the same fields as machine-parseable RDFa-style
// property attributes under the prob: vocabulary prefix
var problemTemplate = template.Must(template.New("problem").Parse(
	`<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>{{.Status}} {{.Title}}</title></head>
<body prefix="prob: urn:ietf:rfc:9457#">
<main typeof="prob:Problem">
<h1 property="prob:title">{{.Title}}</h1>
<dl>
<dt>Status</dt><dd property="prob:status">{{.Status}}</dd>
<dt>Detail</dt><dd property="prob:detail">{{.Detail}}</dd>
{{if .Instance}}<dt>Instance</dt><dd property="prob:instance">{{.Instance}}</dd>
{{end}}<dt>Timestamp</dt><dd property="prob:timestamp">{{.Timestamp}}</dd>
<dt>Trace</dt><dd property="prob:traceId">{{.TraceID}}</dd>
</dl>
{{if .Violations}}<ul>
{{range .Violations}}<li property="prob:violation"><span property="prob:field">{{.Field}}</span>: <span property="prob:message">{{.Message}}</span></li>
{{end}}</ul>
{{end}}<nav><a rel="home" href="/">Home</a> <a rel="help" href="/docs">Help</a></nav>
</main>
</body>
</html>
`))

func (p *Problem) renderXHTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := problemTemplate.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
