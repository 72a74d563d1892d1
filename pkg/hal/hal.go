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

// Package hal provides HAL hypermedia document types and the problem-details
// responses the gateway returns for errors
package hal

import (
	"encoding/json"
	"net/http"

	"github.com/halgateway/halgate/pkg/gateway/headers"
)

// Link is one HAL _links member
type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

// Document is a HAL resource representation: domain properties rendered
// inline beside the _links and _embedded reserved members
type Document struct {
	Links      map[string]Link
	Embedded   map[string]any
	Properties map[string]any
}

// NewDocument returns a Document with a self link
func NewDocument(selfHref string) *Document {
	return &Document{
		Links:      map[string]Link{"self": {Href: selfHref}},
		Properties: map[string]any{},
	}
}

// AddLink sets the named link relation
func (d *Document) AddLink(rel, href string) *Document {
	if d.Links == nil {
		d.Links = map[string]Link{}
	}
	d.Links[rel] = Link{Href: href}
	return d
}

// AddTemplatedLink sets the named link relation with a templated href
func (d *Document) AddTemplatedLink(rel, href string) *Document {
	if d.Links == nil {
		d.Links = map[string]Link{}
	}
	d.Links[rel] = Link{Href: href, Templated: true}
	return d
}

// Set sets a domain property rendered inline in the document body
func (d *Document) Set(key string, value any) *Document {
	if d.Properties == nil {
		d.Properties = map[string]any{}
	}
	d.Properties[key] = value
	return d
}

// Embed places a resource under the _embedded reserved member
func (d *Document) Embed(rel string, value any) *Document {
	if d.Embedded == nil {
		d.Embedded = map[string]any{}
	}
	d.Embedded[rel] = value
	return d
}

// MarshalJSON renders the domain properties inline beside the reserved
// members, protecting the reserved names from being overwritten
func (d *Document) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Properties)+2)
	for k, v := range d.Properties {
		if k == "_links" || k == "_embedded" {
			continue
		}
		m[k] = v
	}
	if len(d.Links) > 0 {
		m["_links"] = d.Links
	}
	if len(d.Embedded) > 0 {
		m["_embedded"] = d.Embedded
	}
	return json.Marshal(m)
}

// WriteDocument serializes the document as application/hal+json with the
// provided status code
func WriteDocument(w http.ResponseWriter, statusCode int, d *Document) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	w.Header().Set(headers.NameContentType, headers.ValueApplicationHALJSON)
	w.WriteHeader(statusCode)
	_, err = w.Write(b)
	return err
}
