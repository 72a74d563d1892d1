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

package caching

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang/snappy"
)

// Document is one memoized GET response, stored snappy-compressed in the
// response cache
type Document struct {
	StatusCode int         `json:"status_code"`
	Headers    http.Header `json:"headers"`
	Body       []byte      `json:"body"`
	ETag       string      `json:"etag"`
	StoredAt   time.Time   `json:"stored_at"`
}

// Seal serializes and compresses the document for storage
func (d *Document) Seal() ([]byte, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, b), nil
}

// UnsealDocument decompresses and deserializes a stored document
func UnsealDocument(data []byte) (*Document, error) {
	b, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	d := &Document{}
	if err := json.Unmarshal(b, d); err != nil {
		return nil, err
	}
	return d, nil
}
