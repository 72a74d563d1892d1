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
	"hash/fnv"
	"strconv"
	"time"
)

// ETag derivation. All derivations are pure functions of their inputs, so
// identical inputs always produce identical tags and If-None-Match
// comparisons stay correct.

// EntityETag derives the conditional-request tag for a single entity from
// its version counter and last-modified timestamp
func EntityETag(version int64, lastModified time.Time) string {
	return "v" + strconv.FormatInt(version, 10) + "-" +
		strconv.FormatInt(lastModified.UnixMilli(), 10)
}

// CollectionETag derives the conditional-request tag for a collection from
// its item count, the newest member's last-modified timestamp and the
// optional page token
func CollectionETag(itemCount int, maxLastModified time.Time, pageToken string) string {
	tag := "c" + strconv.Itoa(itemCount) + "-" +
		strconv.FormatInt(maxLastModified.UnixMilli(), 10)
	if pageToken != "" {
		tag += "-" + pageToken
	}
	return tag
}

// contentETag is the fallback tag for responses whose handler supplied no
// entity or collection tag, derived from the body bytes
func contentETag(body []byte) string {
	h := fnv.New64a()
	h.Write(body)
	return "h" + strconv.FormatUint(h.Sum64(), 16)
}
