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

// Package status governs the possible Cache Lookup Status values
package status

import "strconv"

// LookupStatus defines the possible status of a cache lookup
type LookupStatus int

const (
	// LookupStatusHit indicates a full cache hit on lookup
	LookupStatusHit = LookupStatus(iota)
	// LookupStatusKeyMiss indicates a cache miss because the key is not in the cache
	LookupStatusKeyMiss
	// LookupStatusExpired indicates the key was found but the entry had expired
	LookupStatusExpired
	// LookupStatusError indicates there was an error looking up the key in the cache
	LookupStatusError
)

var names = map[LookupStatus]string{
	LookupStatusHit:     "hit",
	LookupStatusKeyMiss: "kmiss",
	LookupStatusExpired: "expired",
	LookupStatusError:   "error",
}

func (s LookupStatus) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return strconv.Itoa(int(s))
}
