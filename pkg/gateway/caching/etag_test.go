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
	"testing"
	"time"
)

func TestEntityETagDeterminism(t *testing.T) {
	lm := time.UnixMilli(1700000000000)
	a := EntityETag(3, lm)
	b := EntityETag(3, lm)
	if a != b {
		t.Errorf("identical inputs produced %q and %q", a, b)
	}
	if a != "v3-1700000000000" {
		t.Errorf("unexpected tag format %q", a)
	}
	if EntityETag(4, lm) == a {
		t.Error("expected a different tag for a different version")
	}
	if EntityETag(3, lm.Add(time.Millisecond)) == a {
		t.Error("expected a different tag for a different timestamp")
	}
}

func TestCollectionETag(t *testing.T) {
	lm := time.UnixMilli(1700000000000)
	a := CollectionETag(5, lm, "")
	if a != "c5-1700000000000" {
		t.Errorf("unexpected tag format %q", a)
	}
	b := CollectionETag(5, lm, "page2")
	if b != "c5-1700000000000-page2" {
		t.Errorf("unexpected paged tag format %q", b)
	}
	if CollectionETag(6, lm, "") == a {
		t.Error("expected a different tag for a different count")
	}
	if CollectionETag(5, lm, "") != a {
		t.Error("expected identical inputs to produce identical tags")
	}
}

func TestContentETag(t *testing.T) {
	a := contentETag([]byte("body"))
	if a != contentETag([]byte("body")) {
		t.Error("expected deterministic content tag")
	}
	if a == contentETag([]byte("other")) {
		t.Error("expected different bodies to produce different tags")
	}
	if a[0] != 'h' {
		t.Errorf("unexpected tag prefix in %q", a)
	}
}
