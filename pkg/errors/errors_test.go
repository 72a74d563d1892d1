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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		err    *Error
		kind   Kind
		status int
		title  string
	}{
		{NewValidationError("bad"), KindValidation, 400, "Bad Request"},
		{NewUnauthorizedError("bad"), KindUnauthorized, 401, "Unauthorized"},
		{NewForbiddenError("bad"), KindForbidden, 403, "Forbidden"},
		{NewNotFoundError("bad"), KindNotFound, 404, "Not Found"},
		{NewConflictError("bad"), KindConflict, 409, "Conflict"},
		{NewUnprocessableEntityError("bad"), KindUnprocessableEntity, 422, "Unprocessable Entity"},
		{NewInternalServerError("bad"), KindInternalServerError, 500, "Internal Server Error"},
	}
	for _, tc := range tests {
		if tc.err.Kind != tc.kind {
			t.Errorf("expected kind %d got %d", tc.kind, tc.err.Kind)
		}
		if tc.err.Status != tc.status {
			t.Errorf("expected status %d got %d", tc.status, tc.err.Status)
		}
		if tc.err.Title != tc.title {
			t.Errorf("expected title %s got %s", tc.title, tc.err.Title)
		}
		if tc.err.Message != "bad" {
			t.Errorf("expected message to round-trip, got %s", tc.err.Message)
		}
	}
}

func TestErrorString(t *testing.T) {
	e := NewNotFoundError("no such user")
	const expected = "Not Found: no such user"
	if e.Error() != expected {
		t.Errorf("expected %q got %q", expected, e.Error())
	}
}

func TestAsError(t *testing.T) {
	e := NewConflictError("version mismatch")
	wrapped := fmt.Errorf("saving user: %w", e)
	he := AsError(wrapped)
	if he == nil {
		t.Fatal("expected non-nil *Error")
	}
	if he.Status != 409 {
		t.Errorf("expected status 409 got %d", he.Status)
	}
	if AsError(errors.New("plain")) != nil {
		t.Error("expected nil for a non-taxonomy error")
	}
}

func TestValidationErrorViolations(t *testing.T) {
	e := NewValidationError("invalid body",
		Violation{Field: "user.profile.address.street", Message: "required"})
	if len(e.Violations) != 1 {
		t.Fatalf("expected 1 violation got %d", len(e.Violations))
	}
	if e.Violations[0].Field != "user.profile.address.street" {
		t.Errorf("unexpected field path %s", e.Violations[0].Field)
	}
}
