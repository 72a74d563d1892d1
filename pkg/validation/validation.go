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

// Package validation provides an explicit structural validator producing
// field-level violations with dot-joined field paths
package validation

import (
	"strconv"
	"strings"

	"github.com/halgateway/halgate/pkg/errors"
)

// Validator accumulates violations while walking an input structure. Field
// paths are dot-joined from the scopes pushed via In.
type Validator struct {
	scope      []string
	violations []errors.Violation
}

// New returns an empty Validator
func New() *Validator {
	return &Validator{}
}

// In runs fn with name appended to the field-path scope
func (v *Validator) In(name string, fn func(*Validator)) {
	v.scope = append(v.scope, name)
	fn(v)
	v.scope = v.scope[:len(v.scope)-1]
}

func (v *Validator) path(field string) string {
	if len(v.scope) == 0 {
		return field
	}
	return strings.Join(v.scope, ".") + "." + field
}

// Add records a violation for the named field in the current scope
func (v *Validator) Add(field, message string) {
	v.violations = append(v.violations,
		errors.Violation{Field: v.path(field), Message: message})
}

// Require records a violation when value is empty
func (v *Validator) Require(field, value string) {
	if value == "" {
		v.Add(field, "is required")
	}
}

// MaxLength records a violation when value exceeds max characters
func (v *Validator) MaxLength(field, value string, max int) {
	if len(value) > max {
		v.Add(field, "must not exceed "+strconv.Itoa(max)+" characters")
	}
}

// Matches records a violation when the non-empty value fails the predicate
func (v *Validator) Matches(field, value string, pred func(string) bool, message string) {
	if value != "" && !pred(value) {
		v.Add(field, message)
	}
}

// Violations returns the accumulated violations in recording order
func (v *Validator) Violations() []errors.Violation {
	return v.violations
}

// Err returns a ValidationError carrying the violations, or nil when the
// input was valid
func (v *Validator) Err(message string) error {
	if len(v.violations) == 0 {
		return nil
	}
	return errors.NewValidationError(message, v.violations...)
}
