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

// Package errors provides the closed set of HTTP error kinds used throughout
// the gateway, plus sentinel errors for route registration failures
package errors

import "errors"

// ErrInvalidPath is an error for when a route's path is invalid
var ErrInvalidPath = errors.New("invalid path value in route")

// ErrInvalidMethod is an error for when a route's method is invalid
var ErrInvalidMethod = errors.New("invalid method value in route")

// ErrDuplicateRoute is an error for when a method/path pair is registered twice
var ErrDuplicateRoute = errors.New("duplicate route registration")

// Kind identifies one member of the closed HTTP error taxonomy
type Kind int

const (
	// KindUnknown is the zero Kind and is not a valid taxonomy member
	KindUnknown Kind = iota
	// KindValidation indicates malformed input, headers or schema violations
	KindValidation
	// KindUnauthorized indicates a missing or invalid credential
	KindUnauthorized
	// KindForbidden indicates an authenticated caller with insufficient rights
	KindForbidden
	// KindNotFound indicates no matching route or resource
	KindNotFound
	// KindConflict indicates a resource state conflict
	KindConflict
	// KindUnprocessableEntity indicates a business-rule violation
	KindUnprocessableEntity
	// KindInternalServerError indicates an unclassified failure
	KindInternalServerError
)

// Violation describes one structural-validation failure. Field is the
// dot-joined path to the offending input field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a tagged HTTP error. The Kind fixes Status and Title; Message
// carries the caller-supplied detail and Violations the optional field-level
// failure list. Error values propagate unmodified from the point of failure
// to the outermost response boundary.
type Error struct {
	Kind       Kind
	Status     int
	Title      string
	Message    string
	Violations []Violation
}

func (e *Error) Error() string {
	return e.Title + ": " + e.Message
}

func newError(kind Kind, status int, title, message string) *Error {
	return &Error{Kind: kind, Status: status, Title: title, Message: message}
}

// NewValidationError returns a 400 Error for malformed input
func NewValidationError(message string, violations ...Violation) *Error {
	e := newError(KindValidation, 400, "Bad Request", message)
	e.Violations = violations
	return e
}

// NewUnauthorizedError returns a 401 Error for a missing or invalid credential
func NewUnauthorizedError(message string) *Error {
	return newError(KindUnauthorized, 401, "Unauthorized", message)
}

// NewForbiddenError returns a 403 Error for insufficient role or feature access
func NewForbiddenError(message string) *Error {
	return newError(KindForbidden, 403, "Forbidden", message)
}

// NewNotFoundError returns a 404 Error for an unmatched route or resource
func NewNotFoundError(message string) *Error {
	return newError(KindNotFound, 404, "Not Found", message)
}

// NewConflictError returns a 409 Error for a resource state conflict
func NewConflictError(message string) *Error {
	return newError(KindConflict, 409, "Conflict", message)
}

// NewUnprocessableEntityError returns a 422 Error for a business-rule violation
func NewUnprocessableEntityError(message string) *Error {
	return newError(KindUnprocessableEntity, 422, "Unprocessable Entity", message)
}

// NewInternalServerError returns a 500 Error for an unclassified failure
func NewInternalServerError(message string) *Error {
	return newError(KindInternalServerError, 500, "Internal Server Error", message)
}

// AsError returns the *Error within err's chain, or nil when err carries none
func AsError(err error) *Error {
	var he *Error
	if errors.As(err, &he) {
		return he
	}
	return nil
}
