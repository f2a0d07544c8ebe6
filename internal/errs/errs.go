// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package errs defines the request-error taxonomy shared by services,
// stores and handlers. Every error is terminal for the current request;
// handlers map Kind to an HTTP status in one place.
package errs

import "errors"

// Kind classifies a request error.
type Kind int

const (
	// KindInternal is the zero value: an unexpected failure that carries
	// no caller-facing detail.
	KindInternal Kind = iota

	// KindValidation marks malformed input. Field carries the offending
	// field name when known.
	KindValidation

	// KindConflict marks a uniqueness or identity violation.
	KindConflict

	// KindAuthentication marks a failed credential check, distinct from
	// KindPermission so callers can tell "wrong code" from "not allowed".
	KindAuthentication

	// KindNotFound marks a missing referenced entity.
	KindNotFound

	// KindPermission marks a policy denial for an authenticated actor.
	KindPermission
)

// Error is a classified request error.
type Error struct {
	Kind  Kind
	Field string // optional, set for validation errors
	Msg   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Msg
	}
	return e.Msg
}

// Validation returns a KindValidation error with field-level detail.
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

// Conflict returns a KindConflict error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// Authentication returns a KindAuthentication error.
func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Msg: msg}
}

// NotFound returns a KindNotFound error for the named entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Msg: entity + " not found"}
}

// Permission returns a KindPermission error.
func Permission(msg string) *Error {
	return &Error{Kind: KindPermission, Msg: msg}
}

// KindOf extracts the Kind from err, unwrapping as needed. Errors outside
// the taxonomy report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
