// Package common defines sentinel errors shared across the layers of the
// microblog server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrorDuplicateEmail = errors.New("email already exists")

	// Validation errors (malformed input against field constraints).
	ErrorValidation = errors.New("validation error")
	ErrorInvalidID  = errors.New("invalid id")

	// Auth errors.
	ErrorInvalidPassword = errors.New("invalid password")
	ErrorInvalidToken    = errors.New("invalid token")
	ErrorUnauthenticated = errors.New("unauthenticated")

	// Generic internal failure surfaced instead of raw lower-level errors.
	ErrorInternal = errors.New("internal error")
)
