// Package common defines shared constants and sentinel errors used across
// client and replica layers of cvboard. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrDuplicate signals that the store already holds a record for the
	// submitting owner. It is not a transport failure.
	ErrDuplicate = errors.New("record already exists for this owner")

	// ErrValidation is returned before any network call when a required
	// field is empty.
	ErrValidation = errors.New("validation error")

	// Transport / authorization errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed identity token).
	ErrInvalidToken = errors.New("invalid token")

	// Session errors.
	ErrLoginAbandoned = errors.New("login abandoned")
	ErrNoSession      = errors.New("no cached session")

	// Trust errors.
	ErrUntrusted       = errors.New("untrusted response")
	ErrRootKeyMismatch = errors.New("root key mismatch")
)
