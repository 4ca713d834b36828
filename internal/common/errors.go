// Package common defines shared constants and sentinel errors used across
// client and server layers of Linguo. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Catalog errors. ErrNoCatalog means neither the network nor the local
	// snapshot could produce a catalog; it is distinct from a valid empty list.
	ErrNoCatalog = errors.New("no catalog available")

	// Download errors. ErrEmptyAudio means the audio endpoint reported success
	// but returned a zero-byte payload.
	ErrEmptyAudio = errors.New("empty audio payload")

	// Validation errors (malformed catalog entry or deck payload).
	ErrorInvalidEntry = errors.New("invalid catalog entry")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
