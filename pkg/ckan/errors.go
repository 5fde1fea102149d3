package ckan

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a requested organization or dataset
	// doesn't exist in the catalogue.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, non-2xx responses from the provider).
	ErrNetwork = errors.New("network error")
)

// APIError is a logical error reported inside a CKAN action envelope
// (success=false). The provider returns these with a 2xx or 4xx status,
// so they are distinct from transport-level failures.
//
// APIError unwraps to [ErrNotFound] when the provider's error type marks
// a missing record, so errors.Is(err, ErrNotFound) works uniformly.
type APIError struct {
	Type    string `json:"__type"`  // CKAN error class (e.g. "Not Found Error")
	Message string `json:"message"` // Human-readable message
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap maps provider not-found classes onto [ErrNotFound].
func (e *APIError) Unwrap() error {
	if strings.Contains(e.Type, "Not Found") {
		return ErrNotFound
	}
	return nil
}
