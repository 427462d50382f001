package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a by-id lookup matched no record.
	ErrNotFound = errors.New("record not found")

	// ErrNotConfigured means the backend's credential is absent or still
	// the placeholder default. Expected and non-fatal; surfaced as a
	// status rather than treated as a failure.
	ErrNotConfigured = errors.New("backend not configured")

	// ErrUnavailable means the request never produced an HTTP response:
	// DNS failure, timeout, connection reset.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrRejected means the backend answered with a non-success status:
	// auth failure, validation failure, rate limit.
	ErrRejected = errors.New("backend rejected request")
)

// RequestError carries the backend's non-success response. It unwraps to
// ErrRejected, or to ErrNotFound for a 404, so callers can use errors.Is
// without inspecting status codes.
type RequestError struct {
	Backend string // "airtable" or "notion"
	Status  int
	Reason  string // status text or backend-supplied message
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Backend, e.Status, e.Reason)
}

func (e *RequestError) Unwrap() error {
	if e.Status == 404 {
		return ErrNotFound
	}
	return ErrRejected
}
