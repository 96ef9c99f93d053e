package model

import (
	"errors"
	"fmt"
)

// Collect errors.
// Each error maps to exactly one HTTP status and one response message.
// All of them are terminal: the pipeline stops at the first one.
var (
	// ErrMethodNotAllowed is returned for any HTTP method other than GET or OPTIONS.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrMissingChannel is returned when the channel parameter is absent or empty.
	ErrMissingChannel = errors.New("missing channel parameter")

	// ErrInvalidChannel is returned when the channel reference matches none of
	// the accepted shapes.
	ErrInvalidChannel = errors.New("invalid channel format")

	// ErrFetchFailed is returned when the preview page could not be fetched.
	// It is always carried by a *FetchError.
	ErrFetchFailed = errors.New("failed to fetch channel page")

	// ErrNoProxiesFound is returned when the fetched page contains no proxy links.
	ErrNoProxiesFound = errors.New("no proxy links found in channel")
)

// FetchError describes a failed preview page fetch.
// StatusCode is the upstream HTTP status, or 0 when no response was received
// (transport error, timeout).
type FetchError struct {
	// URL is the URL that was requested.
	URL string

	// StatusCode is the observed upstream status code, 0 if none.
	StatusCode int

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrFetchFailed, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s: unexpected status %d", ErrFetchFailed, e.URL, e.StatusCode)
}

// Unwrap returns the underlying transport error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetchFailed, so callers can use
// errors.Is(err, ErrFetchFailed) without caring about the concrete type.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
