package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(), so callers can use errors.Is()
// for programmatic error handling.
var (
	// ErrEmptyListenAddress is returned when the server has no listen address.
	ErrEmptyListenAddress = errors.New("invalid listen address: must not be empty")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidShutdownTimeout is returned when the shutdown timeout is negative.
	ErrInvalidShutdownTimeout = errors.New("invalid shutdown timeout: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to apply the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidBaseURL is returned when the base URL is not an absolute
	// http or https URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http(s) URL")

	// ErrConflictingProxySettings is returned when both an external SOCKS5
	// proxy and the embedded Tor daemon are requested.
	ErrConflictingProxySettings = errors.New("conflicting proxy settings: --socks5 and --embedded-tor cannot be used together")

	// ErrInvalidOutputFormat is returned for an unknown extract output format.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)
