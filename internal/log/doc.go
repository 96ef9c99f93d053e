// Package log provides the structured logger used by the gateway, built on
// the standard slog package with automatic redaction of sensitive values.
//
// Proxy links carry an MTProto secret in their query string
// (tg://proxy?server=...&port=...&secret=...). Anyone holding the secret can
// use the proxy, so the SecureHandler rewrites every "secret=" parameter it
// finds in string and []string attribute values before the record reaches
// the underlying handler. Credentials such as Authorization headers and the
// SOCKS5 proxy password are masked as a whole.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("extracted proxy links", "links", links)
//	// links=[tg://proxy?server=1.2.3.4&port=443&secret=***REDACTED***]
//
// NewSecureJSONLogger emits the same records as JSON lines for log
// collectors.
package log
