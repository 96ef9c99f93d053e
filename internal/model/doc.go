// Package model defines the request-scoped data structures used throughout
// proxycollector.
//
// This package contains the following main types:
//   - ChannelURL: A normalized reference to a public channel preview page
//   - Page: The raw result of fetching a preview page
//   - ProxyLink: A parsed view of an extracted proxy link
//   - Collection: The state carried through one collect pipeline run
//   - Envelope: The JSON response body returned to callers
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The fetcher, pipeline, server and report packages all need
// these types, so centralizing them prevents import cycles.
//
// Nothing here outlives a single request.
package model
