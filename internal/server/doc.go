// Package server exposes the collect pipeline over HTTP.
//
// Every path except /healthz is served by the collect handler, which reads
// the channel query parameter and answers with the JSON envelope. Routing
// uses gorilla/mux; a middleware stamps the CORS and caching headers on
// every response, including errors and preflight replies.
//
// The upstream fetch is detached from the inbound request's cancellation:
// a client that disconnects does not abort the fetch, which still ends at
// the fetch timeout.
package server
