// Package pipeline runs one collect request through its stages: validate the
// channel parameter, normalize it, fetch the preview page, extract proxy
// links, and format the display handle.
//
// Each stage is a Step that receives the shared model.Collection and fills in
// its part. The pipeline is fail-fast: the first step that returns an error
// stops the run and the error is recorded on the collection, so the HTTP
// layer only has to map that single error to a status code.
//
// Design decision: stages are Steps rather than one function so that each can
// be tested in isolation and the CLI and HTTP server share the exact same
// ordering through Collector.
package pipeline
