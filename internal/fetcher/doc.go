// Package fetcher downloads channel preview pages.
//
// A Fetcher performs exactly one GET per call: no retries, no caching. Any
// transport error or a status other than 200 is reported as a
// *model.FetchError carrying the observed status code (0 if none).
//
// # Components
//
//   - Fetcher: issues the request and reads the body with a size limit
//   - NewHTTPClient: builds the outbound client (timeout, redirects, optional SOCKS5 dialer)
//   - parsePreview: pulls the page title and og:description out of the markup
//
// # Usage
//
//	client := fetcher.NewHTTPClient(30*time.Second, nil)
//	f := fetcher.New(client, fetcher.WithUserAgent(ua))
//	page, err := f.Fetch(ctx, channel)
package fetcher
