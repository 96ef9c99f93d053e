package model

import (
	"time"
)

// Page is the result of fetching one channel preview page.
// It only lives for the duration of a single request.
type Page struct {
	// URL is the URL that was requested.
	URL string `json:"url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the MIME type of the response.
	ContentType string `json:"content_type"`

	// Body is the raw response body, limited to the fetcher's max body size.
	Body string `json:"-"`

	// Title is the page title extracted from the <title> tag.
	// Empty if the body is not HTML or has no title.
	Title string `json:"title,omitempty"`

	// Description is the og:description meta value, usually the channel bio.
	Description string `json:"description,omitempty"`

	// FetchedAt is when the response was received.
	FetchedAt time.Time `json:"fetched_at"`
}

// Size returns the body length in bytes.
func (p *Page) Size() int {
	return len(p.Body)
}
