package fetcher

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nao1215/proxycollector/internal/model"
)

// Default fetcher settings.
const (
	// DefaultUserAgent is a desktop browser User-Agent. The preview pages are
	// served to browsers; naive bot filters reject obvious client strings.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultMaxBodySize limits how much of a preview page is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Fetcher downloads channel preview pages.
// It is safe for concurrent use; it holds no per-request state.
type Fetcher struct {
	// client is the outbound HTTP client (timeout and transport live here).
	client *http.Client

	// baseURL is the scheme and host preview pages are fetched from.
	baseURL string

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// logger receives debug output about each fetch.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets a custom User-Agent header. An empty string keeps the default.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size.
// Non-positive values keep DefaultMaxBodySize.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithBaseURL fetches preview pages from baseURL instead of https://t.me.
// Useful for mirrors and tests.
func WithBaseURL(baseURL string) Option {
	return func(f *Fetcher) {
		if baseURL != "" {
			f.baseURL = baseURL
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher that uses client for all requests.
// If client is nil, http.DefaultClient is used.
func New(client *http.Client, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	f := &Fetcher{
		client:      client,
		baseURL:     model.DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// Fetch performs one GET of the channel's preview page.
// A transport failure or any status other than 200 returns a *model.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, channel model.ChannelURL) (*model.Page, error) {
	pageURL := channel.PreviewURL(f.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &model.FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &model.FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	f.logger.Debug("preview page response",
		"url", pageURL,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &model.FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &model.FetchError{URL: pageURL, StatusCode: resp.StatusCode, Err: err}
	}

	page := &model.Page{
		URL:         pageURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
		FetchedAt:   time.Now(),
	}

	// Title and description are informational only; a parse failure is not
	// a fetch failure.
	if page.ContentType == "" || strings.Contains(page.ContentType, "html") {
		if info, err := parsePreview(strings.NewReader(page.Body)); err == nil {
			page.Title = info.title
			page.Description = info.description
		}
	}

	return page, nil
}

// BaseURL returns the base URL preview pages are fetched from.
func (f *Fetcher) BaseURL() string {
	return f.baseURL
}
