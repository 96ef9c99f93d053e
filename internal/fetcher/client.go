package fetcher

import (
	"context"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/proxy"
)

// maxRedirects bounds redirect following.
const maxRedirects = 10

// NewHTTPClient creates the outbound HTTP client used for preview pages.
//
// Redirects are followed up to maxRedirects. If dialer is non-nil every
// connection goes through it (e.g. a SOCKS5 proxy or the embedded Tor
// daemon); otherwise connections are direct.
func NewHTTPClient(timeout time.Duration, dialer proxy.Dialer) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 10
	transport.MaxIdleConnsPerHost = 2
	transport.IdleConnTimeout = 30 * time.Second

	if dialer != nil {
		transport.Proxy = nil
		transport.DialContext = dialContext(dialer)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// dialContext adapts a proxy.Dialer to http.Transport.DialContext, using the
// context-aware method when the dialer has one.
func dialContext(dialer proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return dialer.Dial(network, addr)
	}
}
