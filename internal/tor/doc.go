// Package tor routes outbound page fetches through a SOCKS5 proxy.
//
// Client wraps a golang.org/x/net/proxy SOCKS5 dialer and can verify that the
// configured address really speaks SOCKS5 before the server starts taking
// requests. EmbeddedTor launches a private Tor daemon through tornago for
// deployments where t.me is blocked and no proxy is available; its SOCKS
// address is then fed to NewClient like any other proxy.
//
// The package is designed to be used with dependency injection: create a
// Client and hand its Dialer to fetcher.NewHTTPClient rather than changing
// any global transport.
package tor
