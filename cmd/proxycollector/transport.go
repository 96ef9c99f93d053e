package main

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/net/proxy"

	"github.com/nao1215/proxycollector/internal/config"
	"github.com/nao1215/proxycollector/internal/fetcher"
	"github.com/nao1215/proxycollector/internal/tor"
)

// newFetcher builds the page fetcher described by cfg.
// The returned cleanup must be called once the fetcher is no longer used;
// it stops the embedded Tor daemon when one was started.
func newFetcher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*fetcher.Fetcher, func(), error) {
	cleanup := func() {}

	var dialer proxy.Dialer
	switch {
	case cfg.SOCKS5Proxy != "":
		opts := []tor.ClientOption{}
		if cfg.SOCKS5User != "" {
			opts = append(opts, tor.WithAuth(cfg.SOCKS5User, cfg.SOCKS5Password))
		}
		client, err := tor.NewClient(cfg.SOCKS5Proxy, opts...)
		if err != nil {
			return nil, cleanup, err
		}
		logger.Info("checking SOCKS5 proxy", "address", cfg.SOCKS5Proxy)
		if status := client.CheckConnection(ctx); status != tor.ProxyStatusOK {
			return nil, cleanup, fmt.Errorf("SOCKS5 proxy %s: %w", cfg.SOCKS5Proxy, status.Error())
		}
		dialer = client.Dialer()

	case cfg.UseEmbeddedTor:
		embedded := tor.NewEmbeddedTor(tor.WithStartupTimeout(cfg.TorStartupTimeout))
		logger.Info("starting embedded Tor daemon", "timeout", cfg.TorStartupTimeout)
		if err := embedded.Start(ctx); err != nil {
			return nil, cleanup, fmt.Errorf("failed to start embedded Tor: %w", err)
		}
		cleanup = func() {
			if err := embedded.Stop(); err != nil {
				logger.Warn("failed to stop embedded Tor", "error", err)
			}
		}
		client, err := embedded.NewClient()
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		logger.Info("embedded Tor daemon ready", "socks", embedded.SocksAddr())
		dialer = client.Dialer()
	}

	f := fetcher.New(
		fetcher.NewHTTPClient(cfg.Timeout, dialer),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithBaseURL(cfg.BaseURL),
		fetcher.WithLogger(logger),
	)
	return f, cleanup, nil
}
