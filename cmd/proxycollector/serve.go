package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/proxycollector/internal/config"
	"github.com/nao1215/proxycollector/internal/pipeline"
	"github.com/nao1215/proxycollector/internal/server"
)

// readHeaderTimeout bounds how long a client may take to send headers.
const readHeaderTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Long: `Serve answers GET /?channel=<channel> with the proxy links found on
the channel's public preview page.

The channel may be given as a bare username, @username, or a
t.me / telegram.me URL. Responses are JSON envelopes:

  {"ok": true, "channel": "@name", "proxies": ["tg://proxy?..."]}
  {"ok": false, "error": "..."}

Every request fetches the preview page exactly once; nothing is cached.
GET /healthz answers {"ok": true} without touching upstream.

Examples:
  # Listen on the default address (:8080)
  proxycollector serve

  # Listen on port 9000 and fetch through a local Tor SOCKS port
  proxycollector serve --listen :9000 --socks5 127.0.0.1:9050

  # Stop accepting new requests immediately on SIGTERM
  proxycollector serve --shutdown-timeout 0`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddress,
		"Address the HTTP gateway listens on")
	cmd.Flags().Duration("shutdown-timeout", config.DefaultShutdownTimeout,
		"Time allowed for in-flight requests on shutdown (0 closes immediately)")
	addFetchFlags(cmd)

	return cmd
}

// runServe executes the serve command.
func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyServeFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := setupLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, cleanup, err := newFetcher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	handler := server.New(pipeline.NewCollector(f, logger), server.WithLogger(logger))

	ln, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddress, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", ln.Addr())

	return runServer(ctx, ln, handler, cfg.ShutdownTimeout, logger)
}

// applyServeFlags copies explicitly set serve flags onto cfg.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("listen") {
		if cfg.ListenAddress, err = flags.GetString("listen"); err != nil {
			return err
		}
	}
	if flags.Changed("shutdown-timeout") {
		if cfg.ShutdownTimeout, err = flags.GetDuration("shutdown-timeout"); err != nil {
			return err
		}
	}
	return applyFetchFlags(cmd, cfg)
}

// runServer serves handler on ln until ctx is done, then shuts down.
// In-flight requests get shutdownTimeout to finish; zero closes at once.
func runServer(ctx context.Context, ln net.Listener, handler http.Handler, shutdownTimeout time.Duration, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", shutdownTimeout)

		if shutdownTimeout <= 0 {
			return srv.Close()
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			// Requests still running past the deadline are cut off.
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
