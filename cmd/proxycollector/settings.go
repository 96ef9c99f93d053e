package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/proxycollector/internal/config"
	plog "github.com/nao1215/proxycollector/internal/log"
)

// Flag names shared by serve and extract.
const (
	flagTimeout        = "timeout"
	flagBaseURL        = "base-url"
	flagUserAgent      = "user-agent"
	flagMaxBodySize    = "max-body-size"
	flagSOCKS5         = "socks5"
	flagSOCKS5User     = "socks5-user"
	flagSOCKS5Password = "socks5-password"
	flagEmbeddedTor    = "embedded-tor"
	flagTorTimeout     = "tor-timeout"
)

// addFetchFlags registers the flags that shape the upstream fetch.
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP(flagTimeout, "t", config.DefaultTimeout,
		"Timeout of the upstream page fetch, redirects included")
	cmd.Flags().String(flagBaseURL, config.DefaultBaseURL,
		"Origin serving the channel preview pages")
	cmd.Flags().String(flagUserAgent, config.DefaultUserAgent,
		"User-Agent sent upstream")
	cmd.Flags().Int64(flagMaxBodySize, config.DefaultMaxBodySize,
		"Maximum number of preview page bytes to read")
	cmd.Flags().String(flagSOCKS5, "",
		"Route fetches through a SOCKS5 proxy at host:port")
	cmd.Flags().String(flagSOCKS5User, "", "SOCKS5 proxy username")
	cmd.Flags().String(flagSOCKS5Password, "", "SOCKS5 proxy password")
	cmd.Flags().Bool(flagEmbeddedTor, false,
		"Route fetches through an embedded Tor daemon (slow to start)")
	cmd.Flags().Duration(flagTorTimeout, config.DefaultTorStartupTimeout,
		"Timeout for embedded Tor startup")
}

// loadConfig builds the configuration from defaults, the config file and
// the global flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.ConfigFilePath = stringFlag(cmd, "config")

	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flagChanged(cmd, "verbose") {
		cfg.Verbose = boolFlag(cmd, "verbose")
	}
	if flagChanged(cmd, "log-json") {
		cfg.JSONLogs = boolFlag(cmd, "log-json")
	}
	return cfg, nil
}

// applyFetchFlags copies explicitly set fetch flags onto cfg.
func applyFetchFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed(flagTimeout) {
		if cfg.Timeout, err = flags.GetDuration(flagTimeout); err != nil {
			return err
		}
	}
	if flags.Changed(flagBaseURL) {
		if cfg.BaseURL, err = flags.GetString(flagBaseURL); err != nil {
			return err
		}
	}
	if flags.Changed(flagUserAgent) {
		if cfg.UserAgent, err = flags.GetString(flagUserAgent); err != nil {
			return err
		}
	}
	if flags.Changed(flagMaxBodySize) {
		if cfg.MaxBodySize, err = flags.GetInt64(flagMaxBodySize); err != nil {
			return err
		}
	}
	if flags.Changed(flagSOCKS5) {
		if cfg.SOCKS5Proxy, err = flags.GetString(flagSOCKS5); err != nil {
			return err
		}
	}
	if flags.Changed(flagSOCKS5User) {
		if cfg.SOCKS5User, err = flags.GetString(flagSOCKS5User); err != nil {
			return err
		}
	}
	if flags.Changed(flagSOCKS5Password) {
		if cfg.SOCKS5Password, err = flags.GetString(flagSOCKS5Password); err != nil {
			return err
		}
	}
	if flags.Changed(flagEmbeddedTor) {
		if cfg.UseEmbeddedTor, err = flags.GetBool(flagEmbeddedTor); err != nil {
			return err
		}
	}
	if flags.Changed(flagTorTimeout) {
		if cfg.TorStartupTimeout, err = flags.GetDuration(flagTorTimeout); err != nil {
			return err
		}
	}
	return nil
}

// setupLogger creates the secure logger for cfg and makes it the default.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger := plog.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.JSONLogs)
	slog.SetDefault(logger)
	return logger
}

// flagChanged reports whether the named flag exists and was set.
// Subcommands built without the root command have no global flags.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func boolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return v
}

func stringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}
