package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxycollector",
		Short: "Collect MTProto proxy links from Telegram channels",
		Long: `proxycollector fetches the public preview page of a Telegram channel
(https://t.me/s/<channel>) and extracts the proxy links posted in it,
in both the https://t.me/proxy?... and tg://proxy?... forms.

Run "serve" to expose the collector as an HTTP JSON endpoint, or
"extract" to collect from a single channel and print the result.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .proxycollector in current dir, XDG config dir or home)")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
