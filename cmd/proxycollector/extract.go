package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/proxycollector/internal/config"
	"github.com/nao1215/proxycollector/internal/pipeline"
	"github.com/nao1215/proxycollector/internal/report"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <channel>",
		Short: "Collect proxy links from one channel and print them",
		Long: `Extract runs a single collection against the given channel and writes
the result without starting the HTTP gateway.

The JSON format is the same envelope the gateway responds with. The
result is written even when collection fails; the exit status is then
non-zero.

Examples:
  # Print the JSON envelope
  proxycollector extract @channelname

  # One link per line, ready for piping
  proxycollector extract https://t.me/channelname -F text

  # Save a Markdown report
  proxycollector extract channelname -F markdown -o report.md`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringP("format", "F", config.DefaultOutputFormat,
		"Output format: json, markdown or text")
	cmd.Flags().StringP("output", "o", "", "Write the result to a file instead of stdout")
	addFetchFlags(cmd)

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.OutputFormat, err = cmd.Flags().GetString("format"); err != nil {
		return err
	}
	if cfg.OutputFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if err := applyFetchFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := setupLogger(cmd, cfg)

	ctx := cmd.Context()
	f, cleanup, err := newFetcher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	collection, collectErr := pipeline.NewCollector(f, logger).Collect(ctx, args[0])

	out, closeOut, err := openOutput(cmd, cfg.OutputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	writer, err := report.NewWriter(cfg.OutputFormat, out)
	if err != nil {
		return err
	}
	if _, err := writer.Write(collection); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if cfg.OutputFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Result written to %s\n", cfg.OutputFile)
	}

	if collectErr != nil {
		return fmt.Errorf("collection failed for %q: %w", args[0], collectErr)
	}
	return nil
}

// openOutput returns the destination for the result: path, or the
// command's stdout when path is empty.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}
