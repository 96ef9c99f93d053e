package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/proxycollector/internal/model"
)

// Format names accepted by NewWriter.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatMarkdown, FormatText}

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the collection to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(c *model.Collection) (int, error)
}

// NewWriter returns the Writer for the named format.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return NewJSONWriter(output), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(output), nil
	case FormatText, "txt":
		return NewTextWriter(output), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// IsSupportedFormat reports whether NewWriter accepts format.
func IsSupportedFormat(format string) bool {
	_, err := NewWriter(format, io.Discard)
	return err == nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
