package report

import (
	"io"
	"strings"

	"github.com/nao1215/proxycollector/internal/model"
)

// TextWriter outputs one proxy link per line.
// A failed collection produces a single "error: <message>" line.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the collection as plain text.
func (w *TextWriter) Write(c *model.Collection) (int, error) {
	var sb strings.Builder

	env := c.Envelope()
	if !env.OK {
		sb.WriteString("error: ")
		sb.WriteString(env.Error)
		sb.WriteString("\n")
		return io.WriteString(w.output, sb.String())
	}

	for _, link := range env.Proxies {
		sb.WriteString(link)
		sb.WriteString("\n")
	}
	return io.WriteString(w.output, sb.String())
}
