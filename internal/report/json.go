package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/proxycollector/internal/model"
)

// DefaultIndent is the indentation of pretty-printed envelopes.
const DefaultIndent = "    "

// JSONWriter outputs the response envelope as JSON.
//
// Design decision: HTML escaping is disabled. Proxy links contain '&', and
// the default encoder would turn every one of them into \u0026, which
// breaks clients that copy links out of the raw body.
type JSONWriter struct {
	baseWriter

	// indent is the per-level indentation; empty means compact output.
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent sets the per-level indentation string.
func WithIndent(indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = indent
	}
}

// WithCompact disables pretty printing.
func WithCompact() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = ""
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
// Output is pretty-printed with DefaultIndent unless configured otherwise.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		indent:     DefaultIndent,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the collection's envelope.
func (w *JSONWriter) Write(c *model.Collection) (int, error) {
	return w.WriteEnvelope(c.Envelope())
}

// WriteEnvelope outputs env followed by a newline.
func (w *JSONWriter) WriteEnvelope(env *model.Envelope) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indent != "" {
		enc.SetIndent("", w.indent)
	}
	if err := enc.Encode(env); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
