package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/proxycollector/internal/model"
)

// MarkdownWriter outputs collect results as a Markdown report.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation, which gives us tables, GitHub alerts and mermaid charts
// without hand-escaping pipes in proxy links.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the collection in Markdown format.
func (w *MarkdownWriter) Write(c *model.Collection) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, c)
	if c.Error != nil {
		w.writeError(md, c)
	} else {
		w.writeProxies(md, c)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, c *model.Collection) {
	md.H1("Proxy Collection Report")
	md.PlainText("")

	rows := [][]string{
		{"Channel", "`" + model.FormatHandle(c.RawChannel) + "`"},
	}
	if !c.Channel.IsZero() {
		rows = append(rows, []string{"Preview URL", c.Channel.String()})
	}
	if c.Page != nil {
		if c.Page.Title != "" {
			rows = append(rows, []string{"Title", c.Page.Title})
		}
		if c.Page.Description != "" {
			rows = append(rows, []string{"Description", truncateString(c.Page.Description, 80)})
		}
		rows = append(rows, []string{"Fetched", c.Page.FetchedAt.Format("2006-01-02 15:04:05 MST")})
	}
	rows = append(rows,
		[]string{"Proxies", strconv.Itoa(len(c.Proxies))},
		[]string{"Duration", c.Duration.String()},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeError(md *markdown.Markdown, c *model.Collection) {
	env := c.Envelope()
	md.Cautionf("%s", env.Error)
	md.PlainText("")

	if env.Usage != "" {
		md.H2("Usage")
		md.PlainText("")
		md.BulletList(strings.Split(env.Usage, " or ")...)
		md.PlainText("")
	}
	if len(env.ValidFormats) > 0 {
		md.H2("Valid Formats")
		md.PlainText("")
		md.BulletList(env.ValidFormats...)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeProxies(md *markdown.Markdown, c *model.Collection) {
	md.H2("Proxies")
	md.PlainText("")

	counts := make(map[model.ProxyLinkKind]int)
	rows := make([][]string, 0, len(c.Proxies))
	for i, raw := range c.Proxies {
		// Loose matches may not parse; they are still listed.
		link, err := model.ParseProxyLink(raw)
		if err != nil {
			link = model.ProxyLink{Raw: raw}
		}
		counts[link.Kind]++

		port := "-"
		if link.Port > 0 {
			port = strconv.Itoa(link.Port)
		}
		server := link.Server
		if server == "" {
			server = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			link.Kind.String(),
			server,
			port,
			"`" + raw + "`",
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Kind", "Server", "Port", "Link"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeKindChart(md, counts)

	md.Tip("Open a tg:// link on a device with Telegram installed to add the proxy.")
	md.PlainText("")
}

// writeKindChart writes a mermaid pie chart of link kinds when both forms occur.
func (w *MarkdownWriter) writeKindChart(md *markdown.Markdown, counts map[model.ProxyLinkKind]int) {
	if len(counts) < 2 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Proxy Link Forms"),
		piechart.WithShowData(true),
	)
	for _, kind := range []model.ProxyLinkKind{model.ProxyLinkWeb, model.ProxyLinkNative, model.ProxyLinkUnknown} {
		if n := counts[kind]; n > 0 {
			chart.LabelAndIntValue(kind.String(), uint64(n))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [proxycollector](https://github.com/nao1215/proxycollector)*")
}

// truncateString truncates a string to maxLen bytes with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
