// Package report renders collect results.
//
// This package contains writers for different output formats:
//   - JSONWriter: the response envelope, exactly as the HTTP endpoint serves it
//   - MarkdownWriter: a shareable report with a proxy table, built with nao1215/markdown
//   - TextWriter: one proxy link per line, for piping into other tools
//
// Writers implement the Writer interface so the extract command can select
// one by name with NewWriter.
package report
