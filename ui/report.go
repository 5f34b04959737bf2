package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderReport wraps a dataset digest in a small markdown document and
// renders it to HTML for display. The digest itself stays untouched; the
// report is purely presentation around it.
func renderReport(entry *Entry, digest string) []byte {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", entry.Name)
	fmt.Fprintf(&md, "Parsed %s · %d rows · %d columns\n\n",
		entry.CreatedAt.Format("2006-01-02 15:04"), entry.Dataset.RowCount, len(entry.Dataset.Headers))

	md.WriteString("## Columns\n\n")
	md.WriteString("| Name | Type |\n|---|---|\n")
	for _, col := range entry.Dataset.Columns {
		fmt.Fprintf(&md, "| %s | %s |\n", col.Name, col.Type)
	}

	md.WriteString("\n## Statistical digest\n\n```\n")
	md.WriteString(digest)
	md.WriteString("```\n")

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md.String()), p, renderer)
}
