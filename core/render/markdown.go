// Package render provides export renderers for wikiq documents.
// This file implements the Markdown renderer.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/wikiq/core"
)

// MarkdownRenderer writes the document as a standalone Markdown file.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown form of doc: a title heading, the body
// (Markdown when available, else the plain summary), the disambiguation
// list and a source line.
func (r *MarkdownRenderer) Render(doc core.Document) ([]byte, error) {
	return []byte(documentMarkdown(doc)), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// documentMarkdown is shared with the PDF renderer, which draws from the
// same Markdown.
func documentMarkdown(doc core.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)

	body := doc.Markdown
	if body == "" {
		body = doc.Summary
	}
	if body != "" {
		b.WriteString(strings.TrimSpace(body))
		b.WriteString("\n\n")
	}

	if len(doc.Disambiguations) > 0 {
		b.WriteString("## May refer to\n\n")
		for i, t := range doc.Disambiguations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, t)
		}
		b.WriteString("\n")
	}

	if doc.URL != "" {
		fmt.Fprintf(&b, "Source: %s\n", doc.URL)
	}
	return b.String()
}
