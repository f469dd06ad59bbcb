// Package normalize implements the Normalizer interface.
// It converts cleaned HTML extracts into Markdown, which serves as the
// canonical intermediate format for the export renderers.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	site string
}

// New creates a MarkdownNormalizer. Extracts link to articles with
// site-relative paths such as /wiki/Sun; a non-empty site
// (e.g. "https://en.wikipedia.org") makes those links absolute so they still
// work in an exported file.
func New(site string) *MarkdownNormalizer {
	return &MarkdownNormalizer{site: site}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if n.site != "" {
		opts = append(opts, converter.WithDomain(n.site))
	}

	markdown, err := htmltomarkdown.ConvertString(html, opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
