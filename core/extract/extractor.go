// Package extract implements the Extractor interface.
// It cleans the HTML intro extract returned by the API by removing
// elements that carry no article text (citation markers, inline styles,
// empty placeholders, coordinates).
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are elements removed before the extract is converted.
var noiseSelectors = []string{
	"script", "style", "noscript", "link", "meta",
	"sup.reference", "sup.noprint",
	".mw-empty-elt", ".mw-editsection",
	".geo-default", ".geo-nondefault", "#coordinates",
	"img", "figure", "table",
}

// HTMLExtractor strips noise from an extract and returns the cleaned fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses an HTML fragment and returns it without noise elements.
// An empty fragment yields an empty result.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// The parser wraps fragments in <html><body>.
	result, err := doc.Find("body").First().Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return strings.TrimSpace(result), nil
}
