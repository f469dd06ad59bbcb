// Package render — JSON renderer.
// Emits the document as structured JSON. Links found in the Markdown body
// are listed separately and a plain-text summary is derived from the
// Markdown when the document has none.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/wikiq/core"
)

// MarkdownLink is a hyperlink found in the Markdown body.
type MarkdownLink struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// documentJSON is the JSON output layout.
type documentJSON struct {
	core.Document
	Links []MarkdownLink `json:"links,omitempty"`
}

// JSONRenderer produces structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals doc as indented JSON.
func (r *JSONRenderer) Render(doc core.Document) ([]byte, error) {
	if doc.Summary == "" && doc.Markdown != "" {
		doc.Summary = stripMarkdown(doc.Markdown)
	}

	data, err := json.MarshalIndent(documentJSON{
		Document: doc,
		Links:    extractLinks(doc.Markdown),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// --- Markdown parsing helpers ---

var headingRegex = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

// linkRegex matches Markdown links [text](url).
var linkRegex = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

var (
	emphasisRegex   = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")
	blankLinesRegex = regexp.MustCompile(`\n{3,}`)
)

func extractLinks(md string) []MarkdownLink {
	matches := linkRegex.FindAllStringSubmatch(md, -1)
	if len(matches) == 0 {
		return nil
	}
	links := make([]MarkdownLink, 0, len(matches))
	for _, m := range matches {
		links = append(links, MarkdownLink{Text: m[1], Href: m[2]})
	}
	return links
}

// stripMarkdown removes common Markdown formatting to produce plain text.
func stripMarkdown(md string) string {
	text := headingRegex.ReplaceAllString(md, "$2")
	text = emphasisRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "```", "")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	text = blankLinesRegex.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
