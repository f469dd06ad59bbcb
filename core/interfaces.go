// Package core defines the shared types and pipeline interfaces for wikiq.
// Each export stage is a small interface so it can be swapped in tests.
package core

// Link is a single entry of a page's link list as returned by prop=links.
type Link struct {
	NS    int    `json:"ns"`
	Title string `json:"title"`
}

// Article is the resolved page used as input to the export pipeline.
type Article struct {
	Title string
	URL   string
	HTML  string // intro extract, HTML form
}

// Document is the renderer input. Summary is plain text; Markdown is the
// canonical rich form used by the Markdown and PDF renderers.
type Document struct {
	Title           string   `json:"title"`
	URL             string   `json:"url,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	Markdown        string   `json:"markdown,omitempty"`
	Disambiguations []string `json:"disambiguations,omitempty"`
	Language        string   `json:"language"`
	FetchedAt       string   `json:"fetched_at"` // ISO8601
}

// Extractor cleans an HTML extract, removing markup that carries no content.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown (the canonical format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a Document into a final output format.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
