package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/wikiq/core"
)

// Formats lists the export format names accepted by ForFormat.
var Formats = []string{"md", "json", "pdf"}

// ForFormat returns the renderer for an export format name.
func ForFormat(name string) (core.Renderer, error) {
	switch strings.ToLower(name) {
	case "md", "markdown":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (must be one of %s)", name, strings.Join(Formats, ", "))
	}
}
