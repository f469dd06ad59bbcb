// Package output handles terminal presentation and file export for wikiq.
// This file writes rendered exports to disk; file names are derived from
// the page title (e.g. "Mercury (planet)" → Mercury_planet.md).
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// NewWriter creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func NewWriter(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data under a file name derived from pageTitle and returns
// the written path.
func (w *Writer) Write(pageTitle string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, FilenameFromTitle(pageTitle)+ext)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FilenameFromTitle converts a page title into a flat file name: runs of
// characters other than letters and digits become a single underscore.
//
//	"Mercury (planet)" → "Mercury_planet"
func FilenameFromTitle(pageTitle string) string {
	var b strings.Builder
	pendingSep := false
	for _, ch := range pageTitle {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			if pendingSep && b.Len() > 0 {
				b.WriteRune('_')
			}
			pendingSep = false
			b.WriteRune(ch)
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		return "page"
	}
	return b.String()
}
