// Package report renders ghost search results.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/nightjar/pkg/analyzer"
)

// Format selects a renderer
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatMermaid  Format = "mermaid"
)

// Formats lists the supported formats
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatHTML, FormatMermaid}

// ParseFormat parses a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FormatText, nil
	}
	if name == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown report format %q (expected one of %s)", s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Render writes result to w in the given format.
func Render(w io.Writer, format Format, result *analyzer.Result) error {
	switch format {
	case FormatText, "":
		return Text(w, result)
	case FormatJSON:
		return JSON(w, result)
	case FormatMarkdown:
		return Markdown(w, result)
	case FormatHTML:
		return HTML(w, result)
	case FormatMermaid:
		return Mermaid(w, result)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// relPath shows path relative to the project root with forward slashes.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
