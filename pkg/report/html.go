package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/simonhull/firebird-suite/nightjar/pkg/analyzer"
)

//go:embed templates/report.html
var pageTemplate string

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	page = template.Must(template.New("report").Parse(pageTemplate))
)

// HTML writes the markdown report converted to a standalone page.
func HTML(w io.Writer, result *analyzer.Result) error {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown(result)), &body); err != nil {
		return fmt.Errorf("converting report: %w", err)
	}

	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: fmt.Sprintf("Ghost components: %s", relPath(result.Root, result.Entry)),
		Body:  template.HTML(body.String()),
	}

	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}
