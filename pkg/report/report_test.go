package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/nightjar/pkg/analyzer"
	"github.com/simonhull/firebird-suite/nightjar/pkg/extractor"
	"github.com/simonhull/firebird-suite/nightjar/pkg/ghost"
	"github.com/simonhull/firebird-suite/nightjar/pkg/walker"
)

func sampleResult() *analyzer.Result {
	root := filepath.FromSlash("/work/todo")
	at := func(rel string) string { return filepath.Join(root, filepath.FromSlash(rel)) }

	index := walker.Usage{Name: "ReactDOM.render", Path: at("src/index.js")}
	app := walker.Usage{Name: "App", Path: at("src/App.js")}

	return &analyzer.Result{
		Root:        root,
		Entry:       at("src/index.js"),
		AliasConfig: at("jsconfig.json"),
		Ghosts: []ghost.Ghost{
			{Name: "Item", Path: at("src/component/Item.js"), Kind: extractor.KindArrow, StartLine: 3, EndLine: 5},
		},
		TotalComponents: 3,
		Used:            []walker.Usage{index, app},
		Edges:           []walker.Edge{{From: index, To: app}},
	}
}

func render(t *testing.T, f Format, result *analyzer.Result) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, f, result))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"text", FormatText},
		{"JSON", FormatJSON},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{" html ", FormatHTML},
		{"mermaid", FormatMermaid},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mermaid")
}

func TestText(t *testing.T) {
	out := render(t, FormatText, sampleResult())

	assert.Contains(t, out, "You created 3 components")
	assert.Contains(t, out, "2 components reached from src/index.js")
	assert.Contains(t, out, "1 ghost never rendered:")
	assert.Contains(t, out, "Item")
	assert.Contains(t, out, "src/component/Item.js:3")
	assert.NotContains(t, out, "\x1b[", "no colors when writing to a buffer")
}

func TestText_NoGhosts(t *testing.T) {
	result := sampleResult()
	result.Ghosts = nil

	assert.Contains(t, render(t, FormatText, result), "No ghost components found")
}

func TestJSON(t *testing.T) {
	result := sampleResult()
	out := render(t, FormatJSON, result)

	var decoded struct {
		Ghosts []struct {
			Name string `json:"name"`
			Path string `json:"path"`
		} `json:"ghosts"`
		TotalComponents int `json:"totalComponents"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Ghosts, 1)
	assert.Equal(t, "Item", decoded.Ghosts[0].Name)
	assert.Equal(t, result.Ghosts[0].Path, decoded.Ghosts[0].Path)
	assert.Equal(t, 3, decoded.TotalComponents)
	assert.NotContains(t, out, "StartLine")
}

func TestMermaid(t *testing.T) {
	out := render(t, FormatMermaid, sampleResult())

	assert.Equal(t, `graph TD
  n0["ReactDOM.render<br/>src/index.js"]
  n1["App<br/>src/App.js"]
  n0 --> n1
  g0["Item<br/>src/component/Item.js"]:::ghost
  classDef ghost fill:#fde2e4,stroke:#c2185b,stroke-dasharray: 4 2
`, out)
}

func TestMarkdown(t *testing.T) {
	out := render(t, FormatMarkdown, sampleResult())

	assert.True(t, strings.HasPrefix(out, "# Ghost components\n"))
	assert.Contains(t, out, "- **Aliases:** `jsconfig.json`")
	assert.Contains(t, out, "| 3 | 2 | 1 |")
	assert.Contains(t, out, "| Item | arrow | `src/component/Item.js` | 3-5 |")
	assert.Contains(t, out, "```mermaid\ngraph TD\n")
}

func TestHTML(t *testing.T) {
	out := render(t, FormatHTML, sampleResult())

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Ghost components: src/index.js</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Item</td>")
	assert.Contains(t, out, `class="language-mermaid"`)
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, Format("pdf"), sampleResult()))
}
