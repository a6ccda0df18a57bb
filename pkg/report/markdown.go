package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/firebird-suite/nightjar/pkg/analyzer"
)

// Markdown writes a GitHub flavored report with a mermaid usage graph.
func Markdown(w io.Writer, result *analyzer.Result) error {
	_, err := io.WriteString(w, markdown(result))
	return err
}

func markdown(result *analyzer.Result) string {
	var b strings.Builder

	b.WriteString("# Ghost components\n\n")
	fmt.Fprintf(&b, "- **Project:** `%s`\n", result.Root)
	fmt.Fprintf(&b, "- **Entry:** `%s`\n", relPath(result.Root, result.Entry))
	if result.AliasConfig != "" {
		fmt.Fprintf(&b, "- **Aliases:** `%s`\n", relPath(result.Root, result.AliasConfig))
	}
	b.WriteString("\n| Components | Used | Ghosts |\n|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d |\n\n", result.TotalComponents, len(result.Used), len(result.Ghosts))

	b.WriteString("## Ghosts\n\n")
	if len(result.Ghosts) == 0 {
		b.WriteString("Every component is rendered from the entry point.\n\n")
	} else {
		b.WriteString("| Component | Kind | File | Lines |\n|---|---|---|---|\n")
		for _, g := range result.Ghosts {
			fmt.Fprintf(&b, "| %s | %s | `%s` | %d-%d |\n",
				escapeCell(g.Name), g.Kind, relPath(result.Root, g.Path), g.StartLine, g.EndLine)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Usage graph\n\n```mermaid\n")
	b.WriteString(mermaidGraph(result))
	b.WriteString("```\n")

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
