package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/firebird-suite/nightjar/pkg/analyzer"
	"github.com/simonhull/firebird-suite/nightjar/pkg/walker"
)

// Mermaid writes the usage graph as a mermaid flowchart. Ghosts are
// drawn unconnected with the ghost class.
func Mermaid(w io.Writer, result *analyzer.Result) error {
	_, err := io.WriteString(w, mermaidGraph(result))
	return err
}

func mermaidGraph(result *analyzer.Result) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	ids := make(map[walker.Usage]string, len(result.Used))
	for i, u := range result.Used {
		id := fmt.Sprintf("n%d", i)
		ids[u] = id
		fmt.Fprintf(&b, "  %s[\"%s\"]\n", id, mermaidLabel(u.Name, relPath(result.Root, u.Path)))
	}
	for _, e := range result.Edges {
		from, ok1 := ids[e.From]
		to, ok2 := ids[e.To]
		if ok1 && ok2 {
			fmt.Fprintf(&b, "  %s --> %s\n", from, to)
		}
	}
	for i, g := range result.Ghosts {
		fmt.Fprintf(&b, "  g%d[\"%s\"]:::ghost\n", i, mermaidLabel(g.Name, relPath(result.Root, g.Path)))
	}
	if len(result.Ghosts) > 0 {
		b.WriteString("  classDef ghost fill:#fde2e4,stroke:#c2185b,stroke-dasharray: 4 2\n")
	}
	return b.String()
}

func mermaidLabel(name, path string) string {
	r := strings.NewReplacer(`"`, "#quot;", "<", "#lt;", ">", "#gt;")
	return r.Replace(name) + "<br/>" + r.Replace(path)
}
