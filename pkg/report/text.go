package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/firebird-suite/nightjar/pkg/analyzer"
)

// Text writes the human summary. Colors are used only when w is a
// terminal.
func Text(w io.Writer, result *analyzer.Result) error {
	r := lipgloss.NewRenderer(w)
	bold := r.NewStyle().Bold(true)
	ghostStyle := r.NewStyle().Foreground(lipgloss.Color("205"))
	dim := r.NewStyle().Foreground(lipgloss.Color("240"))
	ok := r.NewStyle().Foreground(lipgloss.Color("10"))

	var b strings.Builder
	fmt.Fprintf(&b, "You created %s\n", bold.Render(plural(result.TotalComponents, "component")))
	fmt.Fprintf(&b, "%s reached from %s\n", plural(len(result.Used), "component"), relPath(result.Root, result.Entry))

	if len(result.Ghosts) == 0 {
		b.WriteString(ok.Render("No ghost components found") + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "\n%s\n", bold.Render(fmt.Sprintf("%s never rendered:", plural(len(result.Ghosts), "ghost"))))
	for _, g := range result.Ghosts {
		fmt.Fprintf(&b, "  %s %s\n",
			ghostStyle.Render(g.Name),
			dim.Render(fmt.Sprintf("%s:%d", relPath(result.Root, g.Path), g.StartLine)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
