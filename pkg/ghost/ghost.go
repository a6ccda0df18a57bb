// Package ghost compares a catalog against the components an entry point
// reaches.
package ghost

import (
	"sort"

	"github.com/simonhull/firebird-suite/nightjar/pkg/catalog"
	"github.com/simonhull/firebird-suite/nightjar/pkg/extractor"
)

// Ghost is a cataloged component never reached from the entry point.
type Ghost struct {
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	Kind      extractor.Kind `json:"-"`
	StartLine int            `json:"-"`
	EndLine   int            `json:"-"`
}

// UsedSet reports whether a (name, path) pair was reached.
type UsedSet interface {
	Contains(name, path string) bool
}

// Detect lists every component of cat absent from used, matching name and
// path exactly. The result is sorted by path, line, then name.
func Detect(cat catalog.Catalog, used UsedSet) []Ghost {
	ghosts := []Ghost{}
	for path, rec := range cat {
		for _, c := range rec.Components {
			if used.Contains(c.Info.Name, path) {
				continue
			}
			ghosts = append(ghosts, Ghost{
				Name:      c.Info.Name,
				Path:      path,
				Kind:      c.Info.Kind,
				StartLine: c.Info.Position.StartLine,
				EndLine:   c.Info.Position.EndLine,
			})
		}
	}

	sort.Slice(ghosts, func(i, j int) bool {
		a, b := ghosts[i], ghosts[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.Name < b.Name
	})
	return ghosts
}
