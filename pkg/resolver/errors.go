package resolver

import (
	"fmt"
	"strings"
)

// ResolutionError reports an import that names a project module which
// cannot be located.
type ResolutionError struct {
	Specifier  string
	Path       string // path the specifier was rewritten to
	Name       string // component being looked up
	Reason     string
	Extensions []string // set when no file with a supported extension matched
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot resolve %q", e.Specifier)
	if e.Name != "" {
		fmt.Fprintf(&b, " for %s", e.Name)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if len(e.Extensions) > 0 {
		fmt.Fprintf(&b, "; supported extensions: %s", strings.Join(e.Extensions, ", "))
	}
	return b.String()
}
