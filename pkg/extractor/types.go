package extractor

import (
	"github.com/simonhull/firebird-suite/nightjar/pkg/syntax"
)

// SpecifierKind distinguishes the three import binding forms.
type SpecifierKind int

const (
	DefaultImport SpecifierKind = iota
	NamedImport
	NamespaceImport
)

func (k SpecifierKind) String() string {
	switch k {
	case DefaultImport:
		return "default"
	case NamedImport:
		return "named"
	case NamespaceImport:
		return "namespace"
	default:
		return "unknown"
	}
}

// ImportSpecifier is one binding introduced by an import statement. Build
// it with DefaultSpecifier, NamedSpecifier or NamespaceSpecifier.
type ImportSpecifier struct {
	Kind     SpecifierKind
	Imported string
	Local    string
}

// DefaultSpecifier is `import Local from ...`. The imported name is the
// local name.
func DefaultSpecifier(local string) ImportSpecifier {
	return ImportSpecifier{Kind: DefaultImport, Imported: local, Local: local}
}

// NamedSpecifier is `import { Imported as Local } from ...`.
func NamedSpecifier(imported, local string) ImportSpecifier {
	return ImportSpecifier{Kind: NamedImport, Imported: imported, Local: local}
}

// NamespaceSpecifier is `import * as Local from ...`.
func NamespaceSpecifier(local string) ImportSpecifier {
	return ImportSpecifier{Kind: NamespaceImport, Imported: "*", Local: local}
}

// IsDefault reports whether the binding is a default import.
func (s ImportSpecifier) IsDefault() bool { return s.Kind == DefaultImport }

// ImportEdge is one import statement.
type ImportEdge struct {
	Source     string
	Relative   bool
	Specifiers []ImportSpecifier
	Position   syntax.Position
}

// ExportEdge is one exported binding. Source is set for re-exports.
type ExportEdge struct {
	Default  bool
	Local    string
	Exported string
	Source   string
	Position syntax.Position
}

// Kind is the syntactic form a component was declared with.
type Kind string

const (
	KindClass    Kind = "class"
	KindFunction Kind = "function"
	KindArrow    Kind = "arrow"
	KindRootCall Kind = "root-call"
)

// ComponentInfo identifies a declared component.
type ComponentInfo struct {
	Name     string
	Kind     Kind
	Position syntax.Position
}

// Component is a declared component with the tag names it renders, in
// traversal order. Tags may repeat.
type Component struct {
	Info ComponentInfo
	Tags []string
}

// FileRecord is everything extracted from one source file.
type FileRecord struct {
	Path       string
	Imports    []ImportEdge
	Exports    []ExportEdge
	Components []Component
}

// HasComponents reports whether the file declares at least one component.
func (r *FileRecord) HasComponents() bool {
	return len(r.Components) > 0
}

// Component returns the first component declared with name.
func (r *FileRecord) Component(name string) (*Component, bool) {
	for i := range r.Components {
		if r.Components[i].Info.Name == name {
			return &r.Components[i], true
		}
	}
	return nil, false
}

// DefaultExport returns the file's default export, if any, including
// `export { Local as default }`.
func (r *FileRecord) DefaultExport() (ExportEdge, bool) {
	for _, e := range r.Exports {
		if e.Default || (e.Exported == "default" && e.Source == "") {
			return e, true
		}
	}
	return ExportEdge{}, false
}

// ExportedAs returns the first non-default export published under name.
func (r *FileRecord) ExportedAs(name string) (ExportEdge, bool) {
	for _, e := range r.Exports {
		if !e.Default && e.Exported == name {
			return e, true
		}
	}
	return ExportEdge{}, false
}

// ImportOf returns the import binding whose local name is local.
func (r *FileRecord) ImportOf(local string) (ImportEdge, ImportSpecifier, bool) {
	for _, imp := range r.Imports {
		for _, spec := range imp.Specifiers {
			if spec.Local == local {
				return imp, spec, true
			}
		}
	}
	return ImportEdge{}, ImportSpecifier{}, false
}
