package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/nightjar/pkg/filesystem"
	"github.com/simonhull/firebird-suite/nightjar/pkg/syntax"
)

// ParseError reports a source file that could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Extractor turns source text into a FileRecord. It never touches the
// filesystem except through ExtractFile.
type Extractor struct {
	registry *Registry
}

// NewExtractor creates an Extractor recognizing rootCall as the
// application mount call. An empty rootCall means DefaultRootCall.
func NewExtractor(rootCall string) *Extractor {
	return &Extractor{registry: NewRegistry(rootCall)}
}

// RegisterPattern adds a custom component pattern, tried after the
// defaults.
func (e *Extractor) RegisterPattern(p Pattern) {
	e.registry.Register(p)
}

// ExtractFile reads path and extracts it.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*FileRecord, error) {
	content, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.Extract(ctx, path, []byte(content))
}

// Extract parses src as the content of path.
func (e *Extractor) Extract(ctx context.Context, path string, src []byte) (*FileRecord, error) {
	file, err := syntax.Parse(ctx, path, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	record := &FileRecord{Path: path}
	var candidates []Candidate
	var kinds []Kind

	syntax.Inspect(file.Body, func(n syntax.Node) bool {
		switch v := n.(type) {
		case *syntax.ImportDecl:
			record.Imports = append(record.Imports, importEdge(v))
		case *syntax.ExportDefault:
			if edge, ok := defaultExportEdge(v); ok {
				record.Exports = append(record.Exports, edge)
			}
		case *syntax.ExportNamed:
			for _, name := range v.Names {
				record.Exports = append(record.Exports, ExportEdge{
					Local:    name.Local,
					Exported: name.Exported,
					Source:   v.Source,
					Position: v.Position,
				})
			}
		}

		if p, c, ok := e.registry.Match(n); ok {
			candidates = append(candidates, c)
			kinds = append(kinds, p.Kind)
		}
		return true
	})

	known := make(map[string]bool)
	for _, imp := range record.Imports {
		for _, spec := range imp.Specifiers {
			known[spec.Local] = true
			known[spec.Imported] = true
		}
	}
	for _, c := range candidates {
		known[c.Name] = true
	}

	for i, c := range candidates {
		record.Components = append(record.Components, Component{
			Info: ComponentInfo{Name: c.Name, Kind: kinds[i], Position: c.Position},
			Tags: collectTags(c.Body, known),
		})
	}

	return record, nil
}

func importEdge(d *syntax.ImportDecl) ImportEdge {
	edge := ImportEdge{
		Source:   d.Source,
		Relative: strings.HasPrefix(d.Source, "."),
		Position: d.Position,
	}
	if d.Default != "" {
		edge.Specifiers = append(edge.Specifiers, DefaultSpecifier(d.Default))
	}
	if d.Namespace != "" {
		edge.Specifiers = append(edge.Specifiers, NamespaceSpecifier(d.Namespace))
	}
	for _, n := range d.Named {
		edge.Specifiers = append(edge.Specifiers, NamedSpecifier(n.Imported, n.Local))
	}
	return edge
}

func defaultExportEdge(d *syntax.ExportDefault) (ExportEdge, bool) {
	name := d.Ident
	switch decl := d.Decl.(type) {
	case *syntax.FuncDecl:
		name = decl.Name
	case *syntax.ClassDecl:
		name = decl.Name
	}
	if name == "" {
		return ExportEdge{}, false
	}
	return ExportEdge{Default: true, Local: name, Exported: name, Position: d.Position}, true
}

// collectTags lists the element tags rendered in body that name an import
// or a component of the same file. Intrinsic tags such as div never match.
func collectTags(body []syntax.Node, known map[string]bool) []string {
	tags := []string{}
	syntax.Inspect(body, func(n syntax.Node) bool {
		if el, ok := n.(*syntax.Element); ok && el.Tag != "" && known[el.Tag] {
			tags = append(tags, el.Tag)
		}
		return true
	})
	return tags
}
