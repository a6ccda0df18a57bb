package syntax

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// SyntaxError locates the first error node of a tree that failed to parse.
type SyntaxError struct {
	Line   int
	Column int
	Near   string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("syntax error at %d:%d", e.Line, e.Column)
	}
	return fmt.Sprintf("syntax error at %d:%d near %q", e.Line, e.Column, e.Near)
}

// Dialect names the grammar a file is parsed with.
type Dialect string

const (
	JavaScript Dialect = "javascript"
	TypeScript Dialect = "typescript"
	TSX        Dialect = "tsx"
)

// DialectFor picks the grammar from the file name. Plain JavaScript files
// are parsed with JSX enabled.
func DialectFor(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return TSX
	case ".ts", ".mts", ".cts":
		return TypeScript
	default:
		return JavaScript
	}
}

func (d Dialect) language() *sitter.Language {
	switch d {
	case TSX:
		return tsx.GetLanguage()
	case TypeScript:
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parse parses src and lowers it. A tree containing error or missing nodes
// is rejected with a *SyntaxError.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(DialectFor(path).language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstError(root, src)
	}

	l := &lowerer{src: src}
	return &File{Path: path, Body: l.lowerChildren(root)}, nil
}

func firstError(n *sitter.Node, src []byte) *SyntaxError {
	if n.Type() == "ERROR" || n.IsMissing() {
		near := n.Content(src)
		if len(near) > 40 {
			near = near[:40]
		}
		return &SyntaxError{
			Line:   int(n.StartPoint().Row) + 1,
			Column: int(n.StartPoint().Column) + 1,
			Near:   near,
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstError(child, src)
		}
	}
	return &SyntaxError{Line: int(n.StartPoint().Row) + 1, Column: int(n.StartPoint().Column) + 1}
}
