package syntax

// Position is the 1-based line span of a node in its source file.
type Position struct {
	StartLine int
	EndLine   int
}

// Node is one node of the lowered tree. Only the constructs needed to find
// components and their dependencies are represented; every other construct
// is flattened into its parent.
type Node interface {
	Pos() Position
	children() []Node
}

// File is the lowered form of a whole module.
type File struct {
	Path string
	Body []Node
}

// ImportName is one `{ imported as local }` binding of an import.
type ImportName struct {
	Imported string
	Local    string
}

// ImportDecl is `import ... from "source"`.
type ImportDecl struct {
	Position
	Source    string
	Default   string // import X from
	Namespace string // import * as X from
	Named     []ImportName
}

// ExportName is one `{ local as exported }` binding of an export.
type ExportName struct {
	Local    string
	Exported string
}

// ExportDefault is `export default ...`. Exactly one of Ident and Decl is
// set when the exported value is named; anonymous expressions only carry
// their lowered contents in Body.
type ExportDefault struct {
	Position
	Ident string
	Decl  Node // *FuncDecl or *ClassDecl
	Body  []Node
}

// ExportNamed is `export { a as b } [from "source"]` or an exported
// declaration such as `export const A = ...`.
type ExportNamed struct {
	Position
	Names  []ExportName
	Source string
	Decls  []Node
}

// ClassDecl is a class declaration or a named class expression.
type ClassDecl struct {
	Position
	Name  string
	Super string // dotted superclass, empty when absent or not a plain name
	Body  []Node
}

// FuncDecl is a named function declaration.
type FuncDecl struct {
	Position
	Name string
	Body []Node
}

// VarDecl is a single `name = value` declarator.
type VarDecl struct {
	Position
	Name  string
	Value []Node
}

// FuncLit is a function expression, method, or arrow function. The concise
// body of an arrow is lowered to a single Return.
type FuncLit struct {
	Position
	Name  string // function expressions and methods only
	Arrow bool
	Body  []Node
}

// Return is a return statement. Value holds the argument when it is an
// element or fragment once parentheses are removed; Ident holds it when it
// is a bare identifier. Anything else is lowered into Body.
type Return struct {
	Position
	Value Node
	Ident string
	Body  []Node
}

// Call is a call expression. Callee is the dotted name of the called
// function when it is an identifier or a chain of property accesses.
type Call struct {
	Position
	Callee string
	Func   []Node
	Args   []Node
}

// Element is a JSX element. Name is the full tag name as written; Tag is
// its leftmost identifier (`Ns` for `<Ns.Item>`).
type Element struct {
	Position
	Name string
	Tag  string
	Body []Node
}

// Fragment is `<>...</>`.
type Fragment struct {
	Position
	Body []Node
}

func (p Position) Pos() Position { return p }

func (n *ImportDecl) children() []Node { return nil }

func (n *ExportDefault) children() []Node {
	if n.Decl != nil {
		return append([]Node{n.Decl}, n.Body...)
	}
	return n.Body
}

func (n *ExportNamed) children() []Node { return n.Decls }

func (n *ClassDecl) children() []Node { return n.Body }
func (n *FuncDecl) children() []Node  { return n.Body }
func (n *VarDecl) children() []Node   { return n.Value }
func (n *FuncLit) children() []Node   { return n.Body }

func (n *Return) children() []Node {
	if n.Value != nil {
		return []Node{n.Value}
	}
	return n.Body
}

func (n *Call) children() []Node {
	out := make([]Node, 0, len(n.Func)+len(n.Args))
	out = append(out, n.Func...)
	return append(out, n.Args...)
}

func (n *Element) children() []Node  { return n.Body }
func (n *Fragment) children() []Node { return n.Body }

// Inspect traverses nodes depth first in source order, calling f for each
// node before its children. If f returns false the children are skipped.
func Inspect(nodes []Node, f func(Node) bool) {
	for _, n := range nodes {
		if n == nil || !f(n) {
			continue
		}
		Inspect(n.children(), f)
	}
}

// Unwrap returns the children of n, for callers that need to start a
// traversal below a node rather than at it.
func Unwrap(n Node) []Node {
	if n == nil {
		return nil
	}
	return n.children()
}
