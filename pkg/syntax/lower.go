package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// lowerer converts a concrete tree-sitter tree into the typed tree. The
// javascript, typescript and tsx grammars share node names for every
// construct handled here.
type lowerer struct {
	src []byte
}

func position(n *sitter.Node) Position {
	return Position{
		StartLine: int(n.StartPoint().Row) + 1,
		EndLine:   int(n.EndPoint().Row) + 1,
	}
}

func (l *lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(l.src)
}

// literal returns the value of a string node or the text of an identifier.
func (l *lowerer) literal(n *sitter.Node) string {
	s := l.text(n)
	if n != nil && n.Type() == "string" && len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

func (l *lowerer) lowerChildren(n *sitter.Node) []Node {
	if n == nil {
		return nil
	}
	var out []Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, l.lower(n.NamedChild(i))...)
	}
	return out
}

func (l *lowerer) lower(n *sitter.Node) []Node {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "comment":
		return nil
	case "import_statement":
		return []Node{l.importDecl(n)}
	case "export_statement":
		return []Node{l.exportStatement(n)}
	case "class_declaration", "abstract_class_declaration", "class":
		return []Node{l.classDecl(n)}
	case "function_declaration", "generator_function_declaration":
		return []Node{l.funcDecl(n)}
	case "variable_declarator":
		return []Node{l.varDecl(n)}
	case "arrow_function":
		return []Node{l.arrow(n)}
	case "function", "function_expression", "generator_function", "method_definition":
		return []Node{&FuncLit{Position: position(n), Name: l.text(n.ChildByFieldName("name")), Body: l.lowerChildren(n.ChildByFieldName("body"))}}
	case "return_statement":
		var arg *sitter.Node
		if n.NamedChildCount() > 0 {
			arg = n.NamedChild(0)
		}
		return []Node{l.returnOf(n, arg)}
	case "call_expression":
		return []Node{l.call(n)}
	case "jsx_element":
		return []Node{l.element(n)}
	case "jsx_self_closing_element":
		name := n.ChildByFieldName("name")
		return []Node{&Element{Position: position(n), Name: l.text(name), Tag: l.leftmost(name), Body: l.lowerChildren(n)}}
	case "jsx_fragment":
		return []Node{&Fragment{Position: position(n), Body: l.lowerChildren(n)}}
	default:
		return l.lowerChildren(n)
	}
}

func (l *lowerer) importDecl(n *sitter.Node) *ImportDecl {
	decl := &ImportDecl{Position: position(n), Source: l.literal(n.ChildByFieldName("source"))}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		clause := n.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			child := clause.NamedChild(j)
			switch child.Type() {
			case "identifier":
				decl.Default = l.text(child)
			case "namespace_import":
				for k := 0; k < int(child.NamedChildCount()); k++ {
					if id := child.NamedChild(k); id.Type() == "identifier" {
						decl.Namespace = l.text(id)
					}
				}
			case "named_imports":
				for k := 0; k < int(child.NamedChildCount()); k++ {
					spec := child.NamedChild(k)
					if spec.Type() != "import_specifier" {
						continue
					}
					imported := l.literal(spec.ChildByFieldName("name"))
					local := imported
					if alias := spec.ChildByFieldName("alias"); alias != nil {
						local = l.text(alias)
					}
					decl.Named = append(decl.Named, ImportName{Imported: imported, Local: local})
				}
			}
		}
	}
	return decl
}

func (l *lowerer) exportStatement(n *sitter.Node) Node {
	isDefault := false
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "default" {
			isDefault = true
			break
		}
	}

	declaration := n.ChildByFieldName("declaration")
	if isDefault {
		out := &ExportDefault{Position: position(n)}
		target := declaration
		if target == nil {
			target = n.ChildByFieldName("value")
			if target != nil && target.Type() == "identifier" {
				out.Ident = l.text(target)
				return out
			}
		}
		lowered := l.lower(target)
		if len(lowered) == 1 {
			switch d := lowered[0].(type) {
			case *FuncDecl:
				if d.Name != "" {
					out.Decl = d
					return out
				}
			case *ClassDecl:
				if d.Name != "" {
					out.Decl = d
					return out
				}
			case *FuncLit:
				if d.Name != "" && !d.Arrow {
					out.Decl = &FuncDecl{Position: d.Position, Name: d.Name, Body: d.Body}
					return out
				}
			}
		}
		out.Body = lowered
		return out
	}

	out := &ExportNamed{Position: position(n), Source: l.literal(n.ChildByFieldName("source"))}
	if declaration != nil {
		out.Decls = l.lower(declaration)
		for _, d := range out.Decls {
			if name := declaredName(d); name != "" {
				out.Names = append(out.Names, ExportName{Local: name, Exported: name})
			}
		}
		return out
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		clause := n.NamedChild(i)
		if clause.Type() != "export_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			spec := clause.NamedChild(j)
			if spec.Type() != "export_specifier" {
				continue
			}
			local := l.literal(spec.ChildByFieldName("name"))
			exported := local
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				exported = l.literal(alias)
			}
			out.Names = append(out.Names, ExportName{Local: local, Exported: exported})
		}
	}
	return out
}

func declaredName(n Node) string {
	switch d := n.(type) {
	case *FuncDecl:
		return d.Name
	case *ClassDecl:
		return d.Name
	case *VarDecl:
		return d.Name
	}
	return ""
}

func (l *lowerer) classDecl(n *sitter.Node) *ClassDecl {
	decl := &ClassDecl{
		Position: position(n),
		Name:     l.text(n.ChildByFieldName("name")),
		Body:     l.lowerChildren(n.ChildByFieldName("body")),
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		heritage := n.NamedChild(i)
		if heritage.Type() != "class_heritage" {
			continue
		}
		decl.Super = l.superclass(heritage)
	}
	return decl
}

// superclass reads `extends X` from a class_heritage node. TypeScript
// wraps the expression in an extends_clause.
func (l *lowerer) superclass(heritage *sitter.Node) string {
	for i := 0; i < int(heritage.NamedChildCount()); i++ {
		child := heritage.NamedChild(i)
		switch child.Type() {
		case "extends_clause":
			value := child.ChildByFieldName("value")
			if value == nil && child.NamedChildCount() > 0 {
				value = child.NamedChild(0)
			}
			return l.dotted(value)
		case "implements_clause", "comment":
			continue
		default:
			return l.dotted(child)
		}
	}
	return ""
}

func (l *lowerer) funcDecl(n *sitter.Node) *FuncDecl {
	return &FuncDecl{
		Position: position(n),
		Name:     l.text(n.ChildByFieldName("name")),
		Body:     l.lowerChildren(n.ChildByFieldName("body")),
	}
}

func (l *lowerer) varDecl(n *sitter.Node) *VarDecl {
	decl := &VarDecl{Position: position(n), Value: l.lower(n.ChildByFieldName("value"))}
	if name := n.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
		decl.Name = l.text(name)
	}
	return decl
}

func (l *lowerer) arrow(n *sitter.Node) *FuncLit {
	lit := &FuncLit{Position: position(n), Arrow: true}
	body := n.ChildByFieldName("body")
	if body == nil {
		return lit
	}
	if body.Type() == "statement_block" {
		lit.Body = l.lowerChildren(body)
		return lit
	}
	lit.Body = []Node{l.returnOf(body, body)}
	return lit
}

func (l *lowerer) returnOf(stmt, arg *sitter.Node) *Return {
	ret := &Return{Position: position(stmt)}
	if arg == nil {
		return ret
	}

	inner := arg
	for inner.Type() == "parenthesized_expression" && inner.NamedChildCount() > 0 {
		inner = inner.NamedChild(0)
	}
	if inner.Type() == "identifier" {
		ret.Ident = l.text(inner)
		return ret
	}

	lowered := l.lower(inner)
	if len(lowered) == 1 {
		switch lowered[0].(type) {
		case *Element, *Fragment:
			ret.Value = lowered[0]
			return ret
		}
	}
	ret.Body = lowered
	return ret
}

func (l *lowerer) call(n *sitter.Node) *Call {
	fn := n.ChildByFieldName("function")
	return &Call{
		Position: position(n),
		Callee:   l.dotted(fn),
		Func:     l.lower(fn),
		Args:     l.lowerChildren(n.ChildByFieldName("arguments")),
	}
}

func (l *lowerer) element(n *sitter.Node) Node {
	open := n.ChildByFieldName("open_tag")
	if open == nil && n.NamedChildCount() > 0 {
		open = n.NamedChild(0)
	}

	var name *sitter.Node
	if open != nil {
		name = open.ChildByFieldName("name")
	}
	if name == nil {
		return &Fragment{Position: position(n), Body: l.lowerChildren(n)}
	}
	return &Element{
		Position: position(n),
		Name:     l.text(name),
		Tag:      l.leftmost(name),
		Body:     l.lowerChildren(n),
	}
}

// dotted renders an identifier or a chain of property accesses as
// `a.b.c`. Any other expression yields "".
func (l *lowerer) dotted(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier", "property_identifier", "type_identifier", "nested_identifier":
		return l.text(n)
	case "member_expression":
		object := l.dotted(n.ChildByFieldName("object"))
		property := n.ChildByFieldName("property")
		if object == "" || property == nil {
			return ""
		}
		return object + "." + l.text(property)
	}
	return ""
}

// leftmost returns the first identifier of a JSX tag name. Namespaced
// names such as `svg:rect` are intrinsic and yield "".
func (l *lowerer) leftmost(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier", "jsx_identifier", "property_identifier", "type_identifier":
		return l.text(n)
	case "jsx_namespace_name":
		return ""
	case "member_expression":
		return l.leftmost(n.ChildByFieldName("object"))
	}
	if n.NamedChildCount() > 0 {
		return l.leftmost(n.NamedChild(0))
	}
	return l.text(n)
}
