package extractor

import (
	"strings"

	"github.com/simonhull/firebird-suite/nightjar/pkg/syntax"
)

// DefaultRootCall is the call that mounts an application.
const DefaultRootCall = "ReactDOM.render"

// Candidate is a declaration a pattern recognized as a component.
type Candidate struct {
	Name     string
	Position syntax.Position
	Body     []syntax.Node
}

// Pattern recognizes one syntactic form of component declaration.
type Pattern struct {
	ID          string
	Kind        Kind
	Description string
	Examples    []string
	Match       func(syntax.Node) (Candidate, bool)
}

// DefaultPatterns returns the class, function, arrow and root-call
// patterns. rootCall is the dotted callee that marks the application root.
func DefaultPatterns(rootCall string) []Pattern {
	if rootCall == "" {
		rootCall = DefaultRootCall
	}

	return []Pattern{
		{
			ID:          "class-component",
			Kind:        KindClass,
			Description: "Classes extending Component or a namespaced Component",
			Examples:    []string{"class App extends Component", "class App extends React.Component"},
			Match: func(n syntax.Node) (Candidate, bool) {
				c, ok := n.(*syntax.ClassDecl)
				if !ok || c.Name == "" || !isComponentClass(c.Super) {
					return Candidate{}, false
				}
				return Candidate{Name: c.Name, Position: c.Position, Body: c.Body}, true
			},
		},
		{
			ID:          "function-component",
			Kind:        KindFunction,
			Description: "Function declarations returning markup or children",
			Examples:    []string{"function App() { return <div /> }"},
			Match: func(n syntax.Node) (Candidate, bool) {
				f, ok := n.(*syntax.FuncDecl)
				if !ok || f.Name == "" || !returnsMarkup(f.Body) {
					return Candidate{}, false
				}
				return Candidate{Name: f.Name, Position: f.Position, Body: f.Body}, true
			},
		},
		{
			ID:          "arrow-component",
			Kind:        KindArrow,
			Description: "Variables initialized with an arrow function returning markup",
			Examples:    []string{"const App = () => <div />", "const App = () => { return <></> }"},
			Match: func(n syntax.Node) (Candidate, bool) {
				v, ok := n.(*syntax.VarDecl)
				if !ok || v.Name == "" || len(v.Value) != 1 {
					return Candidate{}, false
				}
				lit, ok := v.Value[0].(*syntax.FuncLit)
				if !ok || !lit.Arrow || !returnsMarkup(lit.Body) {
					return Candidate{}, false
				}
				return Candidate{Name: v.Name, Position: v.Position, Body: lit.Body}, true
			},
		},
		{
			ID:          "root-call",
			Kind:        KindRootCall,
			Description: "The call mounting the application root",
			Examples:    []string{rootCall + "(<App />, root)"},
			Match: func(n syntax.Node) (Candidate, bool) {
				c, ok := n.(*syntax.Call)
				if !ok || c.Callee != rootCall {
					return Candidate{}, false
				}
				return Candidate{Name: rootCall, Position: c.Position, Body: c.Args}, true
			},
		},
	}
}

func isComponentClass(super string) bool {
	return super == "Component" || strings.HasSuffix(super, ".Component")
}

// returnsMarkup reports whether a function body has a return of an
// element, a fragment, or `children`. Nested functions and classes are not
// searched.
func returnsMarkup(body []syntax.Node) bool {
	found := false
	syntax.Inspect(body, func(n syntax.Node) bool {
		if found {
			return false
		}
		switch r := n.(type) {
		case *syntax.FuncLit, *syntax.FuncDecl, *syntax.ClassDecl:
			return false
		case *syntax.Return:
			if r.Value != nil || r.Ident == "children" {
				found = true
			}
			return false
		}
		return true
	})
	return found
}

// Registry holds the patterns an extractor tries, in registration order.
type Registry struct {
	patterns []Pattern
}

// NewRegistry creates a Registry with the default patterns.
func NewRegistry(rootCall string) *Registry {
	r := &Registry{patterns: make([]Pattern, 0, 4)}
	for _, p := range DefaultPatterns(rootCall) {
		r.Register(p)
	}
	return r
}

// Register adds a pattern to the registry
func (r *Registry) Register(p Pattern) {
	r.patterns = append(r.patterns, p)
}

// Patterns returns all registered patterns
func (r *Registry) Patterns() []Pattern {
	return r.patterns
}

// Match returns the first pattern recognizing n.
func (r *Registry) Match(n syntax.Node) (Pattern, Candidate, bool) {
	for _, p := range r.patterns {
		if c, ok := p.Match(n); ok {
			return p, c, true
		}
	}
	return Pattern{}, Candidate{}, false
}
