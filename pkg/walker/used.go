package walker

// Usage identifies one component reached from the entry point.
type Usage struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Edge is a render relationship the walker followed.
type Edge struct {
	From Usage `json:"from"`
	To   Usage `json:"to"`
}

// UsedSet accumulates reached components in discovery order.
type UsedSet struct {
	items []Usage
	index map[Usage]int
	edges []Edge
	seen  map[Edge]bool
}

// NewUsedSet creates an empty UsedSet
func NewUsedSet() *UsedSet {
	return &UsedSet{
		index: make(map[Usage]int),
		seen:  make(map[Edge]bool),
	}
}

// Add records u and reports whether it was new.
func (s *UsedSet) Add(u Usage) bool {
	if _, ok := s.index[u]; ok {
		return false
	}
	s.index[u] = len(s.items)
	s.items = append(s.items, u)
	return true
}

// Link records an edge between two used components. Duplicate edges are
// dropped.
func (s *UsedSet) Link(from, to Usage) {
	e := Edge{From: from, To: to}
	if s.seen[e] {
		return
	}
	s.seen[e] = true
	s.edges = append(s.edges, e)
}

// Contains reports whether the component name declared in path was reached.
func (s *UsedSet) Contains(name, path string) bool {
	_, ok := s.index[Usage{Name: name, Path: path}]
	return ok
}

// Len returns the number of used components.
func (s *UsedSet) Len() int {
	return len(s.items)
}

// Items returns the used components in the order they were reached.
func (s *UsedSet) Items() []Usage {
	out := make([]Usage, len(s.items))
	copy(out, s.items)
	return out
}

// Edges returns the followed edges in the order they were followed.
func (s *UsedSet) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}
