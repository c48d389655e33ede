package accessibility

import "fmt"

// Match describes an element located by Find. It is a shallow view: only the
// element's own attributes, no subtree.
type Match struct {
	Role     string `json:"role"`
	Title    string `json:"title"`
	Value    any    `json:"value"`
	Position *Point `json:"position,omitempty"`
	Size     *Size  `json:"size,omitempty"`
}

// Criteria selects elements for Find. Empty fields match anything; Value is
// compared against the element value's string form.
type Criteria struct {
	Role  string
	Title string
	Value string
}

// Find walks the raw platform tree depth-first and returns the first element
// matching the criteria. The walk reads attributes directly through the
// accessor without building a snapshot.
func (b *Builder) Find(root Node, c Criteria) (Match, bool) {
	return b.find(root, c)
}

func (b *Builder) find(node Node, c Criteria) (Match, bool) {
	if b.matches(node, c) {
		return b.describe(node), true
	}
	children, ok := b.acc.Children(node)
	if !ok {
		return Match{}, false
	}
	for _, child := range children {
		if m, ok := b.find(child, c); ok {
			return m, true
		}
	}
	return Match{}, false
}

func (b *Builder) matches(node Node, c Criteria) bool {
	if c.Role != "" {
		v, ok := b.acc.Get(node, AttrRole)
		if !ok {
			return false
		}
		if s, _ := stringFrom(v); s != c.Role {
			return false
		}
	}
	if c.Title != "" {
		v, ok := b.acc.Get(node, AttrTitle)
		if !ok {
			return false
		}
		if s, _ := stringFrom(v); s != c.Title {
			return false
		}
	}
	if c.Value != "" {
		v, ok := b.acc.Get(node, AttrValue)
		if !ok {
			return false
		}
		if fmt.Sprint(b.nativeValue(v, Point{})) != c.Value {
			return false
		}
	}
	return true
}

func (b *Builder) describe(node Node) Match {
	var m Match
	if v, ok := b.acc.Get(node, AttrRole); ok {
		m.Role, _ = stringFrom(v)
	}
	if v, ok := b.acc.Get(node, AttrTitle); ok {
		m.Title, _ = stringFrom(v)
	}
	if v, ok := b.acc.Get(node, AttrValue); ok {
		m.Value = b.nativeValue(v, Point{})
		if nested, ok := m.Value.(*UINode); ok {
			m.Value = ToRecord(nested)
		}
	}
	if v, ok := b.acc.Get(node, AttrPosition); ok && v.Kind == KindPoint {
		p := v.Point
		m.Position = &p
	}
	if v, ok := b.acc.Get(node, AttrSize); ok && v.Kind == KindSize {
		s := v.Size
		m.Size = &s
	}
	return m
}
