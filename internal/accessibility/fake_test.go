package accessibility

// fakeNode and fakeAccessor form a scripted in-memory platform used across
// the package tests.

type fakeNode struct {
	attrs           map[string]Value
	children        []*fakeNode
	visibleChildren []*fakeNode
	// broken simulates a platform failure when fetching children.
	broken bool
}

func elem(role string) *fakeNode {
	return &fakeNode{attrs: map[string]Value{AttrRole: StringValue(role)}}
}

func (f *fakeNode) at(x, y, w, h float64) *fakeNode {
	f.attrs[AttrPosition] = PointValue(x, y)
	f.attrs[AttrSize] = SizeValue(w, h)
	return f
}

func (f *fakeNode) titled(title string) *fakeNode {
	f.attrs[AttrTitle] = StringValue(title)
	return f
}

func (f *fakeNode) enabled() *fakeNode {
	f.attrs[AttrEnabled] = BoolValue(true)
	return f
}

func (f *fakeNode) valued(v Value) *fakeNode {
	f.attrs[AttrValue] = v
	return f
}

func (f *fakeNode) kids(children ...*fakeNode) *fakeNode {
	f.children = children
	return f
}

func (f *fakeNode) visibleKids(children ...*fakeNode) *fakeNode {
	f.visibleChildren = children
	return f
}

type fakeAccessor struct{}

func (fakeAccessor) Get(node Node, attr string) (Value, bool) {
	f := node.(*fakeNode)
	v, ok := f.attrs[attr]
	return v, ok
}

func (fakeAccessor) Children(node Node) ([]Node, bool) {
	f := node.(*fakeNode)
	if f.broken {
		return nil, false
	}
	source := f.children
	if source == nil {
		source = f.visibleChildren
	}
	if source == nil {
		return nil, false
	}
	out := make([]Node, len(source))
	for i, c := range source {
		out[i] = c
	}
	return out, true
}
