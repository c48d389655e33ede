package accessibility

import (
	"log/slog"
	"strings"
)

// UINode is one normalized element of a UI snapshot. A node exclusively owns
// its children; the only non-owning reference is Value, which may hold a
// shallow *UINode when the platform reports an element-typed value.
type UINode struct {
	Role            string
	Name            string
	Description     string
	RoleDescription string
	Enabled         bool

	// Value is nil, string, float64, bool, []any, or *UINode.
	Value any

	// AbsolutePosition is the raw coordinate reported by the platform.
	// Position is relative to the origin of the nearest enclosing window.
	AbsolutePosition *Point
	Position         *Point
	Size             *Size
	BBox             *Rect
	VisibleBBox      *Rect

	// Center is the absolute click target for the element. It is computed
	// for callers and not part of the serialized record.
	Center *Point

	// Identifier hashes the node's own geometry, enabled state and role.
	// ContentIdentifier hashes the subtree; empty for leaves.
	Identifier        string
	ContentIdentifier string

	Children []*UINode
}

// Builder constructs UINode trees from platform nodes through an Accessor.
// A Builder holds no per-snapshot state; every Build walks the platform
// afresh.
type Builder struct {
	acc    Accessor
	logger *slog.Logger
}

// NewBuilder returns a Builder reading through acc.
func NewBuilder(acc Accessor, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{acc: acc, logger: logger}
}

type buildOptions struct {
	maxDepth int
	limited  bool
}

// BuildOption configures a single Build call.
type BuildOption func(*buildOptions)

// WithMaxDepth limits recursion. Depth 0 populates the root's own fields but
// expands no children; depth n stops expanding n levels down. Without this
// option the walk is unlimited and the caller is expected to guard against
// pathological trees.
func WithMaxDepth(n int) BuildOption {
	return func(o *buildOptions) {
		o.maxDepth = n
		o.limited = true
	}
}

// Build walks the platform tree rooted at root and returns its normalized
// snapshot. Missing attributes degrade to defaults and never fail the build.
func (b *Builder) Build(root Node, opts ...BuildOption) *UINode {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	return b.build(root, Point{}, o.maxDepth, o.limited, nil)
}

func (b *Builder) build(node Node, offset Point, depth int, limited bool, parentVisible *Rect) *UINode {
	n := &UINode{Role: NoRole}

	if v, ok := b.acc.Get(node, AttrRole); ok {
		if s, ok := stringFrom(v); ok {
			n.Role = s
		}
	}
	if v, ok := b.acc.Get(node, AttrTitle); ok {
		if s, ok := stringFrom(v); ok {
			n.Name = strings.ReplaceAll(s, " ", "_")
		}
	}
	if v, ok := b.acc.Get(node, AttrEnabled); ok && v.Kind == KindBool {
		n.Enabled = v.Bool
	}

	var abs *Point
	var size *Size
	if v, ok := b.acc.Get(node, AttrPosition); ok && v.Kind == KindPoint {
		p := v.Point
		abs = &p
	}
	if v, ok := b.acc.Get(node, AttrSize); ok && v.Kind == KindSize {
		s := v.Size
		size = &s
	}

	// A window resets the coordinate origin for itself and its subtree,
	// using its raw position before any adjustment.
	if n.Role == RoleWindow && abs != nil {
		offset = *abs
	}

	g := computeGeometry(abs, size, offset, parentVisible)
	n.AbsolutePosition = g.absolute
	n.Position = g.position
	n.Size = g.size
	n.BBox = g.bbox
	n.VisibleBBox = g.visibleBBox
	n.Center = g.center
	if abs == nil || size == nil {
		b.logger.Debug("element missing geometry", "role", n.Role, "name", n.Name)
	}

	if v, ok := b.acc.Get(node, AttrDescription); ok {
		if s, ok := stringFrom(v); ok {
			n.Description = s
		}
	}
	if v, ok := b.acc.Get(node, AttrRoleDescription); ok {
		if s, ok := stringFrom(v); ok {
			n.RoleDescription = s
		}
	}
	if v, ok := b.acc.Get(node, AttrValue); ok {
		n.Value = b.nativeValue(v, offset)
	}

	if !limited || depth > 0 {
		childDepth := depth - 1
		if children, ok := b.acc.Children(node); ok {
			n.Children = make([]*UINode, 0, len(children))
			for _, child := range children {
				n.Children = append(n.Children, b.build(child, offset, childDepth, limited, n.VisibleBBox))
			}
		}
	}

	n.Identifier = structuralHash(n)
	n.ContentIdentifier = contentHash(n.Children)
	return n
}

// nativeValue converts an accessor value into the representation stored on a
// UINode. An element-typed value becomes a shallow node: its own fields are
// populated but its children are never expanded, which also breaks any
// self-referential value cycle.
func (b *Builder) nativeValue(v Value, offset Point) any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindPoint:
		return []any{v.Point.X, v.Point.Y}
	case KindSize:
		return []any{v.Size.Width, v.Size.Height}
	case KindList:
		items := make([]any, 0, len(v.List))
		for _, item := range v.List {
			items = append(items, b.nativeValue(item, offset))
		}
		return items
	case KindElement:
		return b.build(v.Element, offset, 0, true, nil)
	}
	return nil
}
