// Package accessibility builds normalized, serializable snapshots of a
// platform UI hierarchy. The platform itself is reached only through the
// Accessor contract, so any native layer (or a test double) can be plugged in.
package accessibility

// Node is an opaque platform handle for one element of a UI hierarchy.
// Accessor implementations assert it back to their own concrete type.
type Node = any

// Attribute names understood by accessors. These follow the AX naming
// convention of the macOS accessibility API, which the contract is modeled on.
const (
	AttrRole            = "AXRole"
	AttrTitle           = "AXTitle"
	AttrValue           = "AXValue"
	AttrDescription     = "AXDescription"
	AttrRoleDescription = "AXRoleDescription"
	AttrEnabled         = "AXEnabled"
	AttrPosition        = "AXPosition"
	AttrSize            = "AXSize"
	AttrChildren        = "AXChildren"
	AttrVisibleChildren = "AXVisibleChildren"
	AttrWindows         = "AXWindows"
)

// RoleWindow marks a node as a top-level window. A window establishes the
// coordinate origin for itself and all of its descendants.
const RoleWindow = "AXWindow"

// NoRole is reported for nodes whose platform role is absent.
const NoRole = "No role"

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindPoint
	KindSize
	KindList
	KindElement
)

// Value is a typed attribute value returned by an Accessor. Exactly one field
// matching Kind is meaningful.
type Value struct {
	Kind    Kind
	Str     string
	Num     float64
	Bool    bool
	Point   Point
	Size    Size
	List    []Value
	Element Node
}

// StringValue wraps a string attribute value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// NumberValue wraps a numeric attribute value.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// BoolValue wraps a boolean attribute value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// PointValue wraps a point attribute value.
func PointValue(x, y float64) Value {
	return Value{Kind: KindPoint, Point: Point{X: x, Y: y}}
}

// SizeValue wraps a size attribute value.
func SizeValue(w, h float64) Value {
	return Value{Kind: KindSize, Size: Size{Width: w, Height: h}}
}

// ListValue wraps an ordered list of values.
func ListValue(items ...Value) Value { return Value{Kind: KindList, List: items} }

// ElementValue wraps a nested platform node. Element values are built into
// shallow nodes by the tree builder and are never depth-expanded.
func ElementValue(n Node) Value { return Value{Kind: KindElement, Element: n} }

// Accessor retrieves attribute values from opaque platform nodes.
//
// Get returns the value for attr, or ok=false when the platform has no value.
// A missing attribute is a valid state, never an error. Implementations must
// also report platform-level failures (element invalidated mid-walk) as
// ok=false; the builder degrades instead of aborting the snapshot.
//
// Children returns the node's children in platform order. Implementations
// must try the primary children attribute first and fall back to the
// visible-children attribute when the primary is absent, never both.
type Accessor interface {
	Get(node Node, attr string) (Value, bool)
	Children(node Node) ([]Node, bool)
}

// stringFrom extracts a usable string from a value. List values degrade to
// their first string item, matching how the platform occasionally reports
// titles as one-element arrays.
func stringFrom(v Value) (string, bool) {
	switch v.Kind {
	case KindString:
		return v.Str, true
	case KindList:
		if len(v.List) > 0 && v.List[0].Kind == KindString {
			return v.List[0].Str, true
		}
	}
	return "", false
}
