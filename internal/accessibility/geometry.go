package accessibility

// Point is a coordinate in screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the width and height of an element.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned integer bounding box [x0, y0, x1, y1].
// It marshals to a JSON array.
type Rect [4]int

// geometry holds the computed spatial fields of a node. Pointer fields are
// nil when the platform reported no position or size.
type geometry struct {
	absolute    *Point
	position    *Point
	size        *Size
	bbox        *Rect
	visibleBBox *Rect
	center      *Point
}

// computeGeometry derives the spatial fields of a node from its raw absolute
// position and size, the offset inherited from the nearest enclosing window,
// and the parent's visible bounding box.
//
// The adjusted position is expressed relative to the window origin and is
// clamped so a negative offset never shifts it (offsets are taken as
// max(0, offset) componentwise). When either position or size is absent all
// derived fields stay nil; the caller still emits the node.
func computeGeometry(abs *Point, size *Size, offset Point, parentVisible *Rect) geometry {
	g := geometry{size: size}
	if abs == nil {
		return g
	}
	g.absolute = &Point{X: abs.X, Y: abs.Y}
	g.position = &Point{
		X: abs.X - max(0, offset.X),
		Y: abs.Y - max(0, offset.Y),
	}
	if size == nil {
		return g
	}

	bbox := Rect{
		int(g.position.X),
		int(g.position.Y),
		int(g.position.X + size.Width),
		int(g.position.Y + size.Height),
	}
	g.bbox = &bbox

	if parentVisible == nil {
		visible := bbox
		g.visibleBBox = &visible
	} else if v, ok := intersect(bbox, *parentVisible); ok {
		g.visibleBBox = &v
	}

	g.center = &Point{
		X: abs.X + offset.X + size.Width/2,
		Y: abs.Y + offset.Y + size.Height/2,
	}
	return g
}

// intersect returns the coordinatewise intersection of two rectangles.
// Disjoint rectangles (separating-axis test on all four edges) yield ok=false
// rather than an empty box.
func intersect(b, p Rect) (Rect, bool) {
	if b[0] > p[2] || b[1] > p[3] || b[2] < p[0] || b[3] < p[1] {
		return Rect{}, false
	}
	return Rect{
		max(b[0], p[0]),
		max(b[1], p[1]),
		min(b[2], p[2]),
		min(b[3], p[3]),
	}, true
}
