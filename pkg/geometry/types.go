// Package geometry provides basic geometric types used throughout the application.
package geometry

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the number of pixels covered by the rectangle.
func (r RectInt) Area() int {
	return r.Width * r.Height
}

// TopLeft returns the top-left corner.
func (r RectInt) TopLeft() PointInt {
	return PointInt{X: r.X, Y: r.Y}
}

// Contains returns true if the point is inside the rectangle.
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Index returns the row-major offset of an absolute point inside the
// rectangle. The point must be contained in the rectangle.
func (r RectInt) Index(x, y int) int {
	return (y-r.Y)*r.Width + (x - r.X)
}

// Extent accumulates a tight axis-aligned bounding box over integer points.
// The zero value is not ready for use; call NewExtent.
type Extent struct {
	XMin, XMax int
	YMin, YMax int
}

// NewExtent returns an empty extent that the first included point collapses onto.
func NewExtent() Extent {
	const maxInt = int(^uint(0) >> 1)
	return Extent{XMin: maxInt, XMax: -maxInt - 1, YMin: maxInt, YMax: -maxInt - 1}
}

// Include grows the extent to cover the point.
func (e *Extent) Include(x, y int) {
	if x < e.XMin {
		e.XMin = x
	}
	if x > e.XMax {
		e.XMax = x
	}
	if y < e.YMin {
		e.YMin = y
	}
	if y > e.YMax {
		e.YMax = y
	}
}

// Empty returns true if no point has been included.
func (e Extent) Empty() bool {
	return e.XMax < e.XMin
}

// Rect returns the extent as a rectangle. Meaningless for an empty extent.
func (e Extent) Rect() RectInt {
	return RectInt{
		X:      e.XMin,
		Y:      e.YMin,
		Width:  e.XMax - e.XMin + 1,
		Height: e.YMax - e.YMin + 1,
	}
}
