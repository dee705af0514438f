package geo

import "math"

// Point is a 2D position in either scene or viewport space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect represents an axis-aligned box. Width and Height may be negative
// while a drag is in progress; call Normalize before treating it as a box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectWithRotation is a Rect rotated by Rotation radians around its center.
type RectWithRotation struct {
	Rect
	Rotation float64 `json:"rotation"`
}

// CornerPoints holds the four corners of a (possibly rotated) rect.
type CornerPoints struct {
	NW, NE, SE, SW Point
}

// MidPoints holds the four edge midpoints of a (possibly rotated) rect.
type MidPoints struct {
	N, E, S, W Point
}

// RectFromPoints returns the signed rect spanning from start to end.
func RectFromPoints(start, end Point) Rect {
	return Rect{
		X:      start.X,
		Y:      start.Y,
		Width:  end.X - start.X,
		Height: end.Y - start.Y,
	}
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// IsDegenerate reports whether the rect spans no distance at all.
func (r Rect) IsDegenerate() bool {
	return r.Width == 0 && r.Height == 0
}

// HasNaN reports whether any component is NaN.
func (r Rect) HasNaN() bool {
	return math.IsNaN(r.X) || math.IsNaN(r.Y) || math.IsNaN(r.Width) || math.IsNaN(r.Height)
}

// Normalize flips negative widths and heights so the rect has its origin at
// the top-left corner.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// CenterPoint is Center as a Point.
func (r Rect) CenterPoint() Point {
	cx, cy := r.Center()
	return Point{X: cx, Y: cy}
}

// Matrix returns the transform that rotates the rect's local coordinates
// around its center.
func (r RectWithRotation) Matrix() Matrix2D {
	if r.Rotation == 0 {
		return Identity()
	}
	cx, cy := r.Center()
	return RotateAbout(r.Rotation, cx, cy)
}

// ContainsPoint reports whether p lies inside the rotated rect, grown by tol.
func (r RectWithRotation) ContainsPoint(p Point, tol float64) bool {
	cx, cy := r.Center()
	local := TransformRotate(p.X, p.Y, -r.Rotation, cx, cy)
	n := r.Rect.Normalize()
	return local.X >= n.X-tol && local.X <= n.X+n.Width+tol &&
		local.Y >= n.Y-tol && local.Y <= n.Y+n.Height+tol
}

// BBox returns the axis-aligned bounding box of the rotated rect.
func (r RectWithRotation) BBox() Rect {
	c := RectToPoints(r)
	return BBoxOfPoints([]Point{c.NW, c.NE, c.SE, c.SW})
}

// RectToPoints returns the rotated corners of r.
func RectToPoints(r RectWithRotation) CornerPoints {
	m := r.Matrix()
	return CornerPoints{
		NW: m.Apply(Point{r.X, r.Y}),
		NE: m.Apply(Point{r.X + r.Width, r.Y}),
		SE: m.Apply(Point{r.X + r.Width, r.Y + r.Height}),
		SW: m.Apply(Point{r.X, r.Y + r.Height}),
	}
}

// RectToMidPoints returns the rotated edge midpoints of r.
func RectToMidPoints(r RectWithRotation) MidPoints {
	c := RectToPoints(r)
	return MidPoints{
		N: Midpoint(c.NW, c.NE),
		E: Midpoint(c.NE, c.SE),
		S: Midpoint(c.SE, c.SW),
		W: Midpoint(c.SW, c.NW),
	}
}

// OffsetRect grows r outward by the given distances, keeping its rotation.
func OffsetRect(r RectWithRotation, top, right, bottom, left float64) RectWithRotation {
	return RectWithRotation{
		Rect: Rect{
			X:      r.X - left,
			Y:      r.Y - top,
			Width:  r.Width + left + right,
			Height: r.Height + top + bottom,
		},
		Rotation: r.Rotation,
	}
}

// BBoxOfPoints returns the axis-aligned bounding box of pts.
func BBoxOfPoints(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
