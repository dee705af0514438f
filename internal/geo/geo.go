package geo

import "math"

const (
	DoublePI = math.Pi * 2

	// polarSnapStep is the angle increment used when shift constrains a drag.
	polarSnapStep = math.Pi / 4

	snapEpsilon = 1e-9
)

// TransformRotate rotates (x, y) by radian around (cx, cy).
func TransformRotate(x, y, radian, cx, cy float64) Point {
	if radian == 0 {
		return Point{X: x, Y: y}
	}
	cos := math.Cos(radian)
	sin := math.Sin(radian)
	dx, dy := x-cx, y-cy
	return Point{
		X: dx*cos - dy*sin + cx,
		Y: dx*sin + dy*cos + cy,
	}
}

// NormalizeRadian maps any angle into [0, 2π).
func NormalizeRadian(radian float64) float64 {
	r := math.Mod(radian, DoublePI)
	if r < 0 {
		r += DoublePI
	}
	if r >= DoublePI {
		r = 0
	}
	return r
}

// RadianToDegree converts radians to degrees.
func RadianToDegree(radian float64) float64 {
	return radian * 180 / math.Pi
}

// NormalizeDegree maps any angle in degrees into [0, 360).
func NormalizeDegree(degree float64) float64 {
	d := math.Mod(degree, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// SweepAngle returns the signed angle from vector (center→from) to
// (center→to).
func SweepAngle(center, from, to Point) float64 {
	a := math.Atan2(from.Y-center.Y, from.X-center.X)
	b := math.Atan2(to.Y-center.Y, to.X-center.X)
	return b - a
}

// DistanceToSegment returns the distance from p to the segment ab.
func DistanceToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = max(0, min(1, t))
	return Distance(p, Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// AdjustSizeToKeepPolarSnap rotates the rect's diagonal onto the nearest
// multiple of 45° while keeping its length.
func AdjustSizeToKeepPolarSnap(r Rect) Rect {
	length := math.Hypot(r.Width, r.Height)
	if length == 0 {
		return r
	}
	angle := math.Atan2(r.Height, r.Width)
	snapped := math.Round(angle/polarSnapStep) * polarSnapStep
	r.Width = snapZero(math.Cos(snapped) * length)
	r.Height = snapZero(math.Sin(snapped) * length)
	return r
}

// AdjustSizeToKeepSquare makes |width| == |height| using the larger side,
// keeping the drag direction.
func AdjustSizeToKeepSquare(r Rect) Rect {
	size := max(math.Abs(r.Width), math.Abs(r.Height))
	r.Width = math.Copysign(size, r.Width)
	r.Height = math.Copysign(size, r.Height)
	return r
}

func snapZero(v float64) float64 {
	if math.Abs(v) < snapEpsilon {
		return 0
	}
	return v
}
