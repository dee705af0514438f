package graph

import (
	"math"

	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/render"
	"github.com/vecedit/vecedit/internal/texture"
)

const (
	HandleLineStart = "p1"
	HandleLineEnd   = "p2"
)

// Line is a zero-height box: Width is the length and Rotation the
// direction. X/Y is the start point before rotation about the center.
type Line struct {
	base
}

func NewLine(attrs Attrs, paint Paint) *Line {
	attrs.Height = 0
	return &Line{base: newBase(TypeLine, attrs, paint)}
}

// LineAttrsFromRect converts a signed drag rect (start at X/Y, end at
// X+Width/Y+Height) into line attributes.
func LineAttrsFromRect(r geo.Rect) Attrs {
	rotation := geo.NormalizeRadian(math.Atan2(r.Height, r.Width))
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	p := geo.TransformRotate(r.X, r.Y, -rotation, cx, cy)
	return Attrs{
		X:        p.X,
		Y:        p.Y,
		Width:    math.Sqrt(r.Width*r.Width + r.Height*r.Height),
		Height:   0,
		Rotation: rotation,
	}
}

// LineAttrsFromPoints is LineAttrsFromRect for two endpoints.
func LineAttrsFromPoints(start, end geo.Point) Attrs {
	return LineAttrsFromRect(geo.RectFromPoints(start, end))
}

// SetAttrs keeps the line flat.
func (g *Line) SetAttrs(a Attrs) {
	a.Height = 0
	g.attrs = a
}

// Endpoints returns the scene positions of the start and end.
func (g *Line) Endpoints() (geo.Point, geo.Point) {
	a := g.attrs
	cx, cy := a.X+a.Width/2, a.Y
	return geo.TransformRotate(a.X, a.Y, a.Rotation, cx, cy),
		geo.TransformRotate(a.X+a.Width, a.Y, a.Rotation, cx, cy)
}

func (g *Line) Draw(s render.Surface) {
	g.withTransform(s, func() {
		s.BeginPath()
		s.MoveTo(g.attrs.X, g.attrs.Y)
		s.LineTo(g.attrs.X+g.attrs.Width, g.attrs.Y)
		if g.paint.StrokeWidth <= 0 {
			return
		}
		s.SetLineWidth(g.paint.StrokeWidth)
		for _, t := range g.paint.Stroke {
			if t.Type == texture.TypeSolid {
				s.SetStrokeStyle(t.CSS())
				s.Stroke()
			}
		}
	})
}

func (g *Line) DrawOutline(s render.Surface, css string, width float64) {
	g.withTransform(s, func() {
		s.BeginPath()
		s.MoveTo(g.attrs.X, g.attrs.Y)
		s.LineTo(g.attrs.X+g.attrs.Width, g.attrs.Y)
		s.SetStrokeStyle(css)
		s.SetLineWidth(width)
		s.Stroke()
	})
}

func (g *Line) HitTest(x, y, tol float64) bool {
	p1, p2 := g.Endpoints()
	return geo.DistanceToSegment(geo.Point{X: x, Y: y}, p1, p2) <= tol+math.Max(0, g.paint.StrokeWidth)/2
}

// GetControlHandles returns the two endpoint grips when the line is the
// only selected graph.
func (g *Line) GetControlHandles(zoom float64, selected bool) []*ControlHandle {
	if !selected {
		return nil
	}
	p1, p2 := g.Endpoints()
	return []*ControlHandle{
		NewEndpointHandle(HandleLineStart, p1, DefaultHandleStyle),
		NewEndpointHandle(HandleLineEnd, p2, DefaultHandleStyle),
	}
}

// DragHandle moves one endpoint to p, keeping the other fixed.
func (g *Line) DragHandle(name string, p geo.Point) bool {
	p1, p2 := g.Endpoints()
	switch name {
	case HandleLineStart:
		p1 = p
	case HandleLineEnd:
		p2 = p
	default:
		return false
	}
	g.SetAttrs(LineAttrsFromPoints(p1, p2))
	return true
}
