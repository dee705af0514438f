// Package graph holds the drawable, transformable shapes of the scene.
package graph

import (
	"math"

	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/render"
	"github.com/vecedit/vecedit/internal/texture"
	"github.com/vecedit/vecedit/internal/typeid"
)

type Type string

const (
	TypeRect    Type = "rect"
	TypeEllipse Type = "ellipse"
	TypeLine    Type = "line"
	TypeText    Type = "text"
	TypeImage   Type = "image"
	TypeGroup   Type = "group"
)

// Attrs is the transformable geometry shared by every graph. X/Y is the
// top-left of the unrotated box; Rotation (radians) turns the box around
// its center.
type Attrs struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// Rect returns the unrotated box.
func (a Attrs) Rect() geo.Rect {
	return geo.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
}

// RectWithRotation returns the rotated box.
func (a Attrs) RectWithRotation() geo.RectWithRotation {
	return geo.RectWithRotation{Rect: a.Rect(), Rotation: a.Rotation}
}

// Normalize flips a negative width or height back to a positive extent
// without moving the box.
func (a Attrs) Normalize() Attrs {
	r := a.Rect().Normalize()
	a.X, a.Y, a.Width, a.Height = r.X, r.Y, r.Width, r.Height
	return a
}

// Paint holds a graph's fill and stroke layers.
type Paint struct {
	Fill        []texture.Texture `json:"fill,omitempty"`
	Stroke      []texture.Texture `json:"stroke,omitempty"`
	StrokeWidth float64           `json:"strokeWidth"`
}

// Clone returns a deep copy.
func (p Paint) Clone() Paint {
	return Paint{Fill: texture.Clone(p.Fill), Stroke: texture.Clone(p.Stroke), StrokeWidth: p.StrokeWidth}
}

// Graph is the capability set every scene shape provides.
type Graph interface {
	ID() string
	Type() Type
	Name() string
	SetName(string)

	Attrs() Attrs
	SetAttrs(Attrs)
	Paint() Paint
	SetPaint(Paint)

	Visible() bool
	SetVisible(bool)
	Locked() bool
	SetLocked(bool)

	// RectWithRotation is the box used for selection and handles.
	RectWithRotation() geo.RectWithRotation
	// BBox is the axis-aligned box of the rotated shape.
	BBox() geo.Rect

	Draw(s render.Surface)
	// DrawOutline strokes the shape's silhouette with css at width.
	DrawOutline(s render.Surface, css string, width float64)
	HitTest(x, y, tol float64) bool
	GetControlHandles(zoom float64, selected bool) []*ControlHandle
}

// HandleDragger is implemented by graphs whose custom handles edit
// geometry directly, e.g. line endpoints.
type HandleDragger interface {
	DragHandle(name string, p geo.Point) bool
}

// base carries the state common to all leaf graphs.
type base struct {
	id      string
	typ     Type
	name    string
	attrs   Attrs
	paint   Paint
	visible bool
	locked  bool
}

func newBase(typ Type, attrs Attrs, paint Paint) base {
	return base{
		id:      typeid.NewGraphID(),
		typ:     typ,
		name:    string(typ),
		attrs:   attrs,
		paint:   paint,
		visible: true,
	}
}

func (b *base) ID() string        { return b.id }
func (b *base) Type() Type        { return b.typ }
func (b *base) Name() string      { return b.name }
func (b *base) SetName(n string)  { b.name = n }
func (b *base) Attrs() Attrs      { return b.attrs }
func (b *base) SetAttrs(a Attrs)  { b.attrs = a }
func (b *base) Paint() Paint      { return b.paint.Clone() }
func (b *base) SetPaint(p Paint)  { b.paint = p.Clone() }
func (b *base) Visible() bool     { return b.visible }
func (b *base) SetVisible(v bool) { b.visible = v }
func (b *base) Locked() bool      { return b.locked }
func (b *base) SetLocked(l bool)  { b.locked = l }
func (b *base) BBox() geo.Rect    { return b.RectWithRotation().BBox() }
func (b *base) RectWithRotation() geo.RectWithRotation {
	return b.attrs.RectWithRotation()
}

func (b *base) GetControlHandles(zoom float64, selected bool) []*ControlHandle {
	return nil
}

// withTransform runs fn with the surface rotated around the box center.
func (b *base) withTransform(s render.Surface, fn func()) {
	s.Save()
	defer s.Restore()
	if b.attrs.Rotation != 0 {
		cx, cy := b.attrs.Rect().Center()
		s.Translate(cx, cy)
		s.Rotate(b.attrs.Rotation)
		s.Translate(-cx, -cy)
	}
	fn()
}

// paintPath fills and strokes the current path with the graph's layers.
func (b *base) paintPath(s render.Surface, r geo.Rect) {
	for _, t := range b.paint.Fill {
		switch t.Type {
		case texture.TypeSolid:
			s.SetFillStyle(t.CSS())
			s.Fill()
		case texture.TypeImage:
			s.DrawImage(t.Src, r.X, r.Y, r.Width, r.Height)
		}
	}
	if b.paint.StrokeWidth <= 0 {
		return
	}
	s.SetLineWidth(b.paint.StrokeWidth)
	for _, t := range b.paint.Stroke {
		if t.Type != texture.TypeSolid {
			continue
		}
		s.SetStrokeStyle(t.CSS())
		s.Stroke()
	}
}

// strokeTol widens hit tolerance by half the stroke so the visible edge
// counts as part of the shape.
func (b *base) strokeTol(tol float64) float64 {
	if len(b.paint.Stroke) == 0 {
		return tol
	}
	return tol + math.Max(0, b.paint.StrokeWidth)/2
}
