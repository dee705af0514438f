package graph

import (
	"math"

	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/render"
	"github.com/vecedit/vecedit/internal/texture"
)

// Rect is a rectangle, also used for handle visuals.
type Rect struct {
	base
}

func NewRect(attrs Attrs, paint Paint) *Rect {
	return &Rect{base: newBase(TypeRect, attrs, paint)}
}

func (g *Rect) Draw(s render.Surface) {
	g.withTransform(s, func() {
		r := g.attrs.Rect()
		s.BeginPath()
		s.Rect(r.X, r.Y, r.Width, r.Height)
		g.paintPath(s, r)
	})
}

func (g *Rect) DrawOutline(s render.Surface, css string, width float64) {
	g.withTransform(s, func() {
		r := g.attrs.Rect()
		s.BeginPath()
		s.Rect(r.X, r.Y, r.Width, r.Height)
		s.SetStrokeStyle(css)
		s.SetLineWidth(width)
		s.Stroke()
	})
}

// HitTest treats negative sizes as empty, so a collapsed handle is only
// reachable through the tolerance band.
func (g *Rect) HitTest(x, y, tol float64) bool {
	rr := g.attrs.RectWithRotation()
	rr.Width = math.Max(0, rr.Width)
	rr.Height = math.Max(0, rr.Height)
	return rr.ContainsPoint(geo.Point{X: x, Y: y}, g.strokeTol(tol))
}

// Ellipse is inscribed in its box.
type Ellipse struct {
	base
}

func NewEllipse(attrs Attrs, paint Paint) *Ellipse {
	return &Ellipse{base: newBase(TypeEllipse, attrs, paint)}
}

func (g *Ellipse) path(s render.Surface) {
	cx, cy := g.attrs.Rect().Center()
	s.BeginPath()
	s.Ellipse(cx, cy, math.Abs(g.attrs.Width)/2, math.Abs(g.attrs.Height)/2)
}

func (g *Ellipse) Draw(s render.Surface) {
	g.withTransform(s, func() {
		g.path(s)
		g.paintPath(s, g.attrs.Rect())
	})
}

func (g *Ellipse) DrawOutline(s render.Surface, css string, width float64) {
	g.withTransform(s, func() {
		g.path(s)
		s.SetStrokeStyle(css)
		s.SetLineWidth(width)
		s.Stroke()
	})
}

func (g *Ellipse) HitTest(x, y, tol float64) bool {
	cx, cy := g.attrs.Rect().Center()
	p := geo.TransformRotate(x, y, -g.attrs.Rotation, cx, cy)
	t := g.strokeTol(tol)
	rx := math.Abs(g.attrs.Width)/2 + t
	ry := math.Abs(g.attrs.Height)/2 + t
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx, dy := (p.X-cx)/rx, (p.Y-cy)/ry
	return dx*dx+dy*dy <= 1
}

// Text is a single-line label whose box is maintained by its creator.
type Text struct {
	base
	Content  string
	FontSize float64
}

func NewText(attrs Attrs, paint Paint, content string, fontSize float64) *Text {
	return &Text{base: newBase(TypeText, attrs, paint), Content: content, FontSize: fontSize}
}

func (g *Text) Draw(s render.Surface) {
	g.withTransform(s, func() {
		css := texture.FirstSolidCSS(g.paint.Fill)
		if css == "" {
			css = "rgba(0,0,0,1)"
		}
		s.SetFillStyle(css)
		s.FillText(g.Content, g.attrs.X, g.attrs.Y+g.FontSize, g.FontSize)
	})
}

func (g *Text) DrawOutline(s render.Surface, css string, width float64) {
	g.withTransform(s, func() {
		r := g.attrs.Rect()
		s.BeginPath()
		s.Rect(r.X, r.Y, r.Width, r.Height)
		s.SetStrokeStyle(css)
		s.SetLineWidth(width)
		s.Stroke()
	})
}

func (g *Text) HitTest(x, y, tol float64) bool {
	return g.attrs.RectWithRotation().ContainsPoint(geo.Point{X: x, Y: y}, tol)
}

// Image shows a bitmap stretched over its box.
type Image struct {
	base
	Src string
}

func NewImage(attrs Attrs, src string) *Image {
	return &Image{base: newBase(TypeImage, attrs, Paint{}), Src: src}
}

func (g *Image) Draw(s render.Surface) {
	g.withTransform(s, func() {
		r := g.attrs.Rect()
		s.DrawImage(g.Src, r.X, r.Y, r.Width, r.Height)
	})
}

func (g *Image) DrawOutline(s render.Surface, css string, width float64) {
	g.withTransform(s, func() {
		r := g.attrs.Rect()
		s.BeginPath()
		s.Rect(r.X, r.Y, r.Width, r.Height)
		s.SetStrokeStyle(css)
		s.SetLineWidth(width)
		s.Stroke()
	})
}

func (g *Image) HitTest(x, y, tol float64) bool {
	return g.attrs.RectWithRotation().ContainsPoint(geo.Point{X: x, Y: y}, tol)
}
