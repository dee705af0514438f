package graph

import (
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/render"
	"github.com/vecedit/vecedit/internal/typeid"
)

// Group owns an ordered list of children. Its geometry is derived from
// the children and it is never rotated itself.
type Group struct {
	id       string
	name     string
	visible  bool
	locked   bool
	children []Graph
}

func NewGroup(children []Graph) *Group {
	return &Group{
		id:       typeid.NewGroupID(),
		name:     string(TypeGroup),
		visible:  true,
		children: append([]Graph(nil), children...),
	}
}

func (g *Group) ID() string        { return g.id }
func (g *Group) Type() Type        { return TypeGroup }
func (g *Group) Name() string      { return g.name }
func (g *Group) SetName(n string)  { g.name = n }
func (g *Group) Visible() bool     { return g.visible }
func (g *Group) SetVisible(v bool) { g.visible = v }
func (g *Group) Locked() bool      { return g.locked }
func (g *Group) SetLocked(l bool)  { g.locked = l }

// Children returns a copy of the child list.
func (g *Group) Children() []Graph {
	return append([]Graph(nil), g.children...)
}

// SetChildren replaces the child list.
func (g *Group) SetChildren(children []Graph) {
	g.children = append([]Graph(nil), children...)
}

func (g *Group) BBox() geo.Rect {
	var pts []geo.Point
	for _, c := range g.children {
		cp := geo.RectToPoints(c.RectWithRotation())
		pts = append(pts, cp.NW, cp.NE, cp.SE, cp.SW)
	}
	return geo.BBoxOfPoints(pts)
}

func (g *Group) Attrs() Attrs {
	b := g.BBox()
	return Attrs{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

func (g *Group) RectWithRotation() geo.RectWithRotation {
	return geo.RectWithRotation{Rect: g.BBox()}
}

// SetAttrs maps the change onto the children: translation moves them,
// a size change scales their boxes around the group origin and a non-zero
// rotation turns them around the group center.
func (g *Group) SetAttrs(a Attrs) {
	cur := g.Attrs()
	sx, sy := 1.0, 1.0
	if cur.Width != 0 {
		sx = a.Width / cur.Width
	}
	if cur.Height != 0 {
		sy = a.Height / cur.Height
	}
	for _, c := range g.children {
		ca := c.Attrs()
		cx, cy := ca.Rect().Center()
		ncx := a.X + (cx-cur.X)*sx
		ncy := a.Y + (cy-cur.Y)*sy
		ca.Width *= sx
		ca.Height *= sy
		if a.Rotation != 0 {
			gcx, gcy := a.X+a.Width/2, a.Y+a.Height/2
			p := geo.TransformRotate(ncx, ncy, a.Rotation, gcx, gcy)
			ncx, ncy = p.X, p.Y
			ca.Rotation = geo.NormalizeRadian(ca.Rotation + a.Rotation)
		}
		ca.X = ncx - ca.Width/2
		ca.Y = ncy - ca.Height/2
		c.SetAttrs(ca)
	}
}

// Paint of a group is empty; SetPaint applies to every child.
func (g *Group) Paint() Paint { return Paint{} }

func (g *Group) SetPaint(p Paint) {
	for _, c := range g.children {
		c.SetPaint(p)
	}
}

func (g *Group) Draw(s render.Surface) {
	for _, c := range g.children {
		if c.Visible() {
			c.Draw(s)
		}
	}
}

func (g *Group) DrawOutline(s render.Surface, css string, width float64) {
	b := g.BBox()
	s.Save()
	defer s.Restore()
	s.BeginPath()
	s.Rect(b.X, b.Y, b.Width, b.Height)
	s.SetStrokeStyle(css)
	s.SetLineWidth(width)
	s.Stroke()
}

func (g *Group) HitTest(x, y, tol float64) bool {
	for i := len(g.children) - 1; i >= 0; i-- {
		c := g.children[i]
		if c.Visible() && c.HitTest(x, y, tol) {
			return true
		}
	}
	return false
}

func (g *Group) GetControlHandles(zoom float64, selected bool) []*ControlHandle {
	return nil
}

// Leaves returns every non-group graph under gs, depth first in order.
func Leaves(gs []Graph) []Graph {
	var out []Graph
	for _, c := range gs {
		if grp, ok := c.(*Group); ok {
			out = append(out, Leaves(grp.children)...)
			continue
		}
		out = append(out, c)
	}
	return out
}
