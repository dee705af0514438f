package editor

import (
	"math"

	"github.com/vecedit/vecedit/internal/command"
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
)

type transformKind int

const (
	transformMove transformKind = iota
	transformResize
	transformRotate
	transformCustom
)

var transformDesc = map[transformKind]string{
	transformMove:   "Move",
	transformResize: "Resize",
	transformRotate: "Rotate",
	transformCustom: "Edit",
}

// rotationSnap is the shift-constrained rotation step.
const rotationSnap = math.Pi / 12

// TransformSession is one drag of the selection, a transform handle or a
// custom handle. Graphs change live; End records a single command and
// Cancel restores the starting geometry.
type TransformSession struct {
	editor   *Editor
	kind     transformKind
	handle   string
	start    geo.Point
	box      geo.RectWithRotation
	leaves   []graph.Graph
	before   []graph.Attrs
	target   graph.Graph
	finished bool
}

// BeginTransform starts a drag at scene point p. handle is a transform or
// custom handle name, or "" to move the selection.
func (e *Editor) BeginTransform(handle string, p geo.Point) (*TransformSession, error) {
	mustPoint(p)
	items := e.SelectedElements.Items()
	box, ok := e.SelectedBox.GetBox()
	if !ok {
		return nil, ErrNoSelection
	}
	s := &TransformSession{editor: e, handle: handle, start: p, box: box}
	switch {
	case handle == "":
		s.kind = transformMove
	case IsRotationHandle(handle):
		s.kind = transformRotate
	case IsTransformHandle(handle):
		s.kind = transformResize
	default:
		if len(items) != 1 {
			return nil, ErrNoSelection
		}
		s.kind = transformCustom
		s.target = items[0]
	}
	if s.kind == transformCustom {
		s.leaves = []graph.Graph{s.target}
	} else {
		s.leaves = graph.Leaves(items)
	}
	s.before = make([]graph.Attrs, len(s.leaves))
	for i, g := range s.leaves {
		s.before[i] = g.Attrs()
	}
	e.ControlHandleManager.HideCustomHandles()
	return s, nil
}

func (s *TransformSession) restore() {
	for i, g := range s.leaves {
		g.SetAttrs(s.before[i])
	}
}

// Update moves the drag to scene point p.
func (s *TransformSession) Update(p geo.Point, shift bool) {
	if s.finished {
		return
	}
	mustPoint(p)
	s.restore()
	switch s.kind {
	case transformMove:
		s.move(p, shift)
	case transformResize:
		s.resize(p, shift)
	case transformRotate:
		s.rotate(p, shift)
	case transformCustom:
		if d, ok := s.target.(graph.HandleDragger); ok {
			d.DragHandle(s.handle, p)
		}
	}
	s.editor.Render()
}

func (s *TransformSession) move(p geo.Point, shift bool) {
	dx, dy := p.X-s.start.X, p.Y-s.start.Y
	if shift {
		if math.Abs(dx) > math.Abs(dy) {
			dy = 0
		} else {
			dx = 0
		}
	}
	for i, g := range s.leaves {
		a := s.before[i]
		a.X += dx
		a.Y += dy
		g.SetAttrs(a)
	}
}

func (s *TransformSession) rotate(p geo.Point, shift bool) {
	c := s.box.CenterPoint()
	angle := geo.SweepAngle(c, s.start, p)
	if shift {
		target := math.Round((s.box.Rotation+angle)/rotationSnap) * rotationSnap
		angle = target - s.box.Rotation
	}
	for i, g := range s.leaves {
		a := s.before[i]
		ac := a.Rect().CenterPoint()
		nc := geo.TransformRotate(ac.X, ac.Y, angle, c.X, c.Y)
		a.X = nc.X - a.Width/2
		a.Y = nc.Y - a.Height/2
		a.Rotation = geo.NormalizeRadian(a.Rotation + angle)
		g.SetAttrs(a)
	}
}

// resize works in the box's unrotated frame: the edge or corner opposite
// the handle stays where it is.
func (s *TransformSession) resize(p geo.Point, shift bool) {
	r := s.box.Rect
	c := s.box.CenterPoint()
	local := geo.TransformRotate(p.X, p.Y, -s.box.Rotation, c.X, c.Y)

	x1, y1, x2, y2 := r.X, r.Y, r.X+r.Width, r.Y+r.Height
	switch s.handle {
	case HandleNW:
		x1, y1 = local.X, local.Y
	case HandleNE:
		x2, y1 = local.X, local.Y
	case HandleSE:
		x2, y2 = local.X, local.Y
	case HandleSW:
		x1, y2 = local.X, local.Y
	case HandleN:
		y1 = local.Y
	case HandleS:
		y2 = local.Y
	case HandleE:
		x2 = local.X
	case HandleW:
		x1 = local.X
	}

	sx, sy := 1.0, 1.0
	if r.Width != 0 {
		sx = (x2 - x1) / r.Width
	}
	if r.Height != 0 {
		sy = (y2 - y1) / r.Height
	}
	if shift && isCornerHandle(s.handle) {
		k := math.Max(math.Abs(sx), math.Abs(sy))
		sx = math.Copysign(k, sx)
		sy = math.Copysign(k, sy)
		// keep the anchor corner fixed after forcing the ratio
		switch s.handle {
		case HandleNW:
			x1, y1 = x2-r.Width*sx, y2-r.Height*sy
		case HandleNE:
			x2, y1 = x1+r.Width*sx, y2-r.Height*sy
		case HandleSE:
			x2, y2 = x1+r.Width*sx, y1+r.Height*sy
		case HandleSW:
			x1, y2 = x2-r.Width*sx, y1+r.Height*sy
		}
	}

	for i, g := range s.leaves {
		a := s.before[i]
		ac := a.Rect().CenterPoint()
		u := geo.TransformRotate(ac.X, ac.Y, -s.box.Rotation, c.X, c.Y)
		nu := geo.Point{X: x1 + (u.X-r.X)*sx, Y: y1 + (u.Y-r.Y)*sy}
		nc := geo.TransformRotate(nu.X, nu.Y, s.box.Rotation, c.X, c.Y)
		kw, kh := leafScale(a.Rotation-s.box.Rotation, sx, sy)
		a.Width *= kw
		a.Height *= kh
		a.X = nc.X - a.Width/2
		a.Y = nc.Y - a.Height/2
		g.SetAttrs(a)
	}
}

// leafScale projects the box-frame scale (sx, sy) onto the axes of a leaf
// turned by phi relative to the box. A quarter turn swaps the factors.
func leafScale(phi, sx, sy float64) (float64, float64) {
	cos, sin := math.Cos(phi), math.Sin(phi)
	return math.Hypot(sx*cos, sy*sin), math.Hypot(sx*sin, sy*cos)
}

func isCornerHandle(name string) bool {
	switch name {
	case HandleNW, HandleNE, HandleSE, HandleSW:
		return true
	}
	return false
}

// End records the drag as one command. A drag that changed nothing
// records nothing.
func (s *TransformSession) End() error {
	if s.finished {
		return nil
	}
	s.finished = true
	defer s.editor.ControlHandleManager.ShowCustomHandles()

	var changes []command.AttrsChange
	for i, g := range s.leaves {
		after := g.Attrs()
		if after != s.before[i] {
			changes = append(changes, command.AttrsChange{ID: g.ID(), Before: s.before[i], After: after})
		}
	}
	s.restore()
	if len(changes) == 0 {
		s.editor.Render()
		return nil
	}
	return s.editor.CommandManager.PushCommand(command.NewSetAttrs(s.editor.SceneGraph, transformDesc[s.kind], changes))
}

// Cancel puts every graph back where the drag started.
func (s *TransformSession) Cancel() {
	if s.finished {
		return
	}
	s.finished = true
	s.restore()
	s.editor.ControlHandleManager.ShowCustomHandles()
	s.editor.Render()
}
