package editor

import (
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
)

type lineDrawer struct {
	editor *Editor
}

// NewDrawLineTool draws straight lines. Shift snaps the angle to 45°.
func NewDrawLineTool(e *Editor) *DrawGraphTool {
	return NewDrawGraphTool(e, "drawLine", "l", "Add Line", &lineDrawer{editor: e})
}

func (d *lineDrawer) CreateGraph(rect geo.Rect, noMove bool) graph.Graph {
	// a click alone draws no line
	if noMove {
		return nil
	}
	return graph.NewLine(graph.LineAttrsFromRect(rect), d.editor.defaultPaint(false))
}

func (d *lineDrawer) UpdateGraph(g graph.Graph, rect geo.Rect) {
	g.SetAttrs(graph.LineAttrsFromRect(rect))
}

func (d *lineDrawer) AdjustSizeWhenShiftPressing(rect geo.Rect) geo.Rect {
	return geo.AdjustSizeToKeepPolarSnap(rect)
}

// boxDrawer draws shapes that fill the normalized drag rect.
type boxDrawer struct {
	editor *Editor
	create func(graph.Attrs, graph.Paint) graph.Graph
}

func (d *boxDrawer) CreateGraph(rect geo.Rect, noMove bool) graph.Graph {
	r := rect.Normalize()
	return d.create(graph.Attrs{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, d.editor.defaultPaint(true))
}

func (d *boxDrawer) UpdateGraph(g graph.Graph, rect geo.Rect) {
	r := rect.Normalize()
	a := g.Attrs()
	a.X, a.Y, a.Width, a.Height = r.X, r.Y, r.Width, r.Height
	g.SetAttrs(a)
}

func (d *boxDrawer) AdjustSizeWhenShiftPressing(rect geo.Rect) geo.Rect {
	return geo.AdjustSizeToKeepSquare(rect)
}

// NewDrawRectTool draws rectangles. Shift keeps them square.
func NewDrawRectTool(e *Editor) *DrawGraphTool {
	return NewDrawGraphTool(e, "drawRect", "r", "Add Rect", &boxDrawer{
		editor: e,
		create: func(a graph.Attrs, p graph.Paint) graph.Graph { return graph.NewRect(a, p) },
	})
}

// NewDrawEllipseTool draws ellipses. Shift keeps them circular.
func NewDrawEllipseTool(e *Editor) *DrawGraphTool {
	return NewDrawGraphTool(e, "drawEllipse", "o", "Add Ellipse", &boxDrawer{
		editor: e,
		create: func(a graph.Attrs, p graph.Paint) graph.Graph { return graph.NewEllipse(a, p) },
	})
}
