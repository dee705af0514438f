package editor

import (
	"fmt"
	"math"

	"github.com/vecedit/vecedit/internal/command"
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/texture"
)

// ToolState is where a draw gesture is.
type ToolState int

const (
	ToolIdle ToolState = iota
	ToolDragging
)

// Outcome is how a gesture ended. Both outcomes return the tool to idle.
type Outcome int

const (
	OutcomeDiscarded Outcome = iota
	OutcomeCommitted
)

func (o Outcome) String() string {
	if o == OutcomeCommitted {
		return "committed"
	}
	return "discarded"
}

// Drawer is the shape-specific part of a draw tool.
type Drawer interface {
	// CreateGraph builds the graph for rect. noMove is set for a press
	// without drag; returning nil means nothing is drawn yet.
	CreateGraph(rect geo.Rect, noMove bool) graph.Graph
	// UpdateGraph maps the drag rect onto an existing preview.
	UpdateGraph(g graph.Graph, rect geo.Rect)
	// AdjustSizeWhenShiftPressing constrains the drag rect.
	AdjustSizeWhenShiftPressing(rect geo.Rect) geo.Rect
}

// DrawGraphTool turns a drag into a new graph. The preview lives outside
// the scene until the gesture is committed through the history.
type DrawGraphTool struct {
	editor  *Editor
	drawer  Drawer
	typ     string
	hotkey  string
	desc    string
	state   ToolState
	start   geo.Point
	last    geo.Point
	shift   bool
	moved   bool
	drawing graph.Graph
}

func NewDrawGraphTool(e *Editor, typ, hotkey, desc string, drawer Drawer) *DrawGraphTool {
	return &DrawGraphTool{editor: e, drawer: drawer, typ: typ, hotkey: hotkey, desc: desc}
}

func (t *DrawGraphTool) Type() string         { return t.typ }
func (t *DrawGraphTool) Hotkey() string       { return t.hotkey }
func (t *DrawGraphTool) Desc() string         { return t.desc }
func (t *DrawGraphTool) State() ToolState     { return t.state }
func (t *DrawGraphTool) Drawing() graph.Graph { return t.drawing }

func mustPoint(p geo.Point) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		panic(fmt.Sprintf("draw tool: NaN point %v", p))
	}
}

// OnStart begins a gesture at scene point p.
func (t *DrawGraphTool) OnStart(p geo.Point) {
	mustPoint(p)
	t.state = ToolDragging
	t.start, t.last = p, p
	t.moved = false
	t.shift = false
	t.setDrawing(t.drawer.CreateGraph(geo.Rect{X: p.X, Y: p.Y}, true))
}

// OnDrag updates the preview for the pointer at scene point p.
func (t *DrawGraphTool) OnDrag(p geo.Point, shift bool) {
	if t.state != ToolDragging {
		return
	}
	mustPoint(p)
	t.last = p
	t.shift = shift
	if p != t.start {
		t.moved = true
	}
	t.update()
}

// SetShift re-applies the last drag with the new modifier state.
func (t *DrawGraphTool) SetShift(shift bool) {
	if t.state != ToolDragging || t.shift == shift {
		return
	}
	t.shift = shift
	t.update()
}

func (t *DrawGraphTool) rect() geo.Rect {
	r := geo.RectFromPoints(t.start, t.last)
	if r.HasNaN() {
		panic(fmt.Sprintf("draw tool: NaN rect %v", r))
	}
	if t.shift {
		r = t.drawer.AdjustSizeWhenShiftPressing(r)
	}
	return r
}

func (t *DrawGraphTool) update() {
	r := t.rect()
	if t.drawing == nil {
		t.setDrawing(t.drawer.CreateGraph(r, false))
	} else {
		t.drawer.UpdateGraph(t.drawing, r)
	}
	t.editor.Render()
}

func (t *DrawGraphTool) setDrawing(g graph.Graph) {
	t.drawing = g
	t.editor.SetPreview(g)
}

// OnEnd finishes the gesture. A press without movement or a degenerate
// rect is discarded; otherwise the graph is added through one command and
// selected.
func (t *DrawGraphTool) OnEnd() (Outcome, error) {
	if t.state != ToolDragging {
		return OutcomeDiscarded, nil
	}
	defer t.reset()
	if !t.moved {
		return OutcomeDiscarded, nil
	}
	r := t.rect()
	if r.IsDegenerate() {
		return OutcomeDiscarded, nil
	}
	if t.drawing == nil {
		t.drawing = t.drawer.CreateGraph(r, false)
		if t.drawing == nil {
			return OutcomeDiscarded, nil
		}
	}
	g := t.drawing
	t.editor.SetPreview(nil)
	if err := t.editor.CommandManager.PushCommand(command.NewAddGraphs(t.editor.SceneGraph, t.desc, []graph.Graph{g})); err != nil {
		return OutcomeDiscarded, err
	}
	t.editor.SelectedElements.SetItems([]graph.Graph{g})
	return OutcomeCommitted, nil
}

// Cancel drops the preview without recording anything.
func (t *DrawGraphTool) Cancel() {
	if t.state != ToolDragging {
		return
	}
	t.reset()
}

func (t *DrawGraphTool) reset() {
	t.state = ToolIdle
	t.moved = false
	t.shift = false
	t.drawing = nil
	t.editor.SetPreview(nil)
	t.editor.Render()
}

// defaultPaint is the paint new shapes start with.
func (e *Editor) defaultPaint(withFill bool) graph.Paint {
	p := graph.Paint{StrokeWidth: e.Setting.StrokeWidth}
	if c, err := texture.ParseColor(e.Setting.FirstStroke); err == nil {
		p.Stroke = []texture.Texture{texture.Solid(c)}
	} else {
		e.logger.Warn("invalid stroke setting", "value", e.Setting.FirstStroke, "error", err)
	}
	if !withFill {
		return p
	}
	if c, err := texture.ParseColor(e.Setting.FirstFill); err == nil {
		p.Fill = []texture.Texture{texture.Solid(c)}
	} else {
		e.logger.Warn("invalid fill setting", "value", e.Setting.FirstFill, "error", err)
	}
	return p
}

// NewDrawTools returns the draw tools keyed by hotkey.
func NewDrawTools(e *Editor) map[string]*DrawGraphTool {
	tools := map[string]*DrawGraphTool{}
	for _, t := range []*DrawGraphTool{NewDrawLineTool(e), NewDrawRectTool(e), NewDrawEllipseTool(e)} {
		tools[t.Hotkey()] = t
	}
	return tools
}
