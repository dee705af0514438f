package editor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
)

func drag(t *testing.T, tool *DrawGraphTool, from, to geo.Point, shift bool) Outcome {
	t.Helper()
	tool.OnStart(from)
	tool.OnDrag(to, shift)
	out, err := tool.OnEnd()
	require.NoError(t, err)
	assert.Equal(t, ToolIdle, tool.State())
	return out
}

func TestDrawLineTool(t *testing.T) {
	e, _ := newTestEditor(t)
	tool := NewDrawLineTool(e)
	assert.Equal(t, "l", tool.Hotkey())

	out := drag(t, tool, geo.Point{X: 0, Y: 0}, geo.Point{X: 3, Y: 4}, false)
	assert.Equal(t, OutcomeCommitted, out)
	require.Equal(t, 1, e.SceneGraph.Len())

	g := e.SceneGraph.Children()[0]
	assert.Equal(t, graph.TypeLine, g.Type())
	a := g.Attrs()
	assert.InDelta(t, 5, a.Width, tol)
	assert.Equal(t, 0.0, a.Height)
	assert.InDelta(t, math.Atan2(4, 3), a.Rotation, tol)

	assert.True(t, e.CommandManager.CanUndo())
	assert.Equal(t, "Add Line", e.CommandManager.UndoDesc())
	assert.Equal(t, []string{g.ID()}, e.SelectedElements.IDs())
	assert.Nil(t, e.Preview())
}

func TestDrawLineToolZeroDragCreatesNothing(t *testing.T) {
	e, _ := newTestEditor(t)
	tool := NewDrawLineTool(e)

	tool.OnStart(geo.Point{X: 7, Y: 7})
	assert.Nil(t, tool.Drawing())
	tool.OnDrag(geo.Point{X: 7, Y: 7}, false)
	out, err := tool.OnEnd()
	require.NoError(t, err)

	assert.Equal(t, OutcomeDiscarded, out)
	assert.Equal(t, 0, e.SceneGraph.Len())
	assert.False(t, e.CommandManager.CanUndo())

	// a press and release with no move at all
	tool.OnStart(geo.Point{X: 1, Y: 1})
	out, err = tool.OnEnd()
	require.NoError(t, err)
	assert.Equal(t, OutcomeDiscarded, out)
	assert.False(t, e.CommandManager.CanUndo())
}

func TestDrawLineToolPreviewIsOutsideScene(t *testing.T) {
	e, _ := newTestEditor(t)
	tool := NewDrawLineTool(e)
	tool.OnStart(geo.Point{})
	tool.OnDrag(geo.Point{X: 10, Y: 0}, false)
	require.NotNil(t, tool.Drawing())
	assert.Same(t, tool.Drawing(), e.Preview())
	assert.Equal(t, 0, e.SceneGraph.Len())

	tool.Cancel()
	assert.Equal(t, ToolIdle, tool.State())
	assert.Nil(t, e.Preview())
	assert.Equal(t, 0, e.SceneGraph.Len())
	assert.False(t, e.CommandManager.CanUndo())
}

func TestDrawLineToolShiftSnaps(t *testing.T) {
	e, _ := newTestEditor(t)
	tool := NewDrawLineTool(e)
	tool.OnStart(geo.Point{})
	tool.OnDrag(geo.Point{X: 10, Y: 1}, false)
	assert.NotEqual(t, 0.0, tool.Drawing().Attrs().Rotation)

	tool.SetShift(true)
	a := tool.Drawing().Attrs()
	assert.InDelta(t, 0, a.Rotation, tol)
	assert.InDelta(t, math.Hypot(10, 1), a.Width, tol)

	tool.OnDrag(geo.Point{X: 10, Y: 9}, true)
	assert.InDelta(t, math.Pi/4, tool.Drawing().Attrs().Rotation, tol)
	_, err := tool.OnEnd()
	require.NoError(t, err)
}

func TestDrawToolPanicsOnNaN(t *testing.T) {
	e, _ := newTestEditor(t)
	tool := NewDrawLineTool(e)
	assert.Panics(t, func() { tool.OnStart(geo.Point{X: math.NaN()}) })

	tool = NewDrawRectTool(e)
	tool.OnStart(geo.Point{})
	assert.Panics(t, func() { tool.OnDrag(geo.Point{Y: math.NaN()}, false) })
}

func TestDrawRectTool(t *testing.T) {
	e, _ := newTestEditor(t)
	tool := NewDrawRectTool(e)

	tool.OnStart(geo.Point{X: 10, Y: 10})
	require.NotNil(t, tool.Drawing())
	tool.OnDrag(geo.Point{X: 0, Y: 4}, false)
	a := tool.Drawing().Attrs()
	assert.Equal(t, graph.Attrs{X: 0, Y: 4, Width: 10, Height: 6}, a)

	tool.OnDrag(geo.Point{X: 0, Y: 4}, true)
	assert.Equal(t, graph.Attrs{X: 0, Y: 0, Width: 10, Height: 10}, tool.Drawing().Attrs())

	out, err := tool.OnEnd()
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, out)
	assert.Equal(t, "Add Rect", e.CommandManager.UndoDesc())

	g := e.SceneGraph.Children()[0]
	assert.NotEmpty(t, g.Paint().Fill)
	assert.NotEmpty(t, g.Paint().Stroke)
}

func TestDrawEllipseToolUndoRedo(t *testing.T) {
	e, _ := newTestEditor(t)
	tool := NewDrawEllipseTool(e)
	assert.Equal(t, OutcomeCommitted, drag(t, tool, geo.Point{}, geo.Point{X: 30, Y: 20}, false))
	id := e.SceneGraph.Children()[0].ID()

	require.NoError(t, e.CommandManager.Undo())
	assert.Equal(t, 0, e.SceneGraph.Len())
	require.NoError(t, e.CommandManager.Redo())
	require.Equal(t, 1, e.SceneGraph.Len())
	assert.Equal(t, id, e.SceneGraph.Children()[0].ID())
	assert.Equal(t, graph.TypeEllipse, e.SceneGraph.Children()[0].Type())
}

func TestNewDrawTools(t *testing.T) {
	e, _ := newTestEditor(t)
	tools := NewDrawTools(e)
	require.Len(t, tools, 3)
	assert.Equal(t, "Add Line", tools["l"].Desc())
	assert.Equal(t, "Add Rect", tools["r"].Desc())
	assert.Equal(t, "Add Ellipse", tools["o"].Desc())
}
