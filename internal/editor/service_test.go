package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
)

func TestArrangeOrder(t *testing.T) {
	ids := []string{"0", "1", "2", "3", "4"}
	sel := map[string]bool{"1": true, "3": true}

	assert.Equal(t, []string{"0", "2", "4", "1", "3"}, ArrangeOrder(ids, sel, ArrangeFront))
	assert.Equal(t, []string{"1", "3", "0", "2", "4"}, ArrangeOrder(ids, sel, ArrangeBack))
	assert.Equal(t, []string{"0", "2", "1", "4", "3"}, ArrangeOrder(ids, sel, ArrangeForward))
	assert.Equal(t, []string{"1", "0", "3", "2", "4"}, ArrangeOrder(ids, sel, ArrangeBackward))

	// adjacent runs move as one block and the edges stop them
	run := map[string]bool{"2": true, "3": true}
	assert.Equal(t, []string{"0", "1", "4", "2", "3"}, ArrangeOrder(ids, run, ArrangeForward))
	assert.Equal(t, []string{"0", "2", "3", "1", "4"}, ArrangeOrder(ids, run, ArrangeBackward))
	top := map[string]bool{"4": true}
	assert.Equal(t, ids, ArrangeOrder(ids, top, ArrangeForward))
}

func fiveRects(t *testing.T, e *Editor) []graph.Graph {
	t.Helper()
	var gs []graph.Graph
	for i := 0; i < 5; i++ {
		gs = append(gs, addRect(t, e, graph.Attrs{X: float64(i) * 20, Width: 10, Height: 10}))
	}
	return gs
}

func TestArrangeFrontRecordsCommand(t *testing.T) {
	e, _ := newTestEditor(t)
	gs := fiveRects(t, e)
	before := topIDs(e)
	e.SelectedElements.SetItems([]graph.Graph{gs[3], gs[1]})

	require.NoError(t, e.Arrange(ArrangeFront))
	assert.Equal(t, []string{gs[0].ID(), gs[2].ID(), gs[4].ID(), gs[1].ID(), gs[3].ID()}, topIDs(e))

	require.NoError(t, e.CommandManager.Undo())
	assert.Equal(t, before, topIDs(e))
	require.NoError(t, e.CommandManager.Redo())
	assert.Equal(t, []string{gs[0].ID(), gs[2].ID(), gs[4].ID(), gs[1].ID(), gs[3].ID()}, topIDs(e))
}

func TestArrangeNoChangeRecordsNothing(t *testing.T) {
	e, _ := newTestEditor(t)
	gs := fiveRects(t, e)
	e.SelectedElements.SetItems([]graph.Graph{gs[4]})
	require.NoError(t, e.Arrange(ArrangeFront))
	assert.False(t, e.CommandManager.CanUndo())

	e.SelectedElements.Clear()
	assert.ErrorIs(t, e.Arrange(ArrangeBack), ErrNoSelection)
}

func TestArrangeInsideGroup(t *testing.T) {
	e, _ := newTestEditor(t)
	a := graph.NewRect(graph.Attrs{Width: 5, Height: 5}, graph.Paint{})
	b := graph.NewRect(graph.Attrs{X: 10, Width: 5, Height: 5}, graph.Paint{})
	grp := graph.NewGroup([]graph.Graph{a, b})
	require.NoError(t, e.SceneGraph.Add(grp))

	e.SelectedElements.SetItems([]graph.Graph{a})
	require.NoError(t, e.Arrange(ArrangeForward))
	kids := grp.Children()
	assert.Equal(t, []string{b.ID(), a.ID()}, []string{kids[0].ID(), kids[1].ID()})
}

func TestToggleVisibleMixedSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addRect(t, e, graph.Attrs{Width: 10, Height: 10})
	b := addRect(t, e, graph.Attrs{X: 20, Width: 10, Height: 10})
	b.SetVisible(false)
	e.SelectedElements.SetItems([]graph.Graph{a, b})

	// one hidden: show everything
	require.NoError(t, e.ToggleVisible())
	assert.True(t, a.Visible())
	assert.True(t, b.Visible())

	// all visible: hide everything
	require.NoError(t, e.ToggleVisible())
	assert.False(t, a.Visible())
	assert.False(t, b.Visible())

	require.NoError(t, e.CommandManager.Undo())
	require.NoError(t, e.CommandManager.Undo())
	assert.True(t, a.Visible())
	assert.False(t, b.Visible())
}

func TestToggleLockMixedSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addRect(t, e, graph.Attrs{Width: 10, Height: 10})
	b := addRect(t, e, graph.Attrs{X: 20, Width: 10, Height: 10})
	a.SetLocked(true)
	e.SelectedElements.SetItems([]graph.Graph{a, b})

	// one unlocked: lock everything
	require.NoError(t, e.ToggleLock())
	assert.True(t, a.Locked())
	assert.True(t, b.Locked())

	// all locked: unlock everything
	require.NoError(t, e.ToggleLock())
	assert.False(t, a.Locked())
	assert.False(t, b.Locked())
	assert.Equal(t, "Toggle Lock", e.CommandManager.UndoDesc())
}

func TestDeleteAndUndo(t *testing.T) {
	e, _ := newTestEditor(t)
	gs := fiveRects(t, e)
	before := topIDs(e)
	e.SelectedElements.SetItems([]graph.Graph{gs[1], gs[3]})

	require.NoError(t, e.SelectedElements.RemoveFromScene())
	assert.Equal(t, []string{gs[0].ID(), gs[2].ID(), gs[4].ID()}, topIDs(e))
	assert.True(t, e.SelectedElements.IsEmpty())

	require.NoError(t, e.CommandManager.Undo())
	assert.Equal(t, before, topIDs(e))
}

func TestMove(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addRect(t, e, graph.Attrs{Width: 10, Height: 10})
	e.SelectedElements.SetItems([]graph.Graph{a})
	require.NoError(t, e.Move(5, -3))
	assert.Equal(t, graph.Attrs{X: 5, Y: -3, Width: 10, Height: 10}, a.Attrs())
	require.NoError(t, e.CommandManager.Undo())
	assert.Equal(t, graph.Attrs{Width: 10, Height: 10}, a.Attrs())
}

func TestGroupUngroupSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	gs := fiveRects(t, e)
	e.SelectedElements.SetItems([]graph.Graph{gs[1], gs[2]})

	require.NoError(t, e.SelectedElements.Group())
	require.Equal(t, 1, e.SelectedElements.Size())
	grp := e.SelectedElements.Items()[0]
	assert.Equal(t, graph.TypeGroup, grp.Type())
	assert.Equal(t, 4, e.SceneGraph.Len())
	assert.True(t, e.MenuState().CanUngroup)

	require.NoError(t, e.Ungroup())
	assert.Equal(t, []string{gs[1].ID(), gs[2].ID()}, e.SelectedElements.IDs())
	assert.Equal(t, 5, e.SceneGraph.Len())

	require.NoError(t, e.CommandManager.Undo())
	require.NoError(t, e.CommandManager.Undo())
	assert.Equal(t, 5, e.SceneGraph.Len())
	_, ok := e.SceneGraph.Find(grp.ID())
	assert.False(t, ok)
}

func TestSelectAllSkipsHiddenAndLocked(t *testing.T) {
	e, _ := newTestEditor(t)
	gs := fiveRects(t, e)
	gs[0].SetVisible(false)
	gs[1].SetLocked(true)
	e.SelectedElements.SelectAll()
	assert.Equal(t, []string{gs[2].ID(), gs[3].ID(), gs[4].ID()}, e.SelectedElements.IDs())
}

func TestMenuState(t *testing.T) {
	e, _ := newTestEditor(t)
	m := e.MenuState()
	assert.False(t, m.CanUndo)
	assert.False(t, m.HasSelection)
	assert.False(t, m.CanPaste)

	a := addRect(t, e, graph.Attrs{Width: 10, Height: 10})
	e.SelectedElements.SetItems([]graph.Graph{a})
	require.NoError(t, e.Move(1, 1))
	m = e.MenuState()
	assert.True(t, m.CanUndo)
	assert.Equal(t, "Move", m.UndoDesc)
	assert.True(t, m.HasSelection)
	assert.True(t, m.CanSelectAll)
}

func TestClipboardCopyPaste(t *testing.T) {
	e, _ := newTestEditor(t)
	a := addRect(t, e, graph.Attrs{X: 10, Y: 10, Width: 20, Height: 20})
	b := addRect(t, e, graph.Attrs{X: 40, Y: 15, Width: 10, Height: 10})

	assert.ErrorIs(t, e.Clipboard.PasteAt(geo.Point{}), ErrClipboardEmpty)
	e.SelectedElements.SetItems([]graph.Graph{a, b})
	require.NoError(t, e.Clipboard.Copy())
	assert.True(t, e.MenuState().CanPaste)

	require.NoError(t, e.Clipboard.PasteAt(geo.Point{X: 100, Y: 200}))
	require.Equal(t, 4, e.SceneGraph.Len())
	assert.Equal(t, "Paste", e.CommandManager.UndoDesc())

	pasted := e.SelectedElements.Items()
	require.Len(t, pasted, 2)
	assert.NotEqual(t, a.ID(), pasted[0].ID())
	assert.Equal(t, graph.Attrs{X: 100, Y: 200, Width: 20, Height: 20}, pasted[0].Attrs())
	assert.Equal(t, graph.Attrs{X: 130, Y: 205, Width: 10, Height: 10}, pasted[1].Attrs())

	require.NoError(t, e.CommandManager.Undo())
	assert.Equal(t, 2, e.SceneGraph.Len())
	assert.True(t, e.SelectedElements.IsEmpty())
}

func TestClipboardSetDataRejectsGarbage(t *testing.T) {
	e, _ := newTestEditor(t)
	assert.Error(t, e.Clipboard.SetData([]byte("not json")))
	assert.False(t, e.Clipboard.HasData())
}
