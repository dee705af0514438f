package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/render"
	"github.com/vecedit/vecedit/internal/texture"
)

func rect(x float64) *graph.Rect {
	return graph.NewRect(graph.Attrs{X: x, Y: 0, Width: 10, Height: 10}, graph.Paint{})
}

func ids(gs []graph.Graph) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.ID()
	}
	return out
}

func TestInsertRemoveLocate(t *testing.T) {
	sg := NewSceneGraph()
	a, b, c := rect(0), rect(20), rect(40)
	require.NoError(t, sg.Add(a, c))
	require.NoError(t, sg.Insert("", 1, b))
	assert.Equal(t, []string{a.ID(), b.ID(), c.ID()}, ids(sg.Children()))

	parent, idx, err := sg.Locate(b.ID())
	require.NoError(t, err)
	assert.Equal(t, "", parent)
	assert.Equal(t, 1, idx)

	parent, idx, err = sg.Remove(b.ID())
	require.NoError(t, err)
	assert.Equal(t, "", parent)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []string{a.ID(), c.ID()}, ids(sg.Children()))

	_, _, err = sg.Remove(b.ID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertDuplicate(t *testing.T) {
	sg := NewSceneGraph()
	a := rect(0)
	require.NoError(t, sg.Add(a))
	assert.ErrorIs(t, sg.Add(a), ErrDuplicate)

	grp := graph.NewGroup([]graph.Graph{a})
	assert.ErrorIs(t, sg.Add(grp), ErrDuplicate)
}

func TestGroupChildrenAddressable(t *testing.T) {
	sg := NewSceneGraph()
	a, b := rect(0), rect(20)
	grp := graph.NewGroup([]graph.Graph{a, b})
	require.NoError(t, sg.Add(grp))

	found, ok := sg.Find(b.ID())
	require.True(t, ok)
	assert.Same(t, b, found)

	parent, idx, err := sg.Locate(b.ID())
	require.NoError(t, err)
	assert.Equal(t, grp.ID(), parent)
	assert.Equal(t, 1, idx)

	require.NoError(t, sg.SetSiblings(grp.ID(), []graph.Graph{b, a}))
	assert.Equal(t, []string{b.ID(), a.ID()}, ids(grp.Children()))

	assert.ErrorIs(t, sg.SetSiblings(grp.ID(), []graph.Graph{b}), ErrBadOrder)
	_, err = sg.Siblings(a.ID())
	assert.ErrorIs(t, err, ErrNotGroup)
}

func TestGetTopHitElement(t *testing.T) {
	sg := NewSceneGraph()
	back, front := rect(0), rect(5)
	require.NoError(t, sg.Add(back, front))

	assert.Same(t, front, sg.GetTopHitElement(7, 5, 0))
	assert.Same(t, back, sg.GetTopHitElement(2, 5, 0))

	front.SetLocked(true)
	assert.Same(t, back, sg.GetTopHitElement(7, 5, 0))
	back.SetVisible(false)
	assert.Nil(t, sg.GetTopHitElement(7, 5, 0))
}

func TestRenderSkipsHidden(t *testing.T) {
	sg := NewSceneGraph()
	a := rect(0)
	b := rect(3)
	b.SetPaint(graph.Paint{Fill: []texture.Texture{texture.MustSolidHex("#ff0000")}})
	require.NoError(t, sg.Add(a, b))
	b.SetVisible(false)

	rec := render.NewRecorder()
	sg.Render(rec)
	assert.Empty(t, rec.Commands())

	b.SetVisible(true)
	sg.Render(rec)
	assert.Len(t, rec.Commands(), 1)
}
