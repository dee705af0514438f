package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/render"
	"github.com/vecedit/vecedit/internal/texture"
)

const tol = 1e-9

func solidPaint() Paint {
	return Paint{
		Fill:        []texture.Texture{texture.MustSolidHex("#d9d9d9")},
		Stroke:      []texture.Texture{texture.MustSolidHex("#000")},
		StrokeWidth: 2,
	}
}

func TestRectHitTestRotated(t *testing.T) {
	r := NewRect(Attrs{X: 0, Y: 0, Width: 100, Height: 20, Rotation: math.Pi / 2}, Paint{})
	// vertical after the quarter turn about (50,10)
	assert.True(t, r.HitTest(50, 50, 0))
	assert.False(t, r.HitTest(5, 10, 0))
	assert.True(t, r.HitTest(61, 10, 2))
}

func TestRectHitTestIncludesStroke(t *testing.T) {
	r := NewRect(Attrs{Width: 10, Height: 10}, solidPaint())
	assert.True(t, r.HitTest(11, 5, 0))
	assert.False(t, r.HitTest(11.5, 5, 0))
}

func TestRectNegativeSizeOnlyHitsWithinTolerance(t *testing.T) {
	r := NewRect(Attrs{X: 10, Y: 10, Width: -4, Height: 6}, Paint{})
	assert.False(t, r.HitTest(12, 12, 0))
	assert.True(t, r.HitTest(10, 12, 0.5))
}

func TestEllipseHitTest(t *testing.T) {
	e := NewEllipse(Attrs{Width: 20, Height: 10}, Paint{})
	assert.True(t, e.HitTest(10, 5, 0))
	assert.False(t, e.HitTest(1, 1, 0))
	assert.True(t, e.HitTest(20.5, 5, 1))
}

func TestLineAttrsFromRect(t *testing.T) {
	a := LineAttrsFromRect(geo.Rect{Width: 3, Height: 4})
	assert.InDelta(t, 5, a.Width, tol)
	assert.Equal(t, 0.0, a.Height)
	assert.InDelta(t, math.Atan2(4, 3), a.Rotation, tol)

	l := NewLine(a, Paint{})
	p1, p2 := l.Endpoints()
	assert.InDelta(t, 0, p1.X, tol)
	assert.InDelta(t, 0, p1.Y, tol)
	assert.InDelta(t, 3, p2.X, tol)
	assert.InDelta(t, 4, p2.Y, tol)
}

func TestLineAttrsNormalizeNegativeDirection(t *testing.T) {
	a := LineAttrsFromRect(geo.Rect{X: 10, Y: 10, Width: -10, Height: 0})
	assert.InDelta(t, math.Pi, a.Rotation, tol)
	assert.InDelta(t, 10, a.Width, tol)

	a = LineAttrsFromRect(geo.Rect{Width: 1, Height: -1})
	assert.InDelta(t, 7*math.Pi/4, a.Rotation, tol)
}

func TestLineHitTestAndHandles(t *testing.T) {
	l := NewLine(LineAttrsFromPoints(geo.Point{X: 0, Y: 0}, geo.Point{X: 10, Y: 10}), Paint{StrokeWidth: 2})
	assert.True(t, l.HitTest(5, 5, 0))
	assert.True(t, l.HitTest(5, 6, 1))
	assert.False(t, l.HitTest(5, 9, 1))

	assert.Nil(t, l.GetControlHandles(1, false))
	hs := l.GetControlHandles(1, true)
	require.Len(t, hs, 2)
	assert.Equal(t, HandleLineStart, hs[0].Type)
	assert.InDelta(t, 10, hs[1].CX, tol)
	assert.InDelta(t, 10, hs[1].CY, tol)
	assert.Equal(t, CursorCrosshair, hs[0].GetCursor(hs[0].Type, l.RectWithRotation()).Kind)
}

func TestLineDragHandle(t *testing.T) {
	l := NewLine(LineAttrsFromPoints(geo.Point{X: 0, Y: 0}, geo.Point{X: 10, Y: 0}), Paint{})
	require.True(t, l.DragHandle(HandleLineEnd, geo.Point{X: 0, Y: 10}))
	p1, p2 := l.Endpoints()
	assert.InDelta(t, 0, p1.X, tol)
	assert.InDelta(t, 0, p1.Y, tol)
	assert.InDelta(t, 0, p2.X, tol)
	assert.InDelta(t, 10, p2.Y, tol)
	assert.False(t, l.DragHandle("nw", geo.Point{}))
}

func TestLineSetAttrsKeepsZeroHeight(t *testing.T) {
	l := NewLine(Attrs{Width: 5, Height: 3}, Paint{})
	assert.Equal(t, 0.0, l.Attrs().Height)
	l.SetAttrs(Attrs{Width: 5, Height: 8})
	assert.Equal(t, 0.0, l.Attrs().Height)
}

func TestGroupDerivedGeometry(t *testing.T) {
	a := NewRect(Attrs{X: 0, Y: 0, Width: 10, Height: 10}, Paint{})
	b := NewRect(Attrs{X: 20, Y: 5, Width: 10, Height: 20}, Paint{})
	g := NewGroup([]Graph{a, b})

	assert.Equal(t, Attrs{X: 0, Y: 0, Width: 30, Height: 25}, g.Attrs())
	assert.True(t, g.HitTest(25, 20, 0))
	assert.False(t, g.HitTest(15, 20, 0))

	g.SetAttrs(Attrs{X: 10, Y: 10, Width: 30, Height: 25})
	assert.Equal(t, Attrs{X: 10, Y: 10, Width: 10, Height: 10}, a.Attrs())
	assert.Equal(t, Attrs{X: 30, Y: 15, Width: 10, Height: 20}, b.Attrs())
}

func TestGroupSetAttrsScalesChildren(t *testing.T) {
	a := NewRect(Attrs{X: 0, Y: 0, Width: 10, Height: 10}, Paint{})
	b := NewRect(Attrs{X: 20, Y: 5, Width: 10, Height: 20}, Paint{})
	g := NewGroup([]Graph{a, b})

	g.SetAttrs(Attrs{Width: 60, Height: 50})
	assert.Equal(t, Attrs{X: 0, Y: 0, Width: 20, Height: 20}, a.Attrs())
	assert.Equal(t, Attrs{X: 40, Y: 10, Width: 20, Height: 40}, b.Attrs())
	assert.Equal(t, Attrs{Width: 60, Height: 50}, g.Attrs())
}

func TestGroupSetAttrsRotatesAboutCenter(t *testing.T) {
	a := NewRect(Attrs{X: 0, Y: 0, Width: 10, Height: 10}, Paint{})
	b := NewRect(Attrs{X: 20, Y: 0, Width: 10, Height: 10}, Paint{})
	g := NewGroup([]Graph{a, b})

	g.SetAttrs(Attrs{X: 0, Y: 0, Width: 30, Height: 10, Rotation: math.Pi})
	// a half turn about (15,5) swaps the two squares
	aa, ba := a.Attrs(), b.Attrs()
	assert.InDelta(t, 20, aa.X, tol)
	assert.InDelta(t, 0, aa.Y, tol)
	assert.InDelta(t, math.Pi, aa.Rotation, tol)
	assert.InDelta(t, 0, ba.X, tol)
	assert.InDelta(t, 0, ba.Y, tol)
	assert.InDelta(t, math.Pi, ba.Rotation, tol)
}

func TestGroupHiddenChildNotHit(t *testing.T) {
	a := NewRect(Attrs{Width: 10, Height: 10}, Paint{})
	g := NewGroup([]Graph{a})
	a.SetVisible(false)
	assert.False(t, g.HitTest(5, 5, 0))
}

func TestLeaves(t *testing.T) {
	a := NewRect(Attrs{}, Paint{})
	b := NewEllipse(Attrs{}, Paint{})
	c := NewLine(Attrs{}, Paint{})
	inner := NewGroup([]Graph{b, c})
	got := Leaves([]Graph{a, NewGroup([]Graph{inner})})
	assert.Equal(t, []Graph{a, b, c}, got)
}

func TestSnapshotRoundTripKeepsIDs(t *testing.T) {
	txt := NewText(Attrs{X: 1, Y: 2, Width: 30, Height: 12}, solidPaint(), "hello", 12)
	img := NewImage(Attrs{Width: 4, Height: 4}, "a.png")
	grp := NewGroup([]Graph{txt, img})
	grp.SetLocked(true)

	restored, err := FromSnapshot(ToSnapshot(grp), false)
	require.NoError(t, err)
	assert.Equal(t, ToSnapshot(grp), ToSnapshot(restored))
}

func TestCloneAssignsFreshIDs(t *testing.T) {
	r := NewRect(Attrs{Width: 3, Height: 3}, solidPaint())
	c := Clone(r)
	assert.NotEqual(t, r.ID(), c.ID())
	assert.Equal(t, r.Attrs(), c.Attrs())
	assert.Equal(t, r.Paint(), c.Paint())
}

func TestFromSnapshotUnknownType(t *testing.T) {
	_, err := FromSnapshot(Snapshot{Type: "star"}, true)
	assert.Error(t, err)
}

func TestRectDrawRecordsRotationAndPaint(t *testing.T) {
	rec := render.NewRecorder()
	r := NewRect(Attrs{X: 0, Y: 0, Width: 10, Height: 10, Rotation: math.Pi}, solidPaint())
	r.Draw(rec)

	cmds := rec.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "rgba(217,217,217,1)", cmds[0].Fill)
	assert.Equal(t, "rgba(0,0,0,1)", cmds[1].Stroke)
	assert.Equal(t, 2.0, cmds[1].StrokeWidth)
	// a half turn about (5,5) maps the origin to (10,10)
	assert.InDelta(t, 10, cmds[0].Transform[4], tol)
	assert.InDelta(t, 10, cmds[0].Transform[5], tol)
	assert.True(t, rec.Transform().IsIdentity())
}

func TestImageFillTextureDrawsImage(t *testing.T) {
	rec := render.NewRecorder()
	r := NewRect(Attrs{Width: 10, Height: 10}, Paint{Fill: []texture.Texture{texture.Image("x.png")}})
	r.Draw(rec)
	require.Len(t, rec.Commands(), 1)
	assert.Equal(t, "image", rec.Commands()[0].Op)
	assert.Equal(t, "x.png", rec.Commands()[0].ImageSrc)
}
