package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vecedit/vecedit/internal/config"
	"github.com/vecedit/vecedit/internal/geo"
)

func TestZoomRoundTrip(t *testing.T) {
	z := NewZoomManager(config.Default())
	z.SetPanOffset(geo.Point{X: 20, Y: 10})
	z.SetZoom(2)
	z.Pan(-40, 0)

	vp := z.SceneToViewport(15, 25)
	back := z.ViewportToScene(vp.X, vp.Y)
	assert.InDelta(t, 15, back.X, 1e-9)
	assert.InDelta(t, 25, back.Y, 1e-9)
	// (15 - 20) * 2 + 20
	assert.InDelta(t, 10, vp.X, 1e-9)
}

func TestZoomClampAndEvent(t *testing.T) {
	z := NewZoomManager(config.Default())
	var got []float64
	id := z.OnZoomChange(func(v float64) { got = append(got, v) })

	z.SetZoom(1000)
	z.SetZoom(1000)
	z.SetZoom(0.001)
	z.SetZoom(-1)
	z.OffZoomChange(id)
	z.SetZoom(3)

	assert.Equal(t, []float64{256, 0.015}, got)
	assert.Equal(t, 3.0, z.GetZoom())
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	z := NewZoomManager(config.Default())
	anchor := geo.Point{X: 300, Y: 200}
	before := z.ViewportToScene(anchor.X, anchor.Y)

	z.ZoomIn(anchor)
	assert.InDelta(t, 1.25, z.GetZoom(), 1e-12)
	after := z.ViewportToScene(anchor.X, anchor.Y)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)

	z.ZoomOut(anchor)
	z.ZoomOut(anchor)
	assert.InDelta(t, 0.8, z.GetZoom(), 1e-12)
}

func TestZoomToFit(t *testing.T) {
	z := NewZoomManager(config.Default())
	z.ZoomToFit(geo.Rect{X: 100, Y: 100, Width: 200, Height: 100}, 440, 440, 20)
	assert.InDelta(t, 2, z.GetZoom(), 1e-12)
	c := z.SceneToViewport(200, 150)
	assert.InDelta(t, 220, c.X, 1e-9)
	assert.InDelta(t, 220, c.Y, 1e-9)
}

func TestRectToViewport(t *testing.T) {
	z := NewZoomManager(config.Default())
	z.SetZoom(2)
	r := z.RectToViewport(geo.RectWithRotation{Rect: geo.Rect{X: 10, Y: 10, Width: 10, Height: 20}, Rotation: 1})
	assert.InDelta(t, 20, r.X, 1e-9)
	assert.InDelta(t, 20, r.Y, 1e-9)
	assert.InDelta(t, 20, r.Width, 1e-9)
	assert.InDelta(t, 40, r.Height, 1e-9)
	assert.Equal(t, 1.0, r.Rotation)
}
