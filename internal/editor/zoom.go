package editor

import (
	"math"

	"github.com/vecedit/vecedit/internal/config"
	"github.com/vecedit/vecedit/internal/event"
	"github.com/vecedit/vecedit/internal/geo"
)

// ZoomManager maps between scene and viewport space:
// viewport = (scene - origin) * zoom + panOffset.
type ZoomManager struct {
	setting   *config.Setting
	zoom      float64
	origin    geo.Point
	panOffset geo.Point
	change    event.Emitter[float64]
}

func NewZoomManager(setting *config.Setting) *ZoomManager {
	return &ZoomManager{setting: setting, zoom: 1}
}

func (z *ZoomManager) GetZoom() float64 { return z.zoom }

// Origin is the scene point shown at the viewport's top-left (before the
// pan offset).
func (z *ZoomManager) Origin() geo.Point { return z.origin }

func (z *ZoomManager) PanOffset() geo.Point { return z.panOffset }

// SetPanOffset moves the whole canvas in viewport pixels, e.g. to make
// room for rulers.
func (z *ZoomManager) SetPanOffset(p geo.Point) { z.panOffset = p }

// OnZoomChange subscribes to zoom factor changes.
func (z *ZoomManager) OnZoomChange(fn func(float64)) event.SubscriptionID {
	return z.change.On(fn)
}

func (z *ZoomManager) OffZoomChange(id event.SubscriptionID) {
	z.change.Off(id)
}

// SetZoom clamps zoom to the configured range and keeps the origin.
func (z *ZoomManager) SetZoom(zoom float64) {
	old := z.zoom
	if z.setZoomQuiet(zoom) && old != z.zoom {
		z.change.Emit(z.zoom)
	}
}

// ZoomAt sets the zoom while keeping the scene point under the viewport
// point vp fixed.
func (z *ZoomManager) ZoomAt(zoom float64, vp geo.Point) {
	anchor := z.ViewportToScene(vp.X, vp.Y)
	old := z.zoom
	if !z.setZoomQuiet(zoom) {
		return
	}
	z.origin = geo.Point{
		X: anchor.X - (vp.X-z.panOffset.X)/z.zoom,
		Y: anchor.Y - (vp.Y-z.panOffset.Y)/z.zoom,
	}
	if old != z.zoom {
		z.change.Emit(z.zoom)
	}
}

func (z *ZoomManager) setZoomQuiet(zoom float64) bool {
	if math.IsNaN(zoom) || zoom <= 0 {
		return false
	}
	z.zoom = math.Min(math.Max(zoom, z.setting.ZoomMin), z.setting.ZoomMax)
	return true
}

// ZoomIn steps the zoom up about viewport point vp.
func (z *ZoomManager) ZoomIn(vp geo.Point) {
	z.ZoomAt(z.zoom*z.setting.ZoomStep, vp)
}

// ZoomOut steps the zoom down about viewport point vp.
func (z *ZoomManager) ZoomOut(vp geo.Point) {
	z.ZoomAt(z.zoom/z.setting.ZoomStep, vp)
}

// Pan scrolls the view by a viewport-space delta.
func (z *ZoomManager) Pan(dx, dy float64) {
	z.origin.X -= dx / z.zoom
	z.origin.Y -= dy / z.zoom
}

// ZoomToFit centers box in a viewport of width x height pixels, leaving
// padding on each side.
func (z *ZoomManager) ZoomToFit(box geo.Rect, width, height, padding float64) {
	box = box.Normalize()
	if box.Width == 0 && box.Height == 0 {
		z.setZoomQuiet(1)
	} else {
		zx, zy := math.Inf(1), math.Inf(1)
		if box.Width > 0 {
			zx = (width - 2*padding) / box.Width
		}
		if box.Height > 0 {
			zy = (height - 2*padding) / box.Height
		}
		z.setZoomQuiet(math.Min(zx, zy))
	}
	c := box.CenterPoint()
	z.origin = geo.Point{
		X: c.X - (width/2-z.panOffset.X)/z.zoom,
		Y: c.Y - (height/2-z.panOffset.Y)/z.zoom,
	}
	z.change.Emit(z.zoom)
}

func (z *ZoomManager) SceneToViewport(x, y float64) geo.Point {
	return geo.Point{
		X: (x-z.origin.X)*z.zoom + z.panOffset.X,
		Y: (y-z.origin.Y)*z.zoom + z.panOffset.Y,
	}
}

func (z *ZoomManager) ViewportToScene(x, y float64) geo.Point {
	return geo.Point{
		X: (x-z.panOffset.X)/z.zoom + z.origin.X,
		Y: (y-z.panOffset.Y)/z.zoom + z.origin.Y,
	}
}

// RectToViewport maps a scene box to viewport space. The transform is a
// uniform scale plus translation, so rotation is unchanged.
func (z *ZoomManager) RectToViewport(r geo.RectWithRotation) geo.RectWithRotation {
	cx, cy := r.Center()
	c := z.SceneToViewport(cx, cy)
	w, h := r.Width*z.zoom, r.Height*z.zoom
	return geo.RectWithRotation{
		Rect:     geo.Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h},
		Rotation: r.Rotation,
	}
}
