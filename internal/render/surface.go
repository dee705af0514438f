// Package render defines the draw-call surface graphs paint onto and two
// implementations of it: a command recorder for a Canvas2D frontend and an
// in-process rasteriser.
package render

// Surface is the 2D drawing abstraction consumed by graphs and the editor.
// It mirrors the subset of the Canvas2D API the editor needs. Transform
// calls compose onto the current matrix; Save/Restore push and pop the
// whole drawing state.
type Surface interface {
	Save()
	Restore()
	Translate(x, y float64)
	Scale(sx, sy float64)
	Rotate(radians float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Rect(x, y, w, h float64)
	Ellipse(cx, cy, rx, ry float64)
	ClosePath()

	SetFillStyle(css string)
	SetStrokeStyle(css string)
	SetLineWidth(w float64)
	Fill()
	Stroke()

	DrawImage(src string, x, y, w, h float64)
	FillText(text string, x, y, fontSize float64)

	// Clear wipes the whole surface before a new frame.
	Clear()
}
