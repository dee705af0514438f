package render

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/texture"
)

// ellipseSegments is the polyline resolution used to flatten ellipses.
const ellipseSegments = 64

type subpath struct {
	points []geo.Point // device space
	closed bool
}

type rasterState struct {
	transform geo.Matrix2D
	fill      color.NRGBA
	stroke    color.NRGBA
	lineWidth float64
}

// Raster is a Surface that paints into an *image.RGBA with the
// golang.org/x/image/vector rasterizer. Paths are flattened to polylines;
// strokes are drawn as one quad per segment. Images are drawn as a
// placeholder box since decoding sources is outside the editor core.
type Raster struct {
	img        *image.RGBA
	ras        *vector.Rasterizer
	background color.Color

	paths []subpath
	state rasterState
	stack []rasterState
}

// NewRaster creates a w×h raster surface cleared to white.
func NewRaster(w, h int) *Raster {
	rs := &Raster{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		ras:        vector.NewRasterizer(w, h),
		background: color.White,
		state:      defaultRasterState(),
	}
	rs.Clear()
	return rs
}

func defaultRasterState() rasterState {
	return rasterState{
		transform: geo.Identity(),
		fill:      color.NRGBA{A: 255},
		stroke:    color.NRGBA{A: 255},
		lineWidth: 1,
	}
}

// Image returns the backing image.
func (rs *Raster) Image() *image.RGBA {
	return rs.img
}

func (rs *Raster) Save() {
	rs.stack = append(rs.stack, rs.state)
}

func (rs *Raster) Restore() {
	if len(rs.stack) == 0 {
		return
	}
	rs.state = rs.stack[len(rs.stack)-1]
	rs.stack = rs.stack[:len(rs.stack)-1]
}

func (rs *Raster) Translate(x, y float64) {
	rs.state.transform = rs.state.transform.Multiply(geo.Translate(x, y))
}

func (rs *Raster) Scale(sx, sy float64) {
	rs.state.transform = rs.state.transform.Multiply(geo.Scale(sx, sy))
}

func (rs *Raster) Rotate(radians float64) {
	rs.state.transform = rs.state.transform.Multiply(geo.Rotate(radians))
}

func (rs *Raster) BeginPath() {
	rs.paths = nil
}

func (rs *Raster) MoveTo(x, y float64) {
	rs.paths = append(rs.paths, subpath{points: []geo.Point{rs.device(x, y)}})
}

func (rs *Raster) LineTo(x, y float64) {
	if len(rs.paths) == 0 {
		rs.MoveTo(x, y)
		return
	}
	last := &rs.paths[len(rs.paths)-1]
	last.points = append(last.points, rs.device(x, y))
}

func (rs *Raster) Rect(x, y, w, h float64) {
	rs.paths = append(rs.paths, subpath{
		points: []geo.Point{rs.device(x, y), rs.device(x+w, y), rs.device(x+w, y+h), rs.device(x, y+h)},
		closed: true,
	})
}

func (rs *Raster) Ellipse(cx, cy, rx, ry float64) {
	pts := make([]geo.Point, 0, ellipseSegments)
	for i := 0; i < ellipseSegments; i++ {
		a := float64(i) / ellipseSegments * geo.DoublePI
		pts = append(pts, rs.device(cx+rx*math.Cos(a), cy+ry*math.Sin(a)))
	}
	rs.paths = append(rs.paths, subpath{points: pts, closed: true})
}

func (rs *Raster) ClosePath() {
	if len(rs.paths) == 0 {
		return
	}
	rs.paths[len(rs.paths)-1].closed = true
}

func (rs *Raster) SetFillStyle(css string)   { rs.state.fill = parseCSS(css, rs.state.fill) }
func (rs *Raster) SetStrokeStyle(css string) { rs.state.stroke = parseCSS(css, rs.state.stroke) }
func (rs *Raster) SetLineWidth(w float64)    { rs.state.lineWidth = w }

func (rs *Raster) Fill() {
	if len(rs.paths) == 0 {
		return
	}
	rs.ras.Reset(rs.img.Bounds().Dx(), rs.img.Bounds().Dy())
	for _, p := range rs.paths {
		if len(p.points) < 3 {
			continue
		}
		rs.ras.MoveTo(float32(p.points[0].X), float32(p.points[0].Y))
		for _, pt := range p.points[1:] {
			rs.ras.LineTo(float32(pt.X), float32(pt.Y))
		}
		rs.ras.ClosePath()
	}
	rs.ras.Draw(rs.img, rs.img.Bounds(), image.NewUniform(rs.state.fill), image.Point{})
}

func (rs *Raster) Stroke() {
	if len(rs.paths) == 0 || rs.state.lineWidth <= 0 {
		return
	}
	// device width follows the uniform part of the current scale
	half := rs.state.lineWidth * math.Sqrt(math.Abs(rs.state.transform.Determinant())) / 2
	rs.ras.Reset(rs.img.Bounds().Dx(), rs.img.Bounds().Dy())
	for _, p := range rs.paths {
		pts := p.points
		if p.closed && len(pts) > 1 {
			pts = append(append([]geo.Point{}, pts...), pts[0])
		}
		for i := 1; i < len(pts); i++ {
			rs.segmentQuad(pts[i-1], pts[i], half)
		}
	}
	rs.ras.Draw(rs.img, rs.img.Bounds(), image.NewUniform(rs.state.stroke), image.Point{})
}

func (rs *Raster) segmentQuad(a, b geo.Point, half float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*half, dx/l*half
	rs.ras.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	rs.ras.LineTo(float32(b.X+nx), float32(b.Y+ny))
	rs.ras.LineTo(float32(b.X-nx), float32(b.Y-ny))
	rs.ras.LineTo(float32(a.X-nx), float32(a.Y-ny))
	rs.ras.ClosePath()
}

func (rs *Raster) DrawImage(src string, x, y, w, h float64) {
	rs.Save()
	defer rs.Restore()
	rs.BeginPath()
	rs.Rect(x, y, w, h)
	rs.state.fill = color.NRGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff}
	rs.Fill()
}

// FillText draws with the fixed 7x13 face; fontSize and rotation are
// ignored, the text is placed at the transformed anchor.
func (rs *Raster) FillText(text string, x, y, fontSize float64) {
	p := rs.device(x, y)
	d := &font.Drawer{
		Dst:  rs.img,
		Src:  image.NewUniform(rs.state.fill),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(p.X)), int(math.Round(p.Y))),
	}
	d.DrawString(text)
}

func (rs *Raster) Clear() {
	draw.Draw(rs.img, rs.img.Bounds(), image.NewUniform(rs.background), image.Point{}, draw.Src)
	rs.paths = nil
	rs.stack = nil
	rs.state = defaultRasterState()
}

func (rs *Raster) device(x, y float64) geo.Point {
	return rs.state.transform.Apply(geo.Point{X: x, Y: y})
}

func parseCSS(css string, fallback color.NRGBA) color.NRGBA {
	if css == "" {
		return color.NRGBA{}
	}
	c, err := texture.ParseColor(css)
	if err != nil {
		slog.Warn("raster: unparsable paint", "css", css, "error", err)
		return fallback
	}
	c = c.Clamp()
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(c.A * 255))}
}
