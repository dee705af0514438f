package graph

import (
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/texture"
)

type CursorKind string

const (
	CursorDefault   CursorKind = "default"
	CursorMove      CursorKind = "move"
	CursorCrosshair CursorKind = "crosshair"
	CursorResize    CursorKind = "resize"
	CursorRotation  CursorKind = "rotation"
)

// Cursor is what the frontend should show over a handle. Degree orients
// resize and rotation cursors.
type Cursor struct {
	Kind   CursorKind `json:"type"`
	Degree float64    `json:"degree,omitempty"`
}

// HitTestFunc tests a viewport point against a handle. box is the current
// selection box in scene space.
type HitTestFunc func(x, y, tol float64, box geo.RectWithRotation) bool

// GetCursorFunc resolves the cursor for a handle type over box.
type GetCursorFunc func(typ string, box geo.RectWithRotation) Cursor

// ControlHandle is one interactive grip. CX/CY is its scene position;
// Graph is only the visual, repositioned in viewport space on every draw.
type ControlHandle struct {
	CX, CY    float64
	Type      string
	Graph     Graph
	Padding   float64
	HitTest   HitTestFunc
	GetCursor GetCursorFunc
}

// HandleStyle configures handle visuals.
type HandleStyle struct {
	Size        float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Padding     float64
}

// DefaultHandleStyle is what shape-provided handles start with before the
// editor applies its own style.
var DefaultHandleStyle = HandleStyle{
	Size:        7,
	Fill:        "#fcfcfc",
	Stroke:      "#1592fe",
	StrokeWidth: 2,
	Padding:     3,
}

// Paint builds a handle paint from the style colours. Unparsable colours
// leave that layer empty.
func (s HandleStyle) Paint() Paint {
	p := Paint{StrokeWidth: s.StrokeWidth}
	if c, err := texture.ParseColor(s.Fill); err == nil {
		p.Fill = []texture.Texture{texture.Solid(c)}
	}
	if c, err := texture.ParseColor(s.Stroke); err == nil {
		p.Stroke = []texture.Texture{texture.Solid(c)}
	}
	return p
}

// Apply resizes and repaints h's visual to the style, keeping its
// position and visibility.
func (s HandleStyle) Apply(h *ControlHandle) {
	if h == nil || h.Graph == nil {
		return
	}
	a := h.Graph.Attrs()
	a.Width, a.Height = s.Size, s.Size
	h.Graph.SetAttrs(a)
	h.Graph.SetPaint(s.Paint())
	h.Padding = s.Padding
}

// NewEndpointHandle returns a round grip at p with a crosshair cursor.
func NewEndpointHandle(typ string, p geo.Point, style HandleStyle) *ControlHandle {
	return &ControlHandle{
		CX:      p.X,
		CY:      p.Y,
		Type:    typ,
		Padding: style.Padding,
		Graph:   NewEllipse(Attrs{Width: style.Size, Height: style.Size}, style.Paint()),
		GetCursor: func(string, geo.RectWithRotation) Cursor {
			return Cursor{Kind: CursorCrosshair}
		},
	}
}
