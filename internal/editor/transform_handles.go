package editor

import (
	"math"
	"slices"

	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
)

// Transform handle names, in draw order.
const (
	HandleN          = "n"
	HandleE          = "e"
	HandleS          = "s"
	HandleW          = "w"
	HandleNWRotation = "nwRotation"
	HandleNERotation = "neRotation"
	HandleSERotation = "seRotation"
	HandleSWRotation = "swRotation"
	HandleNW         = "nw"
	HandleNE         = "ne"
	HandleSE         = "se"
	HandleSW         = "sw"
)

var transformHandleTypes = []string{
	HandleN, HandleE, HandleS, HandleW,
	HandleNWRotation, HandleNERotation, HandleSERotation, HandleSWRotation,
	HandleNW, HandleNE, HandleSE, HandleSW,
}

// IsTransformHandle reports whether name is one of the twelve built-in
// resize and rotation handles.
func IsTransformHandle(name string) bool {
	return slices.Contains(transformHandleTypes, name)
}

// IsRotationHandle reports whether name is one of the corner rotation
// handles.
func IsRotationHandle(name string) bool {
	switch name {
	case HandleNWRotation, HandleNERotation, HandleSERotation, HandleSWRotation:
		return true
	}
	return false
}

var resizeBaseDegree = map[string]float64{
	HandleE: 0, HandleW: 0,
	HandleN: 90, HandleS: 90,
	HandleNW: 45, HandleSE: 45,
	HandleNE: 135, HandleSW: 135,
}

var rotationBaseDegree = map[string]float64{
	HandleNWRotation: 0,
	HandleNERotation: 90,
	HandleSERotation: 180,
	HandleSWRotation: 270,
}

func getResizeCursor(typ string, box geo.RectWithRotation) graph.Cursor {
	deg := resizeBaseDegree[typ] + geo.RadianToDegree(box.Rotation)
	return graph.Cursor{Kind: graph.CursorResize, Degree: math.Mod(geo.NormalizeDegree(deg), 180)}
}

func getRotationCursor(typ string, box geo.RectWithRotation) graph.Cursor {
	deg := rotationBaseDegree[typ] + geo.RadianToDegree(box.Rotation)
	return graph.Cursor{Kind: graph.CursorRotation, Degree: geo.NormalizeDegree(deg)}
}

// handleStyle is the handle look configured in the settings.
func (e *Editor) handleStyle() graph.HandleStyle {
	st := e.Setting
	return graph.HandleStyle{
		Size:        st.HandleSize,
		Fill:        st.HandleFill,
		Stroke:      st.HandleStroke,
		StrokeWidth: st.HandleStrokeWidth,
		Padding:     st.HandleHitPadding,
	}
}

// createTransformHandles builds the twelve handles with zero positions.
// Rotation handles ignore points inside the selection box.
func (e *Editor) createTransformHandles() map[string]*graph.ControlHandle {
	st := e.Setting
	style := e.handleStyle()
	square := func() graph.Attrs {
		return graph.Attrs{Width: style.Size, Height: style.Size}
	}

	handles := make(map[string]*graph.ControlHandle, len(transformHandleTypes))
	for _, typ := range []string{HandleNW, HandleNE, HandleSE, HandleSW} {
		handles[typ] = &graph.ControlHandle{
			Type:      typ,
			Graph:     graph.NewRect(square(), style.Paint()),
			Padding:   style.Padding,
			GetCursor: getResizeCursor,
		}
	}
	for _, typ := range []string{HandleN, HandleE, HandleS, HandleW} {
		g := graph.NewRect(square(), style.Paint())
		g.SetVisible(false)
		handles[typ] = &graph.ControlHandle{
			Type:      typ,
			Graph:     g,
			Padding:   style.Padding,
			GetCursor: getResizeCursor,
		}
	}
	for _, typ := range []string{HandleNWRotation, HandleNERotation, HandleSERotation, HandleSWRotation} {
		g := graph.NewRect(graph.Attrs{Width: st.RotationHandleSize, Height: st.RotationHandleSize}, graph.Paint{})
		g.SetVisible(false)
		handles[typ] = &graph.ControlHandle{
			Type:      typ,
			Graph:     g,
			GetCursor: getRotationCursor,
			HitTest: func(x, y, tol float64, box geo.RectWithRotation) bool {
				if !g.HitTest(x, y, tol) {
					return false
				}
				vbox := e.ZoomManager.RectToViewport(box)
				return !vbox.ContainsPoint(geo.Point{X: x, Y: y}, 0)
			},
		}
	}
	return handles
}
