package editor

import (
	"github.com/vecedit/vecedit/internal/command"
	"github.com/vecedit/vecedit/internal/event"
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
)

// minNeswSize is the on-screen size below which edge handles move outside
// the selection box.
const minNeswSize = 40

// HandleInfo is the result of a handle hit test.
type HandleInfo struct {
	HandleName string       `json:"handleName"`
	Cursor     graph.Cursor `json:"cursor"`
}

// ControlHandleManager positions, draws and hit-tests the transform
// handles and the custom handles of a single selected graph.
type ControlHandleManager struct {
	editor               *Editor
	visible              bool
	customHandlesVisible bool
	transformHandles     map[string]*graph.ControlHandle
	customHandles        []*graph.ControlHandle

	subs struct {
		hoverItem event.SubscriptionID
		items     event.SubscriptionID
		hoverBox  event.SubscriptionID
		zoom      event.SubscriptionID
		history   event.SubscriptionID
	}
	bound bool
}

func NewControlHandleManager(e *Editor) *ControlHandleManager {
	return &ControlHandleManager{
		editor:               e,
		customHandlesVisible: true,
		transformHandles:     e.createTransformHandles(),
	}
}

func (m *ControlHandleManager) onHoverItemChange() {
	e := m.editor
	items := e.SelectedElements.Items()
	if len(items) == 1 && (sameGraph(e.SelectedElements.GetHoverItem(), items[0]) || e.SelectedBox.IsHover()) {
		handles := items[0].GetControlHandles(e.ZoomManager.GetZoom(), true)
		style := e.handleStyle()
		for _, h := range handles {
			style.Apply(h)
		}
		m.SetCustomHandles(handles)
	} else {
		m.SetCustomHandles(nil)
	}
	e.Render()
}

// BindEvents subscribes to selection, hover, zoom and history changes.
// Each of them recomputes the custom handles and redraws.
func (m *ControlHandleManager) BindEvents() {
	if m.bound {
		return
	}
	e := m.editor
	m.subs.hoverItem = e.SelectedElements.OnHoverItemChange(func(HoverItemChange) { m.onHoverItemChange() })
	m.subs.items = e.SelectedElements.OnItemsChange(func([]graph.Graph) { m.onHoverItemChange() })
	m.subs.hoverBox = e.SelectedBox.OnHoverChange(func(bool) { m.onHoverItemChange() })
	m.subs.zoom = e.ZoomManager.OnZoomChange(func(float64) { m.onHoverItemChange() })
	m.subs.history = e.CommandManager.OnChange(func(command.Change) { m.onHoverItemChange() })
	m.bound = true
}

func (m *ControlHandleManager) UnbindEvents() {
	if !m.bound {
		return
	}
	e := m.editor
	e.SelectedElements.OffHoverItemChange(m.subs.hoverItem)
	e.SelectedElements.OffItemsChange(m.subs.items)
	e.SelectedBox.OffHoverChange(m.subs.hoverBox)
	e.ZoomManager.OffZoomChange(m.subs.zoom)
	e.CommandManager.OffChange(m.subs.history)
	m.bound = false
}

// Inactive hides the handles from hit testing until the next Draw.
func (m *ControlHandleManager) Inactive() {
	m.visible = false
}

// IsActive reports whether handles were drawn and not deactivated since.
func (m *ControlHandleManager) IsActive() bool {
	return m.visible
}

// Handle returns a built-in transform handle by name.
func (m *ControlHandleManager) Handle(name string) (*graph.ControlHandle, bool) {
	h, ok := m.transformHandles[name]
	return h, ok
}

// handlePoints computes the scene position of every transform handle.
func (m *ControlHandleManager) handlePoints(rect geo.RectWithRotation) map[string]geo.Point {
	st := m.editor.Setting
	zoom := m.editor.ZoomManager.GetZoom()

	corners := geo.RectToPoints(rect)
	offset := st.HandleSize / 2 / zoom
	rotation := geo.RectToPoints(geo.OffsetRect(rect, offset, offset, offset, offset))

	var top, right, bottom, left float64
	if rect.Width*zoom < minNeswSize {
		right = st.NeswHandleWidth / 2 / zoom
		left = right
	}
	if rect.Height*zoom < minNeswSize {
		top = st.NeswHandleWidth / 2 / zoom
		bottom = top
	}
	mid := geo.RectToMidPoints(geo.OffsetRect(rect, top, right, bottom, left))

	return map[string]geo.Point{
		HandleNW:         corners.NW,
		HandleNE:         corners.NE,
		HandleSE:         corners.SE,
		HandleSW:         corners.SW,
		HandleN:          mid.N,
		HandleE:          mid.E,
		HandleS:          mid.S,
		HandleW:          mid.W,
		HandleNWRotation: rotation.NW,
		HandleNERotation: rotation.NE,
		HandleSERotation: rotation.SE,
		HandleSWRotation: rotation.SW,
	}
}

func (m *ControlHandleManager) handles() []*graph.ControlHandle {
	out := make([]*graph.ControlHandle, 0, len(transformHandleTypes)+len(m.customHandles))
	for _, typ := range transformHandleTypes {
		if h, ok := m.transformHandles[typ]; ok {
			out = append(out, h)
		}
	}
	if m.customHandlesVisible {
		out = append(out, m.customHandles...)
	}
	return out
}

// Draw positions every handle around rect (scene space) and draws the
// visible ones in viewport space.
func (m *ControlHandleManager) Draw(rect geo.RectWithRotation) {
	m.visible = true
	e := m.editor
	st := e.Setting
	zoom := e.ZoomManager.GetZoom()

	points := m.handlePoints(rect)
	for _, typ := range transformHandleTypes {
		h, ok := m.transformHandles[typ]
		if !ok {
			e.logger.Warn("transform handle not found", "type", typ)
			continue
		}
		p := points[typ]
		h.CX, h.CY = p.X, p.Y
	}

	edgeLen := rect.Width*zoom - st.HandleSize - st.HandleStrokeWidth
	edgeHeight := rect.Height*zoom - st.HandleSize - st.HandleStrokeWidth
	m.resizeHandle(HandleN, edgeLen, st.NeswHandleWidth)
	m.resizeHandle(HandleS, edgeLen, st.NeswHandleWidth)
	m.resizeHandle(HandleW, st.NeswHandleWidth, edgeHeight)
	m.resizeHandle(HandleE, st.NeswHandleWidth, edgeHeight)

	for _, h := range m.handles() {
		vp := e.ZoomManager.SceneToViewport(h.CX, h.CY)
		a := h.Graph.Attrs()
		a.X = vp.X - a.Width/2
		a.Y = vp.Y - a.Height/2
		a.Rotation = rect.Rotation
		h.Graph.SetAttrs(a)
		if !h.Graph.Visible() {
			continue
		}
		e.surface.Save()
		h.Graph.Draw(e.surface)
		e.surface.Restore()
	}
}

func (m *ControlHandleManager) resizeHandle(typ string, w, h float64) {
	handle, ok := m.transformHandles[typ]
	if !ok {
		m.editor.logger.Warn("transform handle not found", "type", typ)
		return
	}
	a := handle.Graph.Attrs()
	a.Width, a.Height = w, h
	handle.Graph.SetAttrs(a)
}

// GetHandleInfoByPoint returns the top-most handle under scene point p,
// testing in reverse draw order. It returns nil while handles are
// inactive.
func (m *ControlHandleManager) GetHandleInfoByPoint(p geo.Point) *HandleInfo {
	if !m.visible {
		return nil
	}
	e := m.editor
	vp := e.ZoomManager.SceneToViewport(p.X, p.Y)
	box, _ := e.SelectedBox.GetBox()

	handles := m.handles()
	for i := len(handles) - 1; i >= 0; i-- {
		h := handles[i]
		if h == nil {
			e.logger.Warn("control handle missing", "index", i)
			continue
		}
		var hit bool
		if h.HitTest != nil {
			hit = h.HitTest(vp.X, vp.Y, h.Padding, box)
		} else {
			hit = h.Graph.HitTest(vp.X, vp.Y, h.Padding)
		}
		if hit {
			return &HandleInfo{HandleName: h.Type, Cursor: h.GetCursor(h.Type, box)}
		}
	}
	return nil
}

// SetCustomHandles replaces the shape-provided handles.
func (m *ControlHandleManager) SetCustomHandles(handles []*graph.ControlHandle) {
	m.customHandles = handles
}

func (m *ControlHandleManager) HasCustomHandles() bool {
	return len(m.customHandles) > 0
}

// CustomHandles returns the shape-provided handles, visible or not.
func (m *ControlHandleManager) CustomHandles() []*graph.ControlHandle {
	return append([]*graph.ControlHandle(nil), m.customHandles...)
}

func (m *ControlHandleManager) ShowCustomHandles() {
	if !m.customHandlesVisible && m.HasCustomHandles() {
		m.customHandlesVisible = true
		m.editor.Render()
	}
}

func (m *ControlHandleManager) HideCustomHandles() {
	if m.customHandlesVisible && m.HasCustomHandles() {
		m.customHandlesVisible = false
		m.editor.Render()
	}
}
