package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vecedit/vecedit/internal/config"
	"github.com/vecedit/vecedit/internal/document"
	"github.com/vecedit/vecedit/internal/editor"
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/render"
)

// ToolSelect is the hotkey of the selection tool.
const ToolSelect = "v"

const fitPadding = 40

var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrUnknownAction = errors.New("unknown action")
)

// Engine is the frontend-facing facade over one editor. Pointer input is
// in viewport pixels; queries return JSON strings.
type Engine struct {
	setting *config.Setting
	logger  *slog.Logger

	recorder *render.Recorder
	editor   *editor.Editor
	tools    map[string]*editor.DrawGraphTool

	// Active draw tool, nil while selecting.
	tool *editor.DrawGraphTool
	drag *editor.TransformSession

	pointer geo.Point
	pressed bool
	docName string
}

// NewEngine creates an engine with an empty scene.
func NewEngine(setting *config.Setting, logger *slog.Logger) *Engine {
	if setting == nil {
		setting = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{setting: setting, logger: logger, recorder: render.NewRecorder()}
	e.reset()
	return e
}

func (e *Engine) reset() {
	if e.editor != nil {
		e.editor.Destroy()
	}
	e.editor = editor.New(e.setting, e.recorder, e.logger)
	e.tools = editor.NewDrawTools(e.editor)
	e.tool = nil
	e.drag = nil
	e.pressed = false
}

// SessionID returns the current editor's session id. It changes whenever
// a document is loaded.
func (e *Engine) SessionID() string { return e.editor.SessionID() }

// Editor exposes the underlying editor.
func (e *Engine) Editor() *editor.Editor { return e.editor }

// --- Commands (frontend → backend) ---

// LoadDocument replaces the scene with a document from JSON. History and
// selection start empty.
func (e *Engine) LoadDocument(jsonData string) error {
	doc, err := document.Parse([]byte(jsonData))
	if err != nil {
		return err
	}
	return e.load(doc)
}

// LoadSampleDocument replaces the scene with the built-in sample.
func (e *Engine) LoadSampleDocument() error {
	return e.load(document.NewSampleDocument())
}

func (e *Engine) load(doc *document.Document) error {
	graphs, err := doc.Build()
	if err != nil {
		return err
	}
	e.reset()
	if err := e.editor.SceneGraph.Add(graphs...); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	e.docName = doc.Name
	e.editor.Render()
	e.logger.Info("document loaded", "name", doc.Name, "graphs", len(graphs))
	return nil
}

// SetTool switches tools by hotkey. "" and ToolSelect pick selection.
// A gesture in progress is cancelled.
func (e *Engine) SetTool(hotkey string) error {
	if hotkey == "" || hotkey == ToolSelect {
		e.cancelGesture()
		e.tool = nil
		return nil
	}
	t, ok := e.tools[hotkey]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTool, hotkey)
	}
	e.cancelGesture()
	e.tool = t
	e.editor.SelectedElements.SetHoverItem(nil)
	return nil
}

// Tool returns the active tool type, "select" while no draw tool is on.
func (e *Engine) Tool() string {
	if e.tool == nil {
		return "select"
	}
	return e.tool.Type()
}

func (e *Engine) toScene(x, y float64) geo.Point {
	e.pointer = geo.Point{X: x, Y: y}
	return e.editor.ViewportCoordsToScene(x, y)
}

// PointerDown starts a gesture at viewport point (x, y). With shift the
// selection is toggled instead of replaced.
func (e *Engine) PointerDown(x, y float64, shift bool) {
	p := e.toScene(x, y)
	e.pressed = true
	if e.tool != nil {
		e.tool.OnStart(p)
		return
	}

	ed := e.editor
	if info := ed.ControlHandleManager.GetHandleInfoByPoint(p); info != nil {
		e.begin(info.HandleName, p)
		return
	}
	if !shift && ed.SelectedBox.IsPointInBox(p) {
		e.begin("", p)
		return
	}
	if hit := ed.SelectAt(p, shift); hit != nil && ed.SelectedElements.Has(hit.ID()) {
		e.begin("", p)
	}
}

func (e *Engine) begin(handle string, p geo.Point) {
	s, err := e.editor.BeginTransform(handle, p)
	if err != nil {
		e.logger.Debug("transform not started", "handle", handle, "error", err)
		return
	}
	e.drag = s
}

// PointerMove feeds the pointer to the running gesture, or updates hover
// state when idle. It returns the cursor as JSON.
func (e *Engine) PointerMove(x, y float64, shift bool) string {
	p := e.toScene(x, y)
	var cur graph.Cursor
	switch {
	case e.tool != nil:
		if e.pressed {
			e.tool.OnDrag(p, shift)
		}
		cur = graph.Cursor{Kind: graph.CursorCrosshair}
	case e.drag != nil:
		e.drag.Update(p, shift)
		cur = graph.Cursor{Kind: graph.CursorMove}
	default:
		cur = e.editor.UpdateHover(p)
	}
	data, _ := json.Marshal(cur)
	return string(data)
}

// PointerUp finishes the gesture at viewport point (x, y). A committed
// drawing switches back to selection.
func (e *Engine) PointerUp(x, y float64, shift bool) error {
	p := e.toScene(x, y)
	e.pressed = false
	switch {
	case e.tool != nil:
		e.tool.OnDrag(p, shift)
		outcome, err := e.tool.OnEnd()
		if err != nil {
			return err
		}
		e.logger.Debug("draw finished", "tool", e.tool.Type(), "outcome", outcome.String())
		if outcome == editor.OutcomeCommitted {
			e.tool = nil
		}
	case e.drag != nil:
		s := e.drag
		e.drag = nil
		s.Update(p, shift)
		return s.End()
	}
	return nil
}

func (e *Engine) cancelGesture() {
	e.pressed = false
	if e.tool != nil {
		e.tool.Cancel()
	}
	if e.drag != nil {
		e.drag.Cancel()
		e.drag = nil
	}
}

// SetShift re-applies the running draw with a changed shift state.
func (e *Engine) SetShift(shift bool) {
	if e.tool != nil {
		e.tool.SetShift(shift)
	}
}

// Zoom multiplies the zoom by factor, keeping viewport point (x, y) fixed.
func (e *Engine) Zoom(factor, x, y float64) {
	zm := e.editor.ZoomManager
	zm.ZoomAt(zm.GetZoom()*factor, geo.Point{X: x, Y: y})
	e.editor.Render()
}

// Pan scrolls the viewport by (dx, dy) pixels.
func (e *Engine) Pan(dx, dy float64) {
	e.editor.ZoomManager.Pan(dx, dy)
	e.editor.Render()
}

// ZoomToFit frames every graph in the scene.
func (e *Engine) ZoomToFit() {
	var pts []geo.Point
	for _, g := range e.editor.SceneGraph.Children() {
		b := g.BBox()
		pts = append(pts, geo.Point{X: b.X, Y: b.Y}, geo.Point{X: b.X + b.Width, Y: b.Y + b.Height})
	}
	e.editor.ZoomManager.ZoomToFit(
		geo.BBoxOfPoints(pts),
		float64(e.setting.ViewportWidth),
		float64(e.setting.ViewportHeight),
		fitPadding,
	)
	e.editor.Render()
}

// --- Queries (frontend ← backend) ---

// Render redraws the editor and returns the draw commands as JSON.
func (e *Engine) Render() string {
	e.editor.Render()
	result, err := e.recorder.JSON()
	if err != nil {
		e.logger.Error("encode draw commands", "error", err)
		return "[]"
	}
	return result
}

// HitTest returns the id of the top-most graph under viewport point
// (x, y), or "".
func (e *Engine) HitTest(x, y float64) string {
	if g := e.editor.HitAt(e.editor.ViewportCoordsToScene(x, y)); g != nil {
		return g.ID()
	}
	return ""
}

// GetSelection returns the selected ids as JSON.
func (e *Engine) GetSelection() string {
	ids := e.editor.SelectedElements.IDs()
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

// SetSelection selects the graphs with the given ids, skipping unknown ones.
func (e *Engine) SetSelection(ids []string) {
	var items []graph.Graph
	for _, id := range ids {
		if g, ok := e.editor.SceneGraph.Find(id); ok {
			items = append(items, g)
		}
	}
	e.editor.SelectedElements.SetItems(items)
	e.editor.Render()
}

// GetSelectionBounds returns the selection box in scene space as JSON.
func (e *Engine) GetSelectionBounds() string {
	box, ok := e.editor.SelectedBox.GetBox()
	if !ok {
		return "null"
	}
	data, _ := json.Marshal(box)
	return string(data)
}

// GetMenuState returns what the edit menu can offer as JSON.
func (e *Engine) GetMenuState() string {
	data, _ := json.Marshal(e.editor.MenuState())
	return string(data)
}

// GetDocument returns the scene as document JSON.
func (e *Engine) GetDocument() string {
	out, err := document.FromScene(e.docName, e.editor.SceneGraph).JSON()
	if err != nil {
		e.logger.Error("encode document", "error", err)
		return "{}"
	}
	return out
}

// GetViewport returns the editor session, zoom and origin as JSON.
func (e *Engine) GetViewport() string {
	zm := e.editor.ZoomManager
	data, _ := json.Marshal(map[string]interface{}{
		"session":   e.editor.SessionID(),
		"zoom":      zm.GetZoom(),
		"origin":    zm.Origin(),
		"panOffset": zm.PanOffset(),
	})
	return string(data)
}
