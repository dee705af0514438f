// Package editor wires the scene, history, selection, zoom and control
// handles into one interactive editing context.
package editor

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/vecedit/vecedit/internal/command"
	"github.com/vecedit/vecedit/internal/config"
	"github.com/vecedit/vecedit/internal/event"
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/render"
	"github.com/vecedit/vecedit/internal/scene"
)

// Editor owns every piece of editing state. Components get the editor
// they belong to at construction; nothing is global.
type Editor struct {
	Setting              *config.Setting
	SceneGraph           *scene.SceneGraph
	CommandManager       *command.Manager
	ZoomManager          *ZoomManager
	SelectedElements     *SelectedElements
	SelectedBox          *SelectedBox
	ControlHandleManager *ControlHandleManager
	Clipboard            *Clipboard

	surface render.Surface
	logger  *slog.Logger
	preview graph.Graph
	session string

	historySub event.SubscriptionID
}

// New builds an editor drawing into surface. A nil setting uses the
// defaults and a nil logger the default slog logger.
func New(setting *config.Setting, surface render.Surface, logger *slog.Logger) *Editor {
	if setting == nil {
		setting = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	session := uuid.New().String()
	logger = logger.With("editor", session)

	e := &Editor{
		Setting:    setting,
		SceneGraph: scene.NewSceneGraph(),
		surface:    surface,
		logger:     logger,
		session:    session,
	}
	e.CommandManager = command.NewManager(setting.HistoryLimit, logger)
	e.ZoomManager = NewZoomManager(setting)
	e.SelectedElements = NewSelectedElements(e.SceneGraph)
	e.SelectedElements.editor = e
	e.SelectedBox = NewSelectedBox(e.SelectedElements)
	e.Clipboard = NewClipboard(e)

	// selection is pruned before the handles react to the same change
	e.historySub = e.CommandManager.OnChange(func(command.Change) {
		e.SelectedElements.Prune()
	})
	e.ControlHandleManager = NewControlHandleManager(e)
	e.ControlHandleManager.BindEvents()

	logger.Debug("editor created")
	return e
}

// Destroy drops every subscription the editor made.
func (e *Editor) Destroy() {
	e.ControlHandleManager.UnbindEvents()
	e.CommandManager.OffChange(e.historySub)
}

func (e *Editor) Logger() *slog.Logger { return e.logger }

// SessionID identifies this editor instance in logs and to the frontend.
func (e *Editor) SessionID() string { return e.session }

func (e *Editor) Surface() render.Surface { return e.surface }

// SceneCoordsToViewport converts a scene point to viewport pixels.
func (e *Editor) SceneCoordsToViewport(x, y float64) geo.Point {
	return e.ZoomManager.SceneToViewport(x, y)
}

// ViewportCoordsToScene converts viewport pixels to a scene point.
func (e *Editor) ViewportCoordsToScene(x, y float64) geo.Point {
	return e.ZoomManager.ViewportToScene(x, y)
}

// SetPreview sets the live graph drawn above the scene by a tool.
func (e *Editor) SetPreview(g graph.Graph) {
	e.preview = g
}

func (e *Editor) Preview() graph.Graph { return e.preview }

// hitTolerance is the handle padding in scene units.
func (e *Editor) hitTolerance() float64 {
	return e.Setting.HandleHitPadding / e.ZoomManager.GetZoom()
}

// HitAt returns the top-most visible, unlocked graph under scene point p.
func (e *Editor) HitAt(p geo.Point) graph.Graph {
	return e.SceneGraph.GetTopHitElement(p.X, p.Y, e.hitTolerance())
}

// Render redraws the frame: scene and preview in scene space, then the
// selection box and handles in viewport space.
func (e *Editor) Render() {
	s := e.surface
	if s == nil {
		return
	}
	zm := e.ZoomManager
	zoom := zm.GetZoom()
	pan, origin := zm.PanOffset(), zm.Origin()

	s.Clear()
	s.Save()
	s.Translate(pan.X, pan.Y)
	s.Scale(zoom, zoom)
	s.Translate(-origin.X, -origin.Y)

	e.SceneGraph.Render(s)
	if e.preview != nil && e.preview.Visible() {
		e.preview.Draw(s)
	}
	if hover := e.SelectedElements.GetHoverItem(); hover != nil && !e.SelectedElements.Has(hover.ID()) {
		hover.DrawOutline(s, e.Setting.HoverStroke, e.Setting.HoverStrokeWidth/zoom)
	}
	if e.SelectedElements.Size() > 1 {
		for _, g := range e.SelectedElements.Items() {
			g.DrawOutline(s, e.Setting.SelectBoxStroke, e.Setting.SelectBoxStrokeWidth/zoom)
		}
	}
	s.Restore()

	box, ok := e.SelectedBox.GetBox()
	if !ok {
		e.ControlHandleManager.Inactive()
		return
	}
	e.drawSelectedBox(box)
	e.ControlHandleManager.Draw(box)
}

func (e *Editor) drawSelectedBox(box geo.RectWithRotation) {
	c := geo.RectToPoints(box)
	s := e.surface
	s.Save()
	defer s.Restore()
	s.BeginPath()
	for i, p := range []geo.Point{c.NW, c.NE, c.SE, c.SW} {
		vp := e.SceneCoordsToViewport(p.X, p.Y)
		if i == 0 {
			s.MoveTo(vp.X, vp.Y)
		} else {
			s.LineTo(vp.X, vp.Y)
		}
	}
	s.ClosePath()
	s.SetStrokeStyle(e.Setting.SelectBoxStroke)
	s.SetLineWidth(e.Setting.SelectBoxStrokeWidth)
	s.Stroke()
}

// UpdateHover resolves what is under scene point p: a control handle, the
// selection box or a graph. It updates hover state and returns the cursor
// the frontend should show.
func (e *Editor) UpdateHover(p geo.Point) graph.Cursor {
	if info := e.ControlHandleManager.GetHandleInfoByPoint(p); info != nil {
		return info.Cursor
	}
	inBox := e.SelectedBox.IsPointInBox(p)
	e.SelectedBox.SetHover(inBox)
	hit := e.HitAt(p)
	e.SelectedElements.SetHoverItem(hit)
	if inBox || hit != nil {
		return graph.Cursor{Kind: graph.CursorMove}
	}
	return graph.Cursor{Kind: graph.CursorDefault}
}

// SelectAt selects the graph under p. With toggle the graph is added to or
// removed from the selection instead. It returns the graph hit, if any.
func (e *Editor) SelectAt(p geo.Point, toggle bool) graph.Graph {
	hit := e.HitAt(p)
	switch {
	case hit == nil && !toggle:
		e.SelectedElements.Clear()
	case hit != nil && toggle:
		e.SelectedElements.Toggle(hit)
	case hit != nil:
		if !e.SelectedElements.Has(hit.ID()) {
			e.SelectedElements.SetItems([]graph.Graph{hit})
		}
	}
	e.Render()
	return hit
}
