package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vecedit/vecedit/internal/editor"
)

// Context menu and shortcut actions.
const (
	ActionUndo          = "undo"
	ActionRedo          = "redo"
	ActionCopy          = "copy"
	ActionPaste         = "paste"
	ActionDelete        = "delete"
	ActionSelectAll     = "selectAll"
	ActionGroup         = "group"
	ActionUngroup       = "ungroup"
	ActionFront         = "front"
	ActionBack          = "back"
	ActionForward       = "forward"
	ActionBackward      = "backward"
	ActionToggleVisible = "toggleVisible"
	ActionToggleLock    = "toggleLock"
	ActionZoomToFit     = "zoomToFit"
)

// KeyEvent is a key press as the frontend reports it. Mod is ctrl or cmd.
type KeyEvent struct {
	Key   string `json:"key"`
	Mod   bool   `json:"mod"`
	Shift bool   `json:"shift"`
}

// KeyDown runs the shortcut bound to ev. It reports whether the key was
// handled.
func (e *Engine) KeyDown(ev KeyEvent) (bool, error) {
	key := strings.ToLower(ev.Key)

	if ev.Mod {
		action := ""
		switch {
		case key == "z" && ev.Shift:
			action = ActionRedo
		case key == "z":
			action = ActionUndo
		case key == "a":
			action = ActionSelectAll
		case key == "g" && ev.Shift:
			action = ActionUngroup
		case key == "g":
			action = ActionGroup
		case key == "c":
			action = ActionCopy
		case key == "v":
			action = ActionPaste
		case key == "]":
			action = ActionFront
		case key == "[":
			action = ActionBack
		default:
			return false, nil
		}
		return true, e.ContextMenu(action)
	}

	step := 1.0
	if ev.Shift {
		step = 10
	}
	switch key {
	case "shift":
		e.SetShift(true)
		return true, nil
	case "escape":
		e.cancelGesture()
		if e.tool != nil {
			e.tool = nil
			return true, nil
		}
		e.editor.SelectedElements.Clear()
		e.editor.Render()
		return true, nil
	case "delete", "backspace":
		return true, e.ContextMenu(ActionDelete)
	case "]":
		return true, e.ContextMenu(ActionForward)
	case "[":
		return true, e.ContextMenu(ActionBackward)
	case "arrowleft":
		return true, e.nudge(-step, 0)
	case "arrowright":
		return true, e.nudge(step, 0)
	case "arrowup":
		return true, e.nudge(0, -step)
	case "arrowdown":
		return true, e.nudge(0, step)
	}
	if key == ToolSelect {
		return true, e.SetTool(ToolSelect)
	}
	if _, ok := e.tools[key]; ok {
		return true, e.SetTool(key)
	}
	return false, nil
}

// KeyUp releases modifier state.
func (e *Engine) KeyUp(ev KeyEvent) {
	if strings.EqualFold(ev.Key, "shift") {
		e.SetShift(false)
	}
}

func (e *Engine) nudge(dx, dy float64) error {
	if e.editor.SelectedElements.IsEmpty() || e.drag != nil {
		return nil
	}
	return e.editor.Move(dx, dy)
}

// ContextMenu runs a named edit action. Actions that need a selection are
// no-ops without one.
func (e *Engine) ContextMenu(action string) error {
	if e.drag != nil || (e.tool != nil && e.tool.State() == editor.ToolDragging) {
		e.logger.Debug("action ignored during gesture", "action", action)
		return nil
	}
	ed := e.editor
	var err error
	switch action {
	case ActionUndo:
		err = ed.CommandManager.Undo()
	case ActionRedo:
		err = ed.CommandManager.Redo()
	case ActionCopy:
		err = ed.Clipboard.Copy()
	case ActionPaste:
		err = ed.Clipboard.PasteAt(ed.ViewportCoordsToScene(e.pointer.X, e.pointer.Y))
	case ActionDelete:
		err = ed.Delete()
	case ActionSelectAll:
		ed.SelectedElements.SelectAll()
	case ActionGroup:
		err = ed.Group()
	case ActionUngroup:
		err = ed.Ungroup()
	case ActionFront:
		err = ed.Arrange(editor.ArrangeFront)
	case ActionBack:
		err = ed.Arrange(editor.ArrangeBack)
	case ActionForward:
		err = ed.Arrange(editor.ArrangeForward)
	case ActionBackward:
		err = ed.Arrange(editor.ArrangeBackward)
	case ActionToggleVisible:
		err = ed.ToggleVisible()
	case ActionToggleLock:
		err = ed.ToggleLock()
	case ActionZoomToFit:
		e.ZoomToFit()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if isNoop(err) {
		err = nil
	}
	ed.Render()
	return err
}

func isNoop(err error) bool {
	return errors.Is(err, editor.ErrNoSelection) || errors.Is(err, editor.ErrClipboardEmpty)
}
