package editor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vecedit/vecedit/internal/command"
	"github.com/vecedit/vecedit/internal/graph"
)

// ErrNoSelection is returned by operations that need selected graphs.
var ErrNoSelection = errors.New("nothing selected")

// ArrangeType is a z-order move.
type ArrangeType string

const (
	ArrangeFront    ArrangeType = "front"
	ArrangeBack     ArrangeType = "back"
	ArrangeForward  ArrangeType = "forward"
	ArrangeBackward ArrangeType = "backward"
)

// ArrangeOrder returns ids reordered by typ. Selected ids move; the rest
// keep their relative order.
//
//   - front: selected ids go to the end, keeping their order
//   - back: selected ids go to the start, keeping their order
//   - forward/backward: each selected id swaps with the next/previous
//     unselected one, so adjacent selected runs move together
func ArrangeOrder(ids []string, selected map[string]bool, typ ArrangeType) []string {
	out := append([]string(nil), ids...)
	switch typ {
	case ArrangeFront, ArrangeBack:
		var picked, rest []string
		for _, id := range ids {
			if selected[id] {
				picked = append(picked, id)
			} else {
				rest = append(rest, id)
			}
		}
		if typ == ArrangeFront {
			return append(rest, picked...)
		}
		return append(picked, rest...)
	case ArrangeForward:
		for i := len(out) - 2; i >= 0; i-- {
			if selected[out[i]] && !selected[out[i+1]] {
				out[i], out[i+1] = out[i+1], out[i]
			}
		}
	case ArrangeBackward:
		for i := 1; i < len(out); i++ {
			if selected[out[i]] && !selected[out[i-1]] {
				out[i], out[i-1] = out[i-1], out[i]
			}
		}
	}
	return out
}

// Arrange moves the selection in z-order within each parent and records
// one command. Nothing is recorded when the order does not change.
func (e *Editor) Arrange(typ ArrangeType) error {
	items := e.SelectedElements.Items()
	if len(items) == 0 {
		return ErrNoSelection
	}
	byParent := make(map[string]map[string]bool)
	var parents []string
	for _, g := range items {
		parentID, _, err := e.SceneGraph.Locate(g.ID())
		if err != nil {
			return err
		}
		if byParent[parentID] == nil {
			byParent[parentID] = make(map[string]bool)
			parents = append(parents, parentID)
		}
		byParent[parentID][g.ID()] = true
	}

	var reorders []command.Reorder
	for _, parentID := range parents {
		siblings, err := e.SceneGraph.Siblings(parentID)
		if err != nil {
			return err
		}
		before := make([]string, len(siblings))
		for i, g := range siblings {
			before[i] = g.ID()
		}
		after := ArrangeOrder(before, byParent[parentID], typ)
		if !slices.Equal(before, after) {
			reorders = append(reorders, command.Reorder{ParentID: parentID, Before: before, After: after})
		}
	}
	if len(reorders) == 0 {
		return nil
	}
	return e.CommandManager.PushCommand(command.NewArrange(e.SceneGraph, "Arrange "+string(typ), reorders))
}

// ToggleVisible shows every selected graph when any of them is hidden,
// otherwise hides them all.
func (e *Editor) ToggleVisible() error {
	items := e.SelectedElements.Items()
	if len(items) == 0 {
		return ErrNoSelection
	}
	show := false
	for _, g := range items {
		if !g.Visible() {
			show = true
			break
		}
	}
	cmd, err := command.NewSetFlag(e.SceneGraph, "Toggle Visible", command.FlagVisible, e.SelectedElements.IDs(), show)
	if err != nil {
		return err
	}
	return e.CommandManager.PushCommand(cmd)
}

// ToggleLock locks every selected graph when any of them is unlocked,
// otherwise unlocks them all.
func (e *Editor) ToggleLock() error {
	items := e.SelectedElements.Items()
	if len(items) == 0 {
		return ErrNoSelection
	}
	lock := false
	for _, g := range items {
		if !g.Locked() {
			lock = true
			break
		}
	}
	cmd, err := command.NewSetFlag(e.SceneGraph, "Toggle Lock", command.FlagLocked, e.SelectedElements.IDs(), lock)
	if err != nil {
		return err
	}
	return e.CommandManager.PushCommand(cmd)
}

// Delete removes the selection from the scene.
func (e *Editor) Delete() error {
	if e.SelectedElements.IsEmpty() {
		return ErrNoSelection
	}
	ids := e.SelectedElements.IDs()
	if err := e.CommandManager.PushCommand(command.NewRemoveGraphs(e.SceneGraph, "Delete", ids)); err != nil {
		return err
	}
	e.SelectedElements.Clear()
	return nil
}

// Move translates the selection by dx, dy scene units.
func (e *Editor) Move(dx, dy float64) error {
	if e.SelectedElements.IsEmpty() {
		return ErrNoSelection
	}
	if dx == 0 && dy == 0 {
		return nil
	}
	var changes []command.AttrsChange
	for _, g := range graph.Leaves(e.SelectedElements.Items()) {
		before := g.Attrs()
		after := before
		after.X += dx
		after.Y += dy
		changes = append(changes, command.AttrsChange{ID: g.ID(), Before: before, After: after})
	}
	return e.CommandManager.PushCommand(command.NewSetAttrs(e.SceneGraph, "Move", changes))
}

// Group wraps the selection in a new group and selects it.
func (e *Editor) Group() error {
	if e.SelectedElements.IsEmpty() {
		return ErrNoSelection
	}
	cmd, err := command.NewGroup(e.SceneGraph, "Group", e.SelectedElements.IDs())
	if err != nil {
		return fmt.Errorf("group selection: %w", err)
	}
	if err := e.CommandManager.PushCommand(cmd); err != nil {
		return err
	}
	e.SelectedElements.SetItems([]graph.Graph{cmd.Graph()})
	return nil
}

// Ungroup dissolves the selected group and selects its children.
func (e *Editor) Ungroup() error {
	items := e.SelectedElements.Items()
	if len(items) != 1 || items[0].Type() != graph.TypeGroup {
		return ErrNoSelection
	}
	cmd, err := command.NewUngroup(e.SceneGraph, "Ungroup", items[0].ID())
	if err != nil {
		return err
	}
	if err := e.CommandManager.PushCommand(cmd); err != nil {
		return err
	}
	e.SelectedElements.SetItems(cmd.Children())
	return nil
}

// Group groups the selected graphs through the owning editor.
func (se *SelectedElements) Group() error {
	return se.editor.Group()
}

// RemoveFromScene deletes the selected graphs through the owning editor.
func (se *SelectedElements) RemoveFromScene() error {
	return se.editor.Delete()
}

// MenuState is what a context menu needs to enable its entries.
type MenuState struct {
	CanUndo      bool   `json:"canUndo"`
	CanRedo      bool   `json:"canRedo"`
	UndoDesc     string `json:"undoDesc,omitempty"`
	RedoDesc     string `json:"redoDesc,omitempty"`
	HasSelection bool   `json:"hasSelection"`
	CanUngroup   bool   `json:"canUngroup"`
	CanPaste     bool   `json:"canPaste"`
	CanSelectAll bool   `json:"canSelectAll"`
}

func (e *Editor) MenuState() MenuState {
	items := e.SelectedElements.Items()
	return MenuState{
		CanUndo:      e.CommandManager.CanUndo(),
		CanRedo:      e.CommandManager.CanRedo(),
		UndoDesc:     e.CommandManager.UndoDesc(),
		RedoDesc:     e.CommandManager.RedoDesc(),
		HasSelection: len(items) > 0,
		CanUngroup:   len(items) == 1 && items[0].Type() == graph.TypeGroup,
		CanPaste:     e.Clipboard.HasData(),
		CanSelectAll: e.SceneGraph.Len() > 0,
	}
}
