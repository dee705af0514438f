package editor

import (
	"sort"

	"github.com/vecedit/vecedit/internal/event"
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/scene"
)

// HoverItemChange is emitted when the hovered graph changes. Either side
// may be nil.
type HoverItemChange struct {
	Prev graph.Graph
	Item graph.Graph
}

// SelectedElements is the current selection. Items are kept in scene
// order, back to front.
type SelectedElements struct {
	editor    *Editor
	sg        *scene.SceneGraph
	items     []graph.Graph
	hoverItem graph.Graph

	hoverItemChange event.Emitter[HoverItemChange]
	itemsChange     event.Emitter[[]graph.Graph]
}

func NewSelectedElements(sg *scene.SceneGraph) *SelectedElements {
	return &SelectedElements{sg: sg}
}

func (se *SelectedElements) Items() []graph.Graph {
	return append([]graph.Graph(nil), se.items...)
}

func (se *SelectedElements) Size() int     { return len(se.items) }
func (se *SelectedElements) IsEmpty() bool { return len(se.items) == 0 }

// IDs returns the ids of the selected graphs in scene order.
func (se *SelectedElements) IDs() []string {
	ids := make([]string, len(se.items))
	for i, g := range se.items {
		ids[i] = g.ID()
	}
	return ids
}

func (se *SelectedElements) Has(id string) bool {
	for _, g := range se.items {
		if g.ID() == id {
			return true
		}
	}
	return false
}

// SetItems replaces the selection. Duplicates and graphs that are not in
// the scene are dropped.
func (se *SelectedElements) SetItems(items []graph.Graph) {
	order := sceneOrder(se.sg)
	seen := make(map[string]bool, len(items))
	next := make([]graph.Graph, 0, len(items))
	for _, g := range items {
		if g == nil || seen[g.ID()] {
			continue
		}
		if _, ok := order[g.ID()]; !ok {
			continue
		}
		seen[g.ID()] = true
		next = append(next, g)
	}
	sort.SliceStable(next, func(i, j int) bool {
		return order[next[i].ID()] < order[next[j].ID()]
	})
	if sameIDs(se.items, next) {
		return
	}
	se.items = next
	se.itemsChange.Emit(se.Items())
}

// Toggle adds g to the selection or removes it.
func (se *SelectedElements) Toggle(g graph.Graph) {
	if se.Has(g.ID()) {
		rest := make([]graph.Graph, 0, len(se.items))
		for _, it := range se.items {
			if it.ID() != g.ID() {
				rest = append(rest, it)
			}
		}
		se.SetItems(rest)
		return
	}
	se.SetItems(append(se.Items(), g))
}

func (se *SelectedElements) Clear() {
	se.SetItems(nil)
}

// SelectAll selects every visible, unlocked top-level graph.
func (se *SelectedElements) SelectAll() {
	var all []graph.Graph
	for _, g := range se.sg.Children() {
		if g.Visible() && !g.Locked() {
			all = append(all, g)
		}
	}
	se.SetItems(all)
}

// Prune drops selected and hovered graphs that left the scene, e.g. after
// an undo.
func (se *SelectedElements) Prune() {
	if se.hoverItem != nil {
		if _, ok := se.sg.Find(se.hoverItem.ID()); !ok {
			se.SetHoverItem(nil)
		}
	}
	se.SetItems(se.items)
}

func (se *SelectedElements) GetHoverItem() graph.Graph { return se.hoverItem }

// SetHoverItem records the hovered graph and emits hoverItemChange when it
// differs from the previous one.
func (se *SelectedElements) SetHoverItem(g graph.Graph) {
	if sameGraph(se.hoverItem, g) {
		return
	}
	prev := se.hoverItem
	se.hoverItem = g
	se.hoverItemChange.Emit(HoverItemChange{Prev: prev, Item: g})
}

func (se *SelectedElements) OnHoverItemChange(fn func(HoverItemChange)) event.SubscriptionID {
	return se.hoverItemChange.On(fn)
}

func (se *SelectedElements) OffHoverItemChange(id event.SubscriptionID) {
	se.hoverItemChange.Off(id)
}

func (se *SelectedElements) OnItemsChange(fn func([]graph.Graph)) event.SubscriptionID {
	return se.itemsChange.On(fn)
}

func (se *SelectedElements) OffItemsChange(id event.SubscriptionID) {
	se.itemsChange.Off(id)
}

// sceneOrder numbers every graph in the tree in draw order.
func sceneOrder(sg *scene.SceneGraph) map[string]int {
	order := make(map[string]int)
	var walk func([]graph.Graph)
	walk = func(gs []graph.Graph) {
		for _, g := range gs {
			order[g.ID()] = len(order)
			if grp, ok := g.(*graph.Group); ok {
				walk(grp.Children())
			}
		}
	}
	walk(sg.Children())
	return order
}

func sameIDs(a, b []graph.Graph) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID() != b[i].ID() {
			return false
		}
	}
	return true
}

func sameGraph(a, b graph.Graph) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// SelectedBox derives the selection's bounding box and tracks whether the
// pointer is over it.
type SelectedBox struct {
	selected    *SelectedElements
	hover       bool
	hoverChange event.Emitter[bool]
}

func NewSelectedBox(selected *SelectedElements) *SelectedBox {
	return &SelectedBox{selected: selected}
}

// GetBox returns the box of the current selection. A single graph keeps
// its own rotation; several graphs give the axis-aligned box around all
// their rotated corners.
func (sb *SelectedBox) GetBox() (geo.RectWithRotation, bool) {
	items := sb.selected.items
	switch len(items) {
	case 0:
		return geo.RectWithRotation{}, false
	case 1:
		return items[0].RectWithRotation(), true
	}
	pts := make([]geo.Point, 0, 4*len(items))
	for _, g := range items {
		c := geo.RectToPoints(g.RectWithRotation())
		pts = append(pts, c.NW, c.NE, c.SE, c.SW)
	}
	return geo.RectWithRotation{Rect: geo.BBoxOfPoints(pts)}, true
}

// IsPointInBox reports whether scene point p is inside the box.
func (sb *SelectedBox) IsPointInBox(p geo.Point) bool {
	box, ok := sb.GetBox()
	if !ok {
		return false
	}
	return box.ContainsPoint(p, 0)
}

func (sb *SelectedBox) IsHover() bool { return sb.hover }

// SetHover updates the hover flag and emits hoverChange when it flips.
func (sb *SelectedBox) SetHover(hover bool) {
	if sb.hover == hover {
		return
	}
	sb.hover = hover
	sb.hoverChange.Emit(hover)
}

func (sb *SelectedBox) OnHoverChange(fn func(bool)) event.SubscriptionID {
	return sb.hoverChange.On(fn)
}

func (sb *SelectedBox) OffHoverChange(id event.SubscriptionID) {
	sb.hoverChange.Off(id)
}
