// Package scene owns the ordered tree of graphs that make up a document.
package scene

import (
	"errors"
	"fmt"

	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/render"
)

var (
	ErrNotFound  = errors.New("graph not found")
	ErrDuplicate = errors.New("graph already in scene")
	ErrNotGroup  = errors.New("parent is not a group")
	ErrBadOrder  = errors.New("order is not a permutation of the siblings")
)

// SceneGraph holds the top-level graphs in z-order: later entries are
// drawn on top. Editor code mutates it only from inside commands.
type SceneGraph struct {
	children []graph.Graph
}

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{}
}

// Children returns a copy of the top-level sequence.
func (sg *SceneGraph) Children() []graph.Graph {
	return append([]graph.Graph(nil), sg.children...)
}

// Len returns the number of top-level graphs.
func (sg *SceneGraph) Len() int {
	return len(sg.children)
}

// Find looks a graph up anywhere in the tree.
func (sg *SceneGraph) Find(id string) (graph.Graph, bool) {
	g, _, _, ok := find(sg.children, nil, id)
	return g, ok
}

// Locate returns the id of the graph's parent ("" for top level) and its
// index among its siblings.
func (sg *SceneGraph) Locate(id string) (parentID string, index int, err error) {
	_, parent, idx, ok := find(sg.children, nil, id)
	if !ok {
		return "", 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if parent != nil {
		parentID = parent.ID()
	}
	return parentID, idx, nil
}

func find(list []graph.Graph, parent *graph.Group, id string) (graph.Graph, *graph.Group, int, bool) {
	for i, g := range list {
		if g.ID() == id {
			return g, parent, i, true
		}
		if grp, ok := g.(*graph.Group); ok {
			if found, p, idx, ok := find(grp.Children(), grp, id); ok {
				return found, p, idx, true
			}
		}
	}
	return nil, nil, 0, false
}

// Siblings returns the children of parentID ("" for top level).
func (sg *SceneGraph) Siblings(parentID string) ([]graph.Graph, error) {
	if parentID == "" {
		return sg.Children(), nil
	}
	grp, err := sg.group(parentID)
	if err != nil {
		return nil, err
	}
	return grp.Children(), nil
}

// SetSiblings replaces the order of parentID's children. order must hold
// exactly the current children.
func (sg *SceneGraph) SetSiblings(parentID string, order []graph.Graph) error {
	cur, err := sg.Siblings(parentID)
	if err != nil {
		return err
	}
	if !samePermutation(cur, order) {
		return ErrBadOrder
	}
	sg.setSiblings(parentID, order)
	return nil
}

func (sg *SceneGraph) setSiblings(parentID string, list []graph.Graph) {
	if parentID == "" {
		sg.children = append([]graph.Graph(nil), list...)
		return
	}
	// callers have resolved parentID already
	grp, _ := sg.group(parentID)
	grp.SetChildren(list)
}

func (sg *SceneGraph) group(id string) (*graph.Group, error) {
	g, ok := sg.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	grp, ok := g.(*graph.Group)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotGroup, id)
	}
	return grp, nil
}

// Insert places g at index among parentID's children. An index outside
// the sequence appends.
func (sg *SceneGraph) Insert(parentID string, index int, g graph.Graph) error {
	for _, leaf := range append([]graph.Graph{g}, graph.Leaves([]graph.Graph{g})...) {
		if _, ok := sg.Find(leaf.ID()); ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, leaf.ID())
		}
	}
	list, err := sg.Siblings(parentID)
	if err != nil {
		return err
	}
	if index < 0 || index > len(list) {
		index = len(list)
	}
	list = append(list[:index], append([]graph.Graph{g}, list[index:]...)...)
	sg.setSiblings(parentID, list)
	return nil
}

// Add appends graphs at the top of the z-order.
func (sg *SceneGraph) Add(gs ...graph.Graph) error {
	for _, g := range gs {
		if err := sg.Insert("", -1, g); err != nil {
			return err
		}
	}
	return nil
}

// Remove detaches the graph and reports where it was.
func (sg *SceneGraph) Remove(id string) (parentID string, index int, err error) {
	parentID, index, err = sg.Locate(id)
	if err != nil {
		return "", 0, err
	}
	list, err := sg.Siblings(parentID)
	if err != nil {
		return "", 0, err
	}
	list = append(list[:index], list[index+1:]...)
	sg.setSiblings(parentID, list)
	return parentID, index, nil
}

// Render draws every visible graph in z-order.
func (sg *SceneGraph) Render(s render.Surface) {
	for _, g := range sg.children {
		if g.Visible() {
			g.Draw(s)
		}
	}
}

// GetTopHitElement returns the front-most visible, unlocked top-level
// graph under (x, y), or nil.
func (sg *SceneGraph) GetTopHitElement(x, y, tol float64) graph.Graph {
	for i := len(sg.children) - 1; i >= 0; i-- {
		g := sg.children[i]
		if !g.Visible() || g.Locked() {
			continue
		}
		if g.HitTest(x, y, tol) {
			return g
		}
	}
	return nil
}

func samePermutation(a, b []graph.Graph) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, g := range a {
		seen[g.ID()]++
	}
	for _, g := range b {
		seen[g.ID()]--
		if seen[g.ID()] < 0 {
			return false
		}
	}
	return true
}
