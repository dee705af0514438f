package command

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/scene"
	"github.com/vecedit/vecedit/internal/typeid"
)

var (
	ErrEmpty       = errors.New("command has no targets")
	ErrMixedParent = errors.New("graphs do not share a parent")
)

type meta struct {
	id   string
	desc string
}

func newMeta(desc string) meta {
	return meta{id: typeid.NewCommandID(), desc: desc}
}

func (m meta) ID() string   { return m.id }
func (m meta) Desc() string { return m.desc }

func findAll(sg *scene.SceneGraph, ids []string) ([]graph.Graph, error) {
	out := make([]graph.Graph, 0, len(ids))
	for _, id := range ids {
		g, ok := sg.Find(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", scene.ErrNotFound, id)
		}
		out = append(out, g)
	}
	return out, nil
}

func idsOf(gs []graph.Graph) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.ID()
	}
	return out
}

// AddGraphs appends detached graphs to the top of the scene.
type AddGraphs struct {
	meta
	sg     *scene.SceneGraph
	graphs []graph.Graph
}

func NewAddGraphs(sg *scene.SceneGraph, desc string, graphs []graph.Graph) *AddGraphs {
	return &AddGraphs{meta: newMeta(desc), sg: sg, graphs: append([]graph.Graph(nil), graphs...)}
}

func (c *AddGraphs) Apply() error {
	if len(c.graphs) == 0 {
		return ErrEmpty
	}
	// every node of every tree is checked before the first insert
	seen := make(map[string]bool)
	for _, g := range c.graphs {
		for _, n := range subtree(g) {
			if _, ok := c.sg.Find(n.ID()); ok || seen[n.ID()] {
				return fmt.Errorf("%w: %s", scene.ErrDuplicate, n.ID())
			}
			seen[n.ID()] = true
		}
	}
	return c.sg.Add(c.graphs...)
}

// subtree returns g followed by all of its descendants.
func subtree(g graph.Graph) []graph.Graph {
	out := []graph.Graph{g}
	if grp, ok := g.(*graph.Group); ok {
		for _, c := range grp.Children() {
			out = append(out, subtree(c)...)
		}
	}
	return out
}

func (c *AddGraphs) Revert() error {
	if _, err := findAll(c.sg, idsOf(c.graphs)); err != nil {
		return err
	}
	for i := len(c.graphs) - 1; i >= 0; i-- {
		if _, _, err := c.sg.Remove(c.graphs[i].ID()); err != nil {
			return err
		}
	}
	return nil
}

// Graphs returns the graphs this command adds.
func (c *AddGraphs) Graphs() []graph.Graph {
	return append([]graph.Graph(nil), c.graphs...)
}

type placement struct {
	graph    graph.Graph
	parentID string
	index    int
}

// RemoveGraphs detaches graphs and restores them at their old positions
// on revert.
type RemoveGraphs struct {
	meta
	sg      *scene.SceneGraph
	ids     []string
	removed []placement
}

func NewRemoveGraphs(sg *scene.SceneGraph, desc string, ids []string) *RemoveGraphs {
	return &RemoveGraphs{meta: newMeta(desc), sg: sg, ids: append([]string(nil), ids...)}
}

func (c *RemoveGraphs) Apply() error {
	if len(c.ids) == 0 {
		return ErrEmpty
	}
	gs, err := findAll(c.sg, c.ids)
	if err != nil {
		return err
	}
	c.removed = c.removed[:0]
	for _, g := range gs {
		parentID, index, err := c.sg.Remove(g.ID())
		if err != nil {
			// a graph removed earlier in this loop was an ancestor
			if errors.Is(err, scene.ErrNotFound) {
				continue
			}
			return err
		}
		c.removed = append(c.removed, placement{graph: g, parentID: parentID, index: index})
	}
	return nil
}

func (c *RemoveGraphs) Revert() error {
	for i := len(c.removed) - 1; i >= 0; i-- {
		p := c.removed[i]
		if err := c.sg.Insert(p.parentID, p.index, p.graph); err != nil {
			return err
		}
	}
	return nil
}

// AttrsChange is one graph's geometry before and after.
type AttrsChange struct {
	ID     string
	Before graph.Attrs
	After  graph.Attrs
}

// SetAttrs writes geometry to a set of graphs.
type SetAttrs struct {
	meta
	sg      *scene.SceneGraph
	changes []AttrsChange
}

func NewSetAttrs(sg *scene.SceneGraph, desc string, changes []AttrsChange) *SetAttrs {
	return &SetAttrs{meta: newMeta(desc), sg: sg, changes: append([]AttrsChange(nil), changes...)}
}

func (c *SetAttrs) Apply() error {
	return c.write(func(ch AttrsChange) graph.Attrs { return ch.After })
}
func (c *SetAttrs) Revert() error {
	return c.write(func(ch AttrsChange) graph.Attrs { return ch.Before })
}

func (c *SetAttrs) write(pick func(AttrsChange) graph.Attrs) error {
	if len(c.changes) == 0 {
		return ErrEmpty
	}
	ids := make([]string, len(c.changes))
	for i, ch := range c.changes {
		ids[i] = ch.ID
	}
	gs, err := findAll(c.sg, ids)
	if err != nil {
		return err
	}
	for i, g := range gs {
		g.SetAttrs(pick(c.changes[i]))
	}
	return nil
}

// Flag names a boolean graph property.
type Flag string

const (
	FlagVisible Flag = "visible"
	FlagLocked  Flag = "locked"
)

// SetFlag sets visible or locked on a set of graphs.
type SetFlag struct {
	meta
	sg     *scene.SceneGraph
	flag   Flag
	ids    []string
	before []bool
	value  bool
}

// NewSetFlag captures the current flag values of ids.
func NewSetFlag(sg *scene.SceneGraph, desc string, flag Flag, ids []string, value bool) (*SetFlag, error) {
	gs, err := findAll(sg, ids)
	if err != nil {
		return nil, err
	}
	before := make([]bool, len(gs))
	for i, g := range gs {
		before[i] = getFlag(g, flag)
	}
	return &SetFlag{
		meta:   newMeta(desc),
		sg:     sg,
		flag:   flag,
		ids:    append([]string(nil), ids...),
		before: before,
		value:  value,
	}, nil
}

func (c *SetFlag) Apply() error {
	return c.write(func(int) bool { return c.value })
}

func (c *SetFlag) Revert() error {
	return c.write(func(i int) bool { return c.before[i] })
}

func (c *SetFlag) write(pick func(int) bool) error {
	if len(c.ids) == 0 {
		return ErrEmpty
	}
	gs, err := findAll(c.sg, c.ids)
	if err != nil {
		return err
	}
	for i, g := range gs {
		switch c.flag {
		case FlagVisible:
			g.SetVisible(pick(i))
		case FlagLocked:
			g.SetLocked(pick(i))
		}
	}
	return nil
}

func getFlag(g graph.Graph, flag Flag) bool {
	if flag == FlagLocked {
		return g.Locked()
	}
	return g.Visible()
}

// Reorder is the sibling order of one parent before and after an arrange.
type Reorder struct {
	ParentID string
	Before   []string
	After    []string
}

// Arrange changes z-order within one or more parents.
type Arrange struct {
	meta
	sg       *scene.SceneGraph
	reorders []Reorder
}

func NewArrange(sg *scene.SceneGraph, desc string, reorders []Reorder) *Arrange {
	return &Arrange{meta: newMeta(desc), sg: sg, reorders: append([]Reorder(nil), reorders...)}
}

func (c *Arrange) Apply() error  { return c.write(func(r Reorder) []string { return r.After }) }
func (c *Arrange) Revert() error { return c.write(func(r Reorder) []string { return r.Before }) }

func (c *Arrange) write(pick func(Reorder) []string) error {
	if len(c.reorders) == 0 {
		return ErrEmpty
	}
	orders := make([][]graph.Graph, len(c.reorders))
	for i, r := range c.reorders {
		gs, err := findAll(c.sg, pick(r))
		if err != nil {
			return err
		}
		orders[i] = gs
	}
	// check every parent before touching any of them
	for i, r := range c.reorders {
		cur, err := c.sg.Siblings(r.ParentID)
		if err != nil {
			return err
		}
		if len(cur) != len(orders[i]) {
			return fmt.Errorf("arrange %s: %w", r.ParentID, scene.ErrBadOrder)
		}
	}
	for i, r := range c.reorders {
		if err := c.sg.SetSiblings(r.ParentID, orders[i]); err != nil {
			return err
		}
	}
	return nil
}

// Group wraps sibling graphs into a new group placed where the front-most
// of them was.
type Group struct {
	meta
	sg       *scene.SceneGraph
	group    *graph.Group
	ids      []string
	parentID string
	members  []placement
}

// NewGroup prepares grouping ids, which must share a parent.
func NewGroup(sg *scene.SceneGraph, desc string, ids []string) (*Group, error) {
	if len(ids) == 0 {
		return nil, ErrEmpty
	}
	parentID, _, err := sg.Locate(ids[0])
	if err != nil {
		return nil, err
	}
	for _, id := range ids[1:] {
		p, _, err := sg.Locate(id)
		if err != nil {
			return nil, err
		}
		if p != parentID {
			return nil, ErrMixedParent
		}
	}
	return &Group{
		meta:     newMeta(desc),
		sg:       sg,
		group:    graph.NewGroup(nil),
		ids:      append([]string(nil), ids...),
		parentID: parentID,
	}, nil
}

// Graph returns the group node this command inserts.
func (c *Group) Graph() *graph.Group {
	return c.group
}

func (c *Group) Apply() error {
	members := make([]placement, 0, len(c.ids))
	for _, id := range c.ids {
		g, ok := c.sg.Find(id)
		if !ok {
			return fmt.Errorf("%w: %s", scene.ErrNotFound, id)
		}
		parentID, index, err := c.sg.Locate(id)
		if err != nil {
			return err
		}
		if parentID != c.parentID {
			return ErrMixedParent
		}
		members = append(members, placement{graph: g, parentID: parentID, index: index})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].index < members[j].index })

	children := make([]graph.Graph, len(members))
	for i := len(members) - 1; i >= 0; i-- {
		children[i] = members[i].graph
		if _, _, err := c.sg.Remove(members[i].graph.ID()); err != nil {
			return err
		}
	}
	c.group.SetChildren(children)
	// the front-most member's slot after the others left
	at := members[len(members)-1].index - (len(members) - 1)
	if err := c.sg.Insert(c.parentID, at, c.group); err != nil {
		return err
	}
	c.members = members
	return nil
}

func (c *Group) Revert() error {
	if _, _, err := c.sg.Remove(c.group.ID()); err != nil {
		return err
	}
	c.group.SetChildren(nil)
	for _, m := range c.members {
		if err := c.sg.Insert(m.parentID, m.index, m.graph); err != nil {
			return err
		}
	}
	return nil
}

// Ungroup replaces a group with its children at the group's position.
type Ungroup struct {
	meta
	sg       *scene.SceneGraph
	group    *graph.Group
	parentID string
	index    int
}

func NewUngroup(sg *scene.SceneGraph, desc string, id string) (*Ungroup, error) {
	g, ok := sg.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", scene.ErrNotFound, id)
	}
	grp, ok := g.(*graph.Group)
	if !ok {
		return nil, fmt.Errorf("%w: %s", scene.ErrNotGroup, id)
	}
	return &Ungroup{meta: newMeta(desc), sg: sg, group: grp}, nil
}

// Children returns the graphs released by the ungroup.
func (c *Ungroup) Children() []graph.Graph {
	return c.group.Children()
}

func (c *Ungroup) Apply() error {
	parentID, index, err := c.sg.Remove(c.group.ID())
	if err != nil {
		return err
	}
	c.parentID, c.index = parentID, index
	for i, ch := range c.group.Children() {
		if err := c.sg.Insert(parentID, index+i, ch); err != nil {
			return err
		}
	}
	return nil
}

func (c *Ungroup) Revert() error {
	children := c.group.Children()
	for _, ch := range children {
		if _, _, err := c.sg.Remove(ch.ID()); err != nil {
			return err
		}
	}
	return c.sg.Insert(c.parentID, c.index, c.group)
}
