package graph

import (
	"fmt"

	"github.com/vecedit/vecedit/internal/typeid"
)

// Snapshot is a detached, serialisable copy of a graph tree.
type Snapshot struct {
	ID       string     `json:"id"`
	Type     Type       `json:"type"`
	Name     string     `json:"name"`
	Attrs    Attrs      `json:"attrs"`
	Paint    Paint      `json:"paint"`
	Visible  bool       `json:"visible"`
	Locked   bool       `json:"locked"`
	Content  string     `json:"content,omitempty"`
	FontSize float64    `json:"fontSize,omitempty"`
	Src      string     `json:"src,omitempty"`
	Children []Snapshot `json:"children,omitempty"`
}

// ToSnapshot copies g and its descendants.
func ToSnapshot(g Graph) Snapshot {
	s := Snapshot{
		ID:      g.ID(),
		Type:    g.Type(),
		Name:    g.Name(),
		Attrs:   g.Attrs(),
		Paint:   g.Paint(),
		Visible: g.Visible(),
		Locked:  g.Locked(),
	}
	switch v := g.(type) {
	case *Text:
		s.Content = v.Content
		s.FontSize = v.FontSize
	case *Image:
		s.Src = v.Src
	case *Group:
		for _, c := range v.children {
			s.Children = append(s.Children, ToSnapshot(c))
		}
	}
	return s
}

// FromSnapshot rebuilds a graph tree. With freshIDs every node gets a new
// id, which is what paste and duplicate need.
func FromSnapshot(s Snapshot, freshIDs bool) (Graph, error) {
	var g Graph
	switch s.Type {
	case TypeRect:
		g = NewRect(s.Attrs, s.Paint)
	case TypeEllipse:
		g = NewEllipse(s.Attrs, s.Paint)
	case TypeLine:
		g = NewLine(s.Attrs, s.Paint)
	case TypeText:
		g = NewText(s.Attrs, s.Paint, s.Content, s.FontSize)
	case TypeImage:
		g = NewImage(s.Attrs, s.Src)
	case TypeGroup:
		children := make([]Graph, 0, len(s.Children))
		for _, cs := range s.Children {
			c, err := FromSnapshot(cs, freshIDs)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		grp := NewGroup(children)
		if !freshIDs {
			grp.id = s.ID
		}
		grp.name = s.Name
		grp.visible = s.Visible
		grp.locked = s.Locked
		return grp, nil
	default:
		return nil, fmt.Errorf("unknown graph type %q", s.Type)
	}

	g.SetName(s.Name)
	g.SetVisible(s.Visible)
	g.SetLocked(s.Locked)
	if !freshIDs {
		if err := setID(g, s.ID); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Clone deep-copies g with fresh ids.
func Clone(g Graph) Graph {
	c, err := FromSnapshot(ToSnapshot(g), true)
	if err != nil {
		// every Type produced by ToSnapshot is handled by FromSnapshot
		panic(err)
	}
	return c
}

func setID(g Graph, id string) error {
	if err := typeid.Validate(id, typeid.PrefixGraph); err != nil {
		return fmt.Errorf("restore graph id: %w", err)
	}
	switch v := g.(type) {
	case *Rect:
		v.id = id
	case *Ellipse:
		v.id = id
	case *Line:
		v.id = id
	case *Text:
		v.id = id
	case *Image:
		v.id = id
	}
	return nil
}
