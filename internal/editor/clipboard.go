package editor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vecedit/vecedit/internal/command"
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/typeid"
)

// ErrClipboardEmpty is returned by PasteAt before anything was copied.
var ErrClipboardEmpty = errors.New("clipboard is empty")

type clipboardData struct {
	ID     string           `json:"id"`
	Graphs []graph.Snapshot `json:"graphs"`
}

// Clipboard holds copied graphs as JSON, the same form the frontend puts
// on the system clipboard.
type Clipboard struct {
	editor *Editor
	data   []byte
}

func NewClipboard(e *Editor) *Clipboard {
	return &Clipboard{editor: e}
}

func (c *Clipboard) HasData() bool { return len(c.data) > 0 }

// Data returns the serialized clipboard content.
func (c *Clipboard) Data() []byte { return append([]byte(nil), c.data...) }

// SetData replaces the content, e.g. with text read from the system
// clipboard. Invalid content is rejected.
func (c *Clipboard) SetData(data []byte) error {
	var cd clipboardData
	if err := json.Unmarshal(data, &cd); err != nil {
		return fmt.Errorf("decode clipboard: %w", err)
	}
	c.data = append([]byte(nil), data...)
	return nil
}

// Copy serializes the selection.
func (c *Clipboard) Copy() error {
	items := c.editor.SelectedElements.Items()
	if len(items) == 0 {
		return ErrNoSelection
	}
	cd := clipboardData{ID: typeid.NewClipboardID()}
	for _, g := range items {
		cd.Graphs = append(cd.Graphs, graph.ToSnapshot(g))
	}
	data, err := json.Marshal(cd)
	if err != nil {
		return fmt.Errorf("encode clipboard: %w", err)
	}
	c.data = data
	c.editor.logger.Debug("copied graphs", "batch", cd.ID, "count", len(cd.Graphs))
	return nil
}

// PasteAt adds fresh copies of the clipboard graphs with their joint box's
// top-left at scene point p, records a "Paste" command and selects them.
func (c *Clipboard) PasteAt(p geo.Point) error {
	if len(c.data) == 0 {
		return ErrClipboardEmpty
	}
	var cd clipboardData
	if err := json.Unmarshal(c.data, &cd); err != nil {
		return fmt.Errorf("decode clipboard: %w", err)
	}
	if len(cd.Graphs) == 0 {
		return ErrClipboardEmpty
	}

	graphs := make([]graph.Graph, 0, len(cd.Graphs))
	var pts []geo.Point
	for _, s := range cd.Graphs {
		g, err := graph.FromSnapshot(s, true)
		if err != nil {
			return fmt.Errorf("paste: %w", err)
		}
		graphs = append(graphs, g)
		b := g.BBox()
		pts = append(pts, geo.Point{X: b.X, Y: b.Y}, geo.Point{X: b.X + b.Width, Y: b.Y + b.Height})
	}
	box := geo.BBoxOfPoints(pts)
	dx, dy := p.X-box.X, p.Y-box.Y
	for _, g := range graphs {
		a := g.Attrs()
		a.X += dx
		a.Y += dy
		g.SetAttrs(a)
	}

	cmd := command.NewAddGraphs(c.editor.SceneGraph, "Paste", graphs)
	if err := c.editor.CommandManager.PushCommand(cmd); err != nil {
		return err
	}
	c.editor.SelectedElements.SetItems(graphs)
	return nil
}
