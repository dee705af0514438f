// Package document is the JSON form of a scene: an ordered list of graph
// snapshots plus a format version.
package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/scene"
)

// Version is the only format version Parse accepts.
const Version = 1

var ErrVersion = errors.New("unsupported document version")

type Document struct {
	Version int              `json:"version"`
	Name    string           `json:"name"`
	Graphs  []graph.Snapshot `json:"graphs"`
}

// FromScene snapshots every top-level graph of sg in z-order.
func FromScene(name string, sg *scene.SceneGraph) *Document {
	doc := &Document{Version: Version, Name: name}
	for _, g := range sg.Children() {
		doc.Graphs = append(doc.Graphs, graph.ToSnapshot(g))
	}
	return doc
}

// Parse decodes a document and checks its version.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, doc.Version)
	}
	return &doc, nil
}

// Build turns the snapshots back into graphs, keeping their ids.
func (d *Document) Build() ([]graph.Graph, error) {
	out := make([]graph.Graph, 0, len(d.Graphs))
	for i, s := range d.Graphs {
		g, err := graph.FromSnapshot(s, false)
		if err != nil {
			return nil, fmt.Errorf("graph %d: %w", i, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Load appends the document's graphs to sg.
func (d *Document) Load(sg *scene.SceneGraph) error {
	graphs, err := d.Build()
	if err != nil {
		return err
	}
	return sg.Add(graphs...)
}

func (d *Document) JSON() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
