package document

import (
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/graph"
	"github.com/vecedit/vecedit/internal/texture"
)

func solid(hex string) []texture.Texture {
	return []texture.Texture{texture.MustSolidHex(hex)}
}

// NewSampleDocument returns a small scene with one of every graph type and
// a nested group.
func NewSampleDocument() *Document {
	rect := graph.NewRect(
		graph.Attrs{X: 80, Y: 80, Width: 200, Height: 120},
		graph.Paint{Fill: solid("#e94560"), Stroke: solid("#1a1a2e"), StrokeWidth: 2},
	)
	rect.SetName("Rect")

	ellipse := graph.NewEllipse(
		graph.Attrs{X: 340, Y: 100, Width: 140, Height: 140},
		graph.Paint{Fill: solid("#0f3460"), Stroke: solid("#16213e"), StrokeWidth: 2},
	)
	ellipse.SetName("Ellipse")

	line := graph.NewLine(
		graph.LineAttrsFromPoints(geo.Point{X: 80, Y: 280}, geo.Point{X: 480, Y: 340}),
		graph.Paint{Stroke: solid("#533483"), StrokeWidth: 4},
	)
	line.SetName("Line")

	badge := graph.NewRect(
		graph.Attrs{X: 560, Y: 90, Width: 160, Height: 60, Rotation: 0.2},
		graph.Paint{Fill: solid("#f5f5f5"), Stroke: solid("#333"), StrokeWidth: 1},
	)
	label := graph.NewText(
		graph.Attrs{X: 575, Y: 110, Width: 130, Height: 20, Rotation: 0.2},
		graph.Paint{Fill: solid("#333")},
		"vecedit", 16,
	)
	card := graph.NewGroup([]graph.Graph{badge, label})
	card.SetName("Card")

	return &Document{
		Version: Version,
		Name:    "Sample",
		Graphs: []graph.Snapshot{
			graph.ToSnapshot(rect),
			graph.ToSnapshot(ellipse),
			graph.ToSnapshot(line),
			graph.ToSnapshot(card),
		},
	}
}
