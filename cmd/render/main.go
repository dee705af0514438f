package main

import (
	"flag"
	"image/png"
	"log/slog"
	"os"

	"github.com/vecedit/vecedit/internal/config"
	"github.com/vecedit/vecedit/internal/document"
	"github.com/vecedit/vecedit/internal/editor"
	"github.com/vecedit/vecedit/internal/geo"
	"github.com/vecedit/vecedit/internal/render"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	in := flag.String("in", "", "document JSON to render (default: built-in sample)")
	out := flag.String("out", "scene.png", "output PNG path")
	selectAll := flag.Bool("select-all", false, "draw the selection box and handles")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	doc := document.NewSampleDocument()
	if *in != "" {
		data, err := os.ReadFile(*in)
		if err != nil {
			slog.Error("read document", "path", *in, "error", err)
			os.Exit(1)
		}
		if doc, err = document.Parse(data); err != nil {
			slog.Error("parse document", "path", *in, "error", err)
			os.Exit(1)
		}
	}

	surface := render.NewRaster(cfg.ViewportWidth, cfg.ViewportHeight)
	ed := editor.New(cfg, surface, slog.Default())
	defer ed.Destroy()

	if err := doc.Load(ed.SceneGraph); err != nil {
		slog.Error("load document", "error", err)
		os.Exit(1)
	}

	var pts []geo.Point
	for _, g := range ed.SceneGraph.Children() {
		b := g.BBox()
		pts = append(pts, geo.Point{X: b.X, Y: b.Y}, geo.Point{X: b.X + b.Width, Y: b.Y + b.Height})
	}
	ed.ZoomManager.ZoomToFit(geo.BBoxOfPoints(pts), float64(cfg.ViewportWidth), float64(cfg.ViewportHeight), 40)
	if *selectAll {
		ed.SelectedElements.SelectAll()
	}
	ed.Render()

	f, err := os.Create(*out)
	if err != nil {
		slog.Error("create output", "path", *out, "error", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, surface.Image()); err != nil {
		slog.Error("encode png", "error", err)
		os.Exit(1)
	}
	slog.Info("scene rendered", "path", *out, "graphs", ed.SceneGraph.Len(), "zoom", ed.ZoomManager.GetZoom())
}
