package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Setting is the read-only option store consulted by the editor core when
// it builds handles, tools and the viewport.
type Setting struct {
	HandleSize         float64 `envconfig:"HANDLE_SIZE" default:"7"`
	HandleFill         string  `envconfig:"HANDLE_FILL" default:"#fcfcfc"`
	HandleStroke       string  `envconfig:"HANDLE_STROKE" default:"#1592fe"`
	HandleStrokeWidth  float64 `envconfig:"HANDLE_STROKE_WIDTH" default:"2"`
	NeswHandleWidth    float64 `envconfig:"NESW_HANDLE_WIDTH" default:"10"`
	RotationHandleSize float64 `envconfig:"ROTATION_HANDLE_SIZE" default:"18"`
	HandleHitPadding   float64 `envconfig:"HANDLE_HIT_PADDING" default:"3"`

	FirstStroke string  `envconfig:"FIRST_STROKE" default:"#000000"`
	FirstFill   string  `envconfig:"FIRST_FILL" default:"#d9d9d9"`
	StrokeWidth float64 `envconfig:"STROKE_WIDTH" default:"1"`

	SelectBoxStroke      string  `envconfig:"SELECT_BOX_STROKE" default:"#1592fe"`
	SelectBoxStrokeWidth float64 `envconfig:"SELECT_BOX_STROKE_WIDTH" default:"1"`
	HoverStroke          string  `envconfig:"HOVER_STROKE" default:"#1592fe"`
	HoverStrokeWidth     float64 `envconfig:"HOVER_STROKE_WIDTH" default:"2"`

	ZoomMin  float64 `envconfig:"ZOOM_MIN" default:"0.015"`
	ZoomMax  float64 `envconfig:"ZOOM_MAX" default:"256"`
	ZoomStep float64 `envconfig:"ZOOM_STEP" default:"1.25"`

	// HistoryLimit caps the undo stack; 0 keeps everything.
	HistoryLimit int `envconfig:"HISTORY_LIMIT" default:"0"`

	ViewportWidth  int `envconfig:"VIEWPORT_WIDTH" default:"1280"`
	ViewportHeight int `envconfig:"VIEWPORT_HEIGHT" default:"720"`
}

// Prefix is the environment variable prefix, e.g. VECEDIT_HANDLE_SIZE.
const Prefix = "VECEDIT"

func Load() (*Setting, error) {
	var cfg Setting
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in defaults without consulting the environment.
func Default() *Setting {
	return &Setting{
		HandleSize:           7,
		HandleFill:           "#fcfcfc",
		HandleStroke:         "#1592fe",
		HandleStrokeWidth:    2,
		NeswHandleWidth:      10,
		RotationHandleSize:   18,
		HandleHitPadding:     3,
		FirstStroke:          "#000000",
		FirstFill:            "#d9d9d9",
		StrokeWidth:          1,
		SelectBoxStroke:      "#1592fe",
		SelectBoxStrokeWidth: 1,
		HoverStroke:          "#1592fe",
		HoverStrokeWidth:     2,
		ZoomMin:              0.015,
		ZoomMax:              256,
		ZoomStep:             1.25,
		ViewportWidth:        1280,
		ViewportHeight:       720,
	}
}
