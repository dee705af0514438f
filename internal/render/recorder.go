package render

import (
	"encoding/json"

	"github.com/vecedit/vecedit/internal/geo"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // Operation: "clear", "path", "image", "text"
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
	ImageSrc    string        `json:"imageSrc,omitempty"`
	Text        string        `json:"text,omitempty"`
	FontSize    float64       `json:"fontSize,omitempty"`
	X           float64       `json:"x,omitempty"`
	Y           float64       `json:"y,omitempty"`
	Width       float64       `json:"width,omitempty"`
	Height      float64       `json:"height,omitempty"`
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["R", x, y, w, h],
// ["E", cx, cy, rx, ry], ["Z"].
type PathCommand []interface{}

type recorderState struct {
	transform   geo.Matrix2D
	fillStyle   string
	strokeStyle string
	lineWidth   float64
}

// Recorder captures drawing operations as commands instead of rasterizing
// pixels. Each emitted command carries the full transform in effect, so the
// frontend can replay them without tracking save/restore itself.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	commands []DrawCommand
	path     []PathCommand
	state    recorderState
	stack    []recorderState
}

// NewRecorder creates a Recorder with identity transform, black paints and
// a 1px line width.
func NewRecorder() *Recorder {
	return &Recorder{state: defaultRecorderState()}
}

func defaultRecorderState() recorderState {
	return recorderState{
		transform:   geo.Identity(),
		fillStyle:   "rgba(0,0,0,1)",
		strokeStyle: "rgba(0,0,0,1)",
		lineWidth:   1,
	}
}

// Commands returns the commands recorded since the last Clear.
func (r *Recorder) Commands() []DrawCommand {
	return r.commands
}

// JSON serializes the recorded commands.
func (r *Recorder) JSON() (string, error) {
	return DrawCommandsToJSON(r.commands)
}

// Transform returns the current transform matrix.
func (r *Recorder) Transform() geo.Matrix2D {
	return r.state.transform
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(x, y float64) {
	r.state.transform = r.state.transform.Multiply(geo.Translate(x, y))
}

func (r *Recorder) Scale(sx, sy float64) {
	r.state.transform = r.state.transform.Multiply(geo.Scale(sx, sy))
}

func (r *Recorder) Rotate(radians float64) {
	r.state.transform = r.state.transform.Multiply(geo.Rotate(radians))
}

func (r *Recorder) BeginPath() {
	r.path = nil
}

func (r *Recorder) MoveTo(x, y float64) {
	r.path = append(r.path, PathCommand{"M", x, y})
}

func (r *Recorder) LineTo(x, y float64) {
	r.path = append(r.path, PathCommand{"L", x, y})
}

func (r *Recorder) Rect(x, y, w, h float64) {
	r.path = append(r.path, PathCommand{"R", x, y, w, h})
}

func (r *Recorder) Ellipse(cx, cy, rx, ry float64) {
	r.path = append(r.path, PathCommand{"E", cx, cy, rx, ry})
}

func (r *Recorder) ClosePath() {
	r.path = append(r.path, PathCommand{"Z"})
}

func (r *Recorder) SetFillStyle(css string)   { r.state.fillStyle = css }
func (r *Recorder) SetStrokeStyle(css string) { r.state.strokeStyle = css }
func (r *Recorder) SetLineWidth(w float64)    { r.state.lineWidth = w }

func (r *Recorder) Fill() {
	if len(r.path) == 0 {
		return
	}
	r.commands = append(r.commands, DrawCommand{
		Op:        "path",
		Transform: r.state.transform.ToSlice(),
		Path:      r.copyPath(),
		Fill:      r.state.fillStyle,
	})
}

func (r *Recorder) Stroke() {
	if len(r.path) == 0 {
		return
	}
	r.commands = append(r.commands, DrawCommand{
		Op:          "path",
		Transform:   r.state.transform.ToSlice(),
		Path:        r.copyPath(),
		Stroke:      r.state.strokeStyle,
		StrokeWidth: r.state.lineWidth,
	})
}

func (r *Recorder) DrawImage(src string, x, y, w, h float64) {
	r.commands = append(r.commands, DrawCommand{
		Op:        "image",
		Transform: r.state.transform.ToSlice(),
		ImageSrc:  src,
		X:         x,
		Y:         y,
		Width:     w,
		Height:    h,
	})
}

func (r *Recorder) FillText(text string, x, y, fontSize float64) {
	r.commands = append(r.commands, DrawCommand{
		Op:        "text",
		Transform: r.state.transform.ToSlice(),
		Fill:      r.state.fillStyle,
		Text:      text,
		FontSize:  fontSize,
		X:         x,
		Y:         y,
	})
}

// Clear drops everything recorded so far and starts a new frame.
func (r *Recorder) Clear() {
	r.commands = []DrawCommand{{Op: "clear"}}
	r.path = nil
	r.stack = nil
	r.state = defaultRecorderState()
}

func (r *Recorder) copyPath() []PathCommand {
	out := make([]PathCommand, len(r.path))
	copy(out, r.path)
	return out
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
