// Package texture describes the paints applied to graph fills and strokes.
package texture

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidColor = errors.New("invalid color")

type Type string

const (
	TypeSolid Type = "solid"
	TypeImage Type = "image"
)

// DefaultImageSrc is used for image textures created without a source.
const DefaultImageSrc = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8/5+hHgAHggJ/PchI7wAAAABJRU5ErkJggg=="

// RGBA is an 8-bit colour with a float alpha in [0, 1].
type RGBA struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

// Texture is one paint layer. Only the fields matching Type are meaningful.
type Texture struct {
	Type  Type   `json:"type"`
	Color RGBA   `json:"color,omitempty"`
	Src   string `json:"src,omitempty"`
}

// Solid returns a solid texture of c.
func Solid(c RGBA) Texture {
	return Texture{Type: TypeSolid, Color: c}
}

// Image returns an image texture; an empty src falls back to DefaultImageSrc.
func Image(src string) Texture {
	if src == "" {
		src = DefaultImageSrc
	}
	return Texture{Type: TypeImage, Src: src}
}

// MustSolidHex parses a hex colour into a solid texture and panics on error.
// Intended for built-in defaults.
func MustSolidHex(hex string) Texture {
	c, err := ParseHexToRGBA(hex)
	if err != nil {
		panic(err)
	}
	return Solid(c)
}

// CSS returns the colour in rgba() notation understood by Canvas2D.
func (c RGBA) CSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Hex returns the colour as #rrggbb, dropping alpha.
func (c RGBA) Hex() string {
	return c.colorful().Hex()
}

func (c RGBA) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseHexToRGBA accepts #rgb or #rrggbb (the leading # is optional).
func ParseHexToRGBA(hex string) (RGBA, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	r, g, b := c.RGB255()
	return RGBA{R: r, G: g, B: b, A: 1}, nil
}

var rgbaPattern = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([0-9.]+)\s*)?\)$`)

// ParseRGBAStr parses rgb(r,g,b) or rgba(r,g,b,a).
func ParseRGBAStr(s string) (RGBA, error) {
	m := rgbaPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = uint8(v)
	}
	a := 1.0
	if m[4] != "" {
		v, err := strconv.ParseFloat(m[4], 64)
		if err != nil || v > 1 {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		a = v
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, nil
}

// ParseColor accepts any of the hex or rgb()/rgba() forms.
func ParseColor(s string) (RGBA, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "rgb") {
		return ParseRGBAStr(s)
	}
	return ParseHexToRGBA(s)
}

// DefaultNearWhiteThreshold is the RGB distance under which a colour needs an
// outline to stay visible on a white background.
const DefaultNearWhiteThreshold = 85

// IsNearWhite reports whether c is within threshold (in 0-255 RGB units) of
// pure white.
func IsNearWhite(c RGBA, threshold float64) bool {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.colorful().DistanceRgb(white)*255 < threshold
}

// Clamp keeps alpha within [0, 1]; NaN becomes opaque.
func (c RGBA) Clamp() RGBA {
	if math.IsNaN(c.A) {
		c.A = 1
	}
	c.A = max(0, min(1, c.A))
	return c
}

// CSS returns the paint string for a texture, or "" for non-solid textures.
func (t Texture) CSS() string {
	if t.Type != TypeSolid {
		return ""
	}
	return t.Color.Clamp().CSS()
}

// Clone returns a copy; Texture has no shared references.
func Clone(ts []Texture) []Texture {
	if ts == nil {
		return nil
	}
	out := make([]Texture, len(ts))
	copy(out, ts)
	return out
}

// FirstSolidCSS returns the CSS colour of the first solid texture in ts, or "".
func FirstSolidCSS(ts []Texture) string {
	for _, t := range ts {
		if t.Type == TypeSolid {
			return t.CSS()
		}
	}
	return ""
}
