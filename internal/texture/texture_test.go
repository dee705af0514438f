package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexToRGBA(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#1592fe", RGBA{0x15, 0x92, 0xfe, 1}},
		{"1592FE", RGBA{0x15, 0x92, 0xfe, 1}},
		{"#fff", RGBA{255, 255, 255, 1}},
	}
	for _, tt := range tests {
		got, err := ParseHexToRGBA(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseHexToRGBA("#zzzzzz")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestParseRGBAStr(t *testing.T) {
	c, err := ParseRGBAStr("rgba(10, 20, 30, 0.5)")
	require.NoError(t, err)
	assert.Equal(t, RGBA{10, 20, 30, 0.5}, c)

	c, err = ParseColor("rgb(1,2,3)")
	require.NoError(t, err)
	assert.Equal(t, RGBA{1, 2, 3, 1}, c)

	_, err = ParseRGBAStr("rgb(300,0,0)")
	assert.ErrorIs(t, err, ErrInvalidColor)
	_, err = ParseRGBAStr("hsl(0,0,0)")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestHexRoundTrip(t *testing.T) {
	assert.Equal(t, "#1592fe", RGBA{0x15, 0x92, 0xfe, 1}.Hex())
}

func TestCSS(t *testing.T) {
	assert.Equal(t, "rgba(0,0,0,1)", MustSolidHex("#000").CSS())
	assert.Equal(t, "rgba(1,2,3,0.25)", Solid(RGBA{1, 2, 3, 0.25}).CSS())
	assert.Equal(t, "", Image("").CSS())
	assert.Equal(t, DefaultImageSrc, Image("").Src)
	assert.Equal(t, "rgba(1,2,3,0.25)", FirstSolidCSS([]Texture{Image("a.png"), Solid(RGBA{1, 2, 3, 0.25})}))
}

func TestIsNearWhite(t *testing.T) {
	assert.True(t, IsNearWhite(RGBA{255, 255, 255, 1}, DefaultNearWhiteThreshold))
	assert.True(t, IsNearWhite(RGBA{230, 230, 230, 1}, DefaultNearWhiteThreshold))
	assert.False(t, IsNearWhite(RGBA{0, 0, 0, 1}, DefaultNearWhiteThreshold))
	assert.False(t, IsNearWhite(RGBA{200, 200, 200, 1}, DefaultNearWhiteThreshold))
}
