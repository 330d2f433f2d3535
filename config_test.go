package apng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConfigEmpty(t *testing.T) {
	_, err := CreateConfig(nil, nil)
	require.Error(t, err)
	assert.ErrorAs(t, err, &ImagesNotFoundError{})
}

func TestCreateConfigDerivesFromFirstFrame(t *testing.T) {
	images := []PNGImage{
		{Width: 1, Height: 1, ColorType: ColorTypeTrueColorAlpha, BitDepth: 8, Data: []byte{0xFF, 0, 0, 0xFF}},
		{Width: 1, Height: 1, ColorType: ColorTypeTrueColorAlpha, BitDepth: 8, Data: []byte{0, 0xFF, 0, 0xFF}},
	}
	cfg, err := CreateConfig(images, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), cfg.Width)
	assert.Equal(t, uint32(1), cfg.Height)
	assert.Equal(t, uint32(2), cfg.NumFrames)
	assert.Equal(t, uint32(0), cfg.NumPlays)
	assert.Equal(t, ColorTypeTrueColorAlpha, cfg.Color)
	assert.Equal(t, uint8(8), cfg.Depth)
	assert.Equal(t, FilterNone, cfg.Filter)
}

func TestBytesPerPixel(t *testing.T) {
	// spec.md §8 scenario S3: 1-pixel RGBA8 must yield bpp=4.
	cfg := Config{Color: ColorTypeTrueColorAlpha, Depth: 8}
	assert.Equal(t, 4, cfg.BytesPerPixel())

	cfg = Config{Color: ColorTypeTrueColor, Depth: 8}
	assert.Equal(t, 3, cfg.BytesPerPixel())

	cfg = Config{Color: ColorTypeGrayscale, Depth: 16}
	assert.Equal(t, 2, cfg.BytesPerPixel())

	// Sub-byte depths clamp to at least 1 rather than truncating to 0.
	cfg = Config{Color: ColorTypeGrayscale, Depth: 1}
	assert.Equal(t, 1, cfg.BytesPerPixel())
}

func TestRowBytesAndRawRowLength(t *testing.T) {
	cfg := Config{Width: 2, Height: 1, Color: ColorTypeTrueColor, Depth: 8}
	assert.Equal(t, 6, cfg.RowBytes())
	assert.Equal(t, 7, cfg.RawRowLength())
}
