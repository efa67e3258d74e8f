package export

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient has far more than 256 colors, forcing the quantizer.
func gradient() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 4), uint8(x + y), 255})
		}
	}
	return img
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, gradient(), PNG))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
}

func TestEncodeGIFQuantizes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, gradient(), GIF))

	img, err := gif.Decode(&buf)
	require.NoError(t, err)

	pm, ok := img.(*image.Paletted)
	require.True(t, ok)
	assert.LessOrEqual(t, len(pm.Palette), 256)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
}

func TestEncodeGIFPassesThroughPaletted(t *testing.T) {
	pm := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{
		color.RGBA{A: 255},
		color.RGBA{R: 255, A: 255},
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, pm, GIF))

	img, err := gif.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
}

func TestEncodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, gradient(), BMP))
	assert.NotZero(t, buf.Len())
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, gradient(), "tiff"))
}
