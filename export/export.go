/*
Package export encodes rendered images to common file formats.

GIF output is paletted; an image that does not already fit in 256 colors
is quantized first with a median cut quantizer.
*/
package export

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
)

// Formats recognized by Encode.
const (
	PNG = "png"
	GIF = "gif"
	BMP = "bmp"
)

var errUnknownFormat = errors.New("export: unknown format")

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case GIF:
		return gif.Encode(w, palettize(img), nil)
	case BMP:
		return bmp.Encode(w, img)
	}
	return errUnknownFormat
}

// palettize returns img as a paletted image, quantizing when it does not
// already fit in 256 colors.
func palettize(img image.Image) *image.Paletted {
	if pm, ok := img.(*image.Paletted); ok && len(pm.Palette) <= 256 {
		return pm
	}

	b := img.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, 256), img))
	draw.Draw(pm, b, img, b.Min, draw.Src)

	return pm
}
