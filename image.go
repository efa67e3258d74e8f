package tilemap

import "image"

// ImageSurface adapts an *image.RGBA so it can be used as a rendering
// destination or source.
//
// Pixel values are passed through byte-for-byte; no alpha premultiplication
// is applied in either direction.
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface wraps img. The surface's (0, 0) is the image's
// bounds minimum.
func NewImageSurface(img *image.RGBA) *ImageSurface {
	return &ImageSurface{img: img}
}

// Image returns the wrapped image.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Width returns the image width in pixels.
func (s *ImageSurface) Width() int {
	return s.img.Bounds().Dx()
}

// Height returns the image height in pixels.
func (s *ImageSurface) Height() int {
	return s.img.Bounds().Dy()
}

// At returns the pixel at (x, y). Coordinates must be in bounds.
func (s *ImageSurface) At(x, y int) Color {
	b := s.img.Bounds()
	i := s.img.PixOffset(b.Min.X+x, b.Min.Y+y)
	p := s.img.Pix[i : i+4]
	return Color{p[0], p[1], p[2], p[3]}
}

// Set overwrites the pixel at (x, y). Coordinates must be in bounds.
func (s *ImageSurface) Set(x, y int, c Color) {
	b := s.img.Bounds()
	i := s.img.PixOffset(b.Min.X+x, b.Min.Y+y)
	p := s.img.Pix[i : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}
