/*
Package blit copies rectangles of values between two-dimensional
buffers, clipping to both buffers' bounds.

A per-pixel callback can override the default copy, which is how callers
implement tinting, transparency keys and similar compositing rules
without this package knowing anything about color.
*/
package blit

// Buffer is a read-only rectangular grid of values. At is only defined
// for in-bounds coordinates; bounds checking happens one level up, in
// whatever walks the buffer.
type Buffer[T any] interface {
	Width() int
	Height() int
	At(x, y int) T
}

// BufferMut is a Buffer whose values can be overwritten in place.
type BufferMut[T any] interface {
	Buffer[T]
	Set(x, y int, v T)
}

// Options alter how the source rectangle is read during a copy. The zero
// value reads the source as-is.
type Options uint8

const (
	// FlipHorizontal mirrors the source rectangle left to right.
	FlipHorizontal Options = 1 << iota
	// FlipVertical mirrors the source rectangle top to bottom.
	FlipVertical
)

// Func decides the value written for one pixel pair. dst and src are the
// current destination and source values, x and y are rectangle-local
// coordinates. Returning false leaves the destination pixel untouched.
type Func[T any] func(dst, src T, x, y int) (T, bool)

// Copy copies a w by h rectangle from src at (sx, sy) to dst at (dx, dy),
// clipped to both buffers.
func Copy[T any](dst BufferMut[T], dx, dy int, src Buffer[T], sx, sy, w, h int, opts Options) {
	CopyWith(dst, dx, dy, src, sx, sy, w, h, opts, func(_, src T, _, _ int) (T, bool) {
		return src, true
	})
}

// CopyWith is Copy with every visited pixel pair routed through fn. The
// rectangle is clipped against both buffers; fn is never invoked for a
// pixel outside either one.
func CopyWith[T any](dst BufferMut[T], dx, dy int, src Buffer[T], sx, sy, w, h int, opts Options, fn Func[T]) {
	dw, dh := dst.Width(), dst.Height()
	sw, sh := src.Width(), src.Height()

	for y := 0; y < h; y++ {
		ty := dy + y
		if ty < 0 || ty >= dh {
			continue
		}
		fy := sy + y
		if opts&FlipVertical != 0 {
			fy = sy + h - 1 - y
		}
		if fy < 0 || fy >= sh {
			continue
		}
		for x := 0; x < w; x++ {
			tx := dx + x
			if tx < 0 || tx >= dw {
				continue
			}
			fx := sx + x
			if opts&FlipHorizontal != 0 {
				fx = sx + w - 1 - x
			}
			if fx < 0 || fx >= sw {
				continue
			}
			if v, ok := fn(dst.At(tx, ty), src.At(fx, fy), x, y); ok {
				dst.Set(tx, ty, v)
			}
		}
	}
}
