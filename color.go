package tilemap

import "github.com/bodgit/tilemap/srgb"

// Color is a gamma-encoded (sRGB) color with four 8-bit channels. Two
// colors are equal only if every channel matches exactly; this is also
// the rule used to match a tileset's key color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// White is the identity tint; multiplying by it leaves a color unchanged.
var White = Color{255, 255, 255, 255}

// RGBA returns the color with the given channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// Multiply returns the channel-wise product of c and o, computed in
// linear light. The alpha channel follows the same rule as the color
// channels.
func (c Color) Multiply(o Color) Color {
	return Color{
		R: srgb.Multiply(c.R, o.R),
		G: srgb.Multiply(c.G, o.G),
		B: srgb.Multiply(c.B, o.B),
		A: srgb.Multiply(c.A, o.A),
	}
}
