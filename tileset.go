package tilemap

import (
	"encoding/json"
	"errors"
)

// TileID addresses one tile in a Tileset. Tiles are counted
// left-to-right then top-to-bottom.
type TileID uint32

// Options describes how tiles are laid out inside a tileset image. All
// fields are fixed once a Tileset has been built from them; changing the
// layout means building a new tileset.
type Options struct {
	// TileWidth and TileHeight are the pixel dimensions of one tile.
	TileWidth  uint32 `json:"tile_width"`
	TileHeight uint32 `json:"tile_height"`
	// OffsetX and OffsetY locate the first tile's top left corner.
	OffsetX uint32 `json:"offset_x"`
	OffsetY uint32 `json:"offset_y"`
	// MarginX and MarginY are the pixel gap between adjacent tiles.
	MarginX uint32 `json:"margin_x"`
	MarginY uint32 `json:"margin_y"`
	// KeyColor marks fully transparent pixels in the tile artwork.
	// Source pixels equal to it are never written when rendering.
	KeyColor *Color `json:"key_color,omitempty"`
}

// NewOptions returns the layout for tiles of the given size with no
// offset, margin or key color.
func NewOptions(tileWidth, tileHeight uint32) Options {
	return Options{
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
	}
}

// WithOffset returns the layout with the first tile's corner at (x, y).
func (o Options) WithOffset(x, y uint32) Options {
	o.OffsetX, o.OffsetY = x, y
	return o
}

// WithMargin returns the layout with the given gap between tiles.
func (o Options) WithMargin(x, y uint32) Options {
	o.MarginX, o.MarginY = x, y
	return o
}

// WithKeyColor returns the layout with c as the transparency key.
func (o Options) WithKeyColor(c Color) Options {
	o.KeyColor = &c
	return o
}

// Tileset is a single RGBA image containing a regular grid of same-sized
// tiles addressed by TileID.
//
// The pixel data is four 8-bit channels per pixel, row-major. A tileset
// may be shared read-only between any number of maps; mutating it (or
// rendering onto it) requires exclusive access, which is the caller's
// business to arrange.
type Tileset struct {
	data          []uint8
	width, height uint32
	tileCountX    uint32
	tileCountY    uint32
	opts          Options
}

// NewTileset builds a tileset from raw RGBA pixel data. width and height
// are data's size in pixels; ok is false when len(data) != width*height*4
// and no tileset is returned.
//
// Degenerate layouts (zero tile size, offset beyond the image) are not
// rejected here; they produce a tileset whose tile count is zero, so
// TilePos rejects every id.
func NewTileset(data []uint8, width, height uint32, opts Options) (*Tileset, bool) {
	if uint64(len(data)) != uint64(width)*uint64(height)*4 {
		return nil, false
	}

	cx, cy := tileCounts(width, height, opts)

	return &Tileset{
		data:       data,
		width:      width,
		height:     height,
		tileCountX: cx,
		tileCountY: cy,
		opts:       opts,
	}, true
}

func tileCounts(width, height uint32, opts Options) (uint32, uint32) {
	return axisTileCount(width, opts.OffsetX, opts.MarginX, opts.TileWidth),
		axisTileCount(height, opts.OffsetY, opts.MarginY, opts.TileHeight)
}

// axisTileCount is the floor of (size - offset + margin) / (tile + margin),
// with both degenerate cases collapsing to zero tiles instead of wrapping
// or dividing by zero.
func axisTileCount(size, offset, margin, tile uint32) uint32 {
	if tile+margin == 0 || offset > size+margin {
		return 0
	}
	return (size - offset + margin) / (tile + margin)
}

// TileCount returns the total number of tiles in the tileset.
func (t *Tileset) TileCount() uint32 {
	return t.tileCountX * t.tileCountY
}

// Contains reports whether id is a valid tile id for this tileset,
// that is id < TileCount.
func (t *Tileset) Contains(id TileID) bool {
	return uint32(id) < t.TileCount()
}

// Options returns the layout the tileset was built with.
func (t *Tileset) Options() Options {
	return t.opts
}

// TilePos returns the pixel position of a tile's top left corner inside
// the tileset image. Useful when rendering a single tile by hand.
//
// ok is false when the tile's rectangle does not fit inside the image;
// note the bound is strict, so a rectangle exactly flush with the right
// or bottom edge is rejected too. Ids past TileCount are not treated
// specially: they either land on unused space or fail the bound.
func (t *Tileset) TilePos(id TileID) (x, y uint32, ok bool) {
	if t.tileCountX == 0 {
		return 0, 0, false
	}

	x = uint32(id)%t.tileCountX*(t.opts.TileWidth+t.opts.MarginX) + t.opts.OffsetX
	y = uint32(id)/t.tileCountX*(t.opts.TileHeight+t.opts.MarginY) + t.opts.OffsetY

	if x+t.opts.TileWidth < t.width && y+t.opts.TileHeight < t.height {
		return x, y, true
	}

	return 0, 0, false
}

// Width returns the width of the backing image in pixels.
func (t *Tileset) Width() int {
	return int(t.width)
}

// Height returns the height of the backing image in pixels.
func (t *Tileset) Height() int {
	return int(t.height)
}

// At returns the pixel at (x, y). Coordinates must be in bounds.
func (t *Tileset) At(x, y int) Color {
	i := (y*int(t.width) + x) * 4
	return Color{t.data[i], t.data[i+1], t.data[i+2], t.data[i+3]}
}

// Set overwrites the pixel at (x, y), bypassing tile semantics.
// Coordinates must be in bounds.
func (t *Tileset) Set(x, y int, c Color) {
	i := (y*int(t.width) + x) * 4
	t.data[i], t.data[i+1], t.data[i+2], t.data[i+3] = c.R, c.G, c.B, c.A
}

// Data returns the raw RGBA pixel data backing the tileset.
func (t *Tileset) Data() []uint8 {
	return t.data
}

type tilesetJSON struct {
	Data    []uint8 `json:"data"`
	Width   uint32  `json:"width"`
	Height  uint32  `json:"height"`
	Options Options `json:"options"`
}

// MarshalJSON encodes the tileset as its pixel data, dimensions and
// layout. Derived tile counts are never persisted.
func (t *Tileset) MarshalJSON() ([]byte, error) {
	return json.Marshal(tilesetJSON{
		Data:    t.data,
		Width:   t.width,
		Height:  t.height,
		Options: t.opts,
	})
}

// UnmarshalJSON decodes a tileset, recomputing the tile counts and
// revalidating the pixel data length against the dimensions.
func (t *Tileset) UnmarshalJSON(b []byte) error {
	var j tilesetJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}

	ts, ok := NewTileset(j.Data, j.Width, j.Height, j.Options)
	if !ok {
		return errors.New("tilemap: pixel data does not match image dimensions")
	}

	*t = *ts
	return nil
}
