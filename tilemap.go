/*
Package tilemap addresses tiles inside a packed pixel atlas and
composites grids of tile references onto pixel surfaces.

A Tileset is a single RGBA image holding a regular grid of same-sized
tiles, addressed by integer id. A Map is a dense grid of Tile values
referencing a Tileset; rendering a Map draws every cell onto a
destination surface, tinting each tile in linear light and honoring an
optional key color for transparency.
*/
package tilemap

import (
	"encoding/json"
	"errors"

	"github.com/bodgit/tilemap/blit"
)

var (
	_ blit.BufferMut[Color] = (*Tileset)(nil)
	_ blit.BufferMut[Color] = (*ImageSurface)(nil)
	_ blit.BufferMut[Tile]  = (*Map)(nil)
)

// Map is a 2D grid of tiles plus the tileset they reference.
type Map struct {
	tileset *Tileset
	tiles   []Tile
	width   uint32
	height  uint32
}

// NewMap creates a width by height map (in tiles) drawing from ts. Every
// cell starts as the default tile for id 0.
func NewMap(width, height uint32, ts *Tileset) *Map {
	tiles := make([]Tile, uint64(width)*uint64(height))
	for i := range tiles {
		tiles[i] = NewTile(0)
	}

	return &Map{
		tileset: ts,
		tiles:   tiles,
		width:   width,
		height:  height,
	}
}

// Width returns the map's width in tiles.
func (m *Map) Width() int {
	return int(m.width)
}

// Height returns the map's height in tiles.
func (m *Map) Height() int {
	return int(m.height)
}

// Tileset returns the tileset this map draws from.
func (m *Map) Tileset() *Tileset {
	return m.tileset
}

// Tiles returns the backing tile slice, row-major. Mutating it mutates
// the map.
func (m *Map) Tiles() []Tile {
	return m.tiles
}

// TileAt returns the tile at (x, y), or ok false when the coordinate is
// outside the map.
func (m *Map) TileAt(x, y uint32) (Tile, bool) {
	if x >= m.width || y >= m.height {
		return Tile{}, false
	}
	return m.tiles[uint64(y)*uint64(m.width)+uint64(x)], true
}

// SetTileAt replaces the tile at (x, y). Out-of-range coordinates are
// ignored.
func (m *Map) SetTileAt(x, y uint32, t Tile) {
	if x >= m.width || y >= m.height {
		return
	}
	m.tiles[uint64(y)*uint64(m.width)+uint64(x)] = t
}

// At returns the tile at (x, y). Coordinates must be in bounds; use
// TileAt for checked access.
func (m *Map) At(x, y int) Tile {
	return m.tiles[y*int(m.width)+x]
}

// Set overwrites the tile at (x, y). Coordinates must be in bounds.
func (m *Map) Set(x, y int, t Tile) {
	m.tiles[y*int(m.width)+x] = t
}

// Render draws every cell of the map onto dst with the map's top left
// corner at (offsetX, offsetY); tile (tx, ty) lands at
// (offsetX+tx*TileWidth, offsetY+ty*TileHeight).
//
// Rendering cannot fail: a tile whose id has no rectangle inside the
// atlas is skipped, key-colored source pixels are left unwritten, and
// everything else is clipped to dst's bounds.
func (m *Map) Render(dst blit.BufferMut[Color], offsetX, offsetY int) {
	opts := m.tileset.opts
	tw, th := int(opts.TileWidth), int(opts.TileHeight)

	for ty := 0; ty < m.Height(); ty++ {
		for tx := 0; tx < m.Width(); tx++ {
			tile := m.At(tx, ty)

			sx, sy, ok := m.tileset.TilePos(tile.ID)
			if !ok {
				continue
			}

			tint := tile.Color
			blit.CopyWith(dst, offsetX+tx*tw, offsetY+ty*th, m.tileset,
				int(sx), int(sy), tw, th, tile.Opts,
				func(dst, src Color, _, _ int) (Color, bool) {
					if opts.KeyColor != nil && src == *opts.KeyColor {
						return dst, false
					}
					return src.Multiply(tint), true
				})
		}
	}
}

type mapJSON struct {
	Tileset *Tileset `json:"tileset"`
	Tiles   []Tile   `json:"tiles"`
	Width   uint32   `json:"width"`
	Height  uint32   `json:"height"`
}

// MarshalJSON encodes the map as its tileset, tiles and dimensions.
func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(mapJSON{
		Tileset: m.tileset,
		Tiles:   m.tiles,
		Width:   m.width,
		Height:  m.height,
	})
}

// UnmarshalJSON decodes a map, revalidating the tile count against the
// dimensions.
func (m *Map) UnmarshalJSON(b []byte) error {
	var j mapJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}

	if j.Tileset == nil {
		return errors.New("tilemap: map has no tileset")
	}
	if uint64(len(j.Tiles)) != uint64(j.Width)*uint64(j.Height) {
		return errors.New("tilemap: tile count does not match map dimensions")
	}

	m.tileset = j.Tileset
	m.tiles = j.Tiles
	m.width = j.Width
	m.height = j.Height

	return nil
}
