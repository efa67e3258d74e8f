package tilemap

import "github.com/bodgit/tilemap/blit"

// Tile is one cell of a Map: a reference into the tileset plus how to
// draw it.
type Tile struct {
	// ID of the tileset entry. Not validated eagerly; an id with no
	// drawable rectangle is silently skipped at render time.
	ID TileID `json:"id"`
	// Color tints the tile. White draws the tileset pixels unchanged.
	Color Color `json:"color"`
	// Solid is free for callers to use; the library never reads it.
	Solid bool `json:"solid,omitempty"`
	// Opaque is free for callers to use; the library never reads it.
	Opaque bool `json:"opaque,omitempty"`
	// Opts are forwarded to the blit package as-is.
	Opts blit.Options `json:"opts,omitempty"`
}

// NewTile returns the default tile for id: white tint, no flags, no blit
// options.
func NewTile(id TileID) Tile {
	return Tile{ID: id, Color: White}
}

// WithColor returns the tile tinted with c.
func (t Tile) WithColor(c Color) Tile {
	t.Color = c
	return t
}

// WithOptions returns the tile drawn with the given blit options.
func (t Tile) WithOptions(opts blit.Options) Tile {
	t.Opts = opts
	return t
}
