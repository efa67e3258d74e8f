package tilemap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// atlasData fills a w by h RGBA buffer with a distinct color per pixel.
func atlasData(w, h int) []uint8 {
	d := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			d[i], d[i+1], d[i+2], d[i+3] = uint8(x*10), uint8(y*10), 100, 255
		}
	}
	return d
}

func TestNewTileset(t *testing.T) {
	ts, ok := NewTileset(atlasData(8, 8), 8, 8, NewOptions(4, 4))
	require.True(t, ok)
	require.NotNil(t, ts)

	assert.Equal(t, 8, ts.Width())
	assert.Equal(t, 8, ts.Height())
	assert.Equal(t, uint32(4), ts.TileCount())
}

func TestNewTilesetBadLength(t *testing.T) {
	for _, n := range []int{0, 8*8*4 - 1, 8*8*4 + 1, 8 * 8 * 3} {
		ts, ok := NewTileset(make([]uint8, n), 8, 8, NewOptions(4, 4))
		assert.False(t, ok, "length %d", n)
		assert.Nil(t, ts, "length %d", n)
	}
}

func TestTileCounts(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
		opts          Options
		count         uint32
	}{
		{"exact tiling", 8, 8, NewOptions(4, 4), 4},
		{"remainder discarded", 9, 9, NewOptions(4, 4), 4},
		{"single column", 4, 12, NewOptions(4, 4), 3},
		{"offset", 20, 20, NewOptions(4, 4).WithOffset(2, 2), 16},
		{"margin", 20, 20, NewOptions(4, 4).WithMargin(2, 2), 9},
		{"offset and margin", 20, 20, NewOptions(4, 4).WithOffset(2, 2).WithMargin(2, 2), 9},
		{"zero tile size", 8, 8, NewOptions(0, 0), 0},
		{"offset beyond image", 8, 8, NewOptions(4, 4).WithOffset(100, 100), 0},
		{"tile larger than image", 8, 8, NewOptions(16, 16), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := NewTileset(atlasData(int(tt.width), int(tt.height)), tt.width, tt.height, tt.opts)
			require.True(t, ok)
			assert.Equal(t, tt.count, ts.TileCount())
		})
	}
}

func TestContains(t *testing.T) {
	ts, ok := NewTileset(atlasData(8, 8), 8, 8, NewOptions(4, 4))
	require.True(t, ok)

	assert.True(t, ts.Contains(0))
	assert.True(t, ts.Contains(3))
	assert.False(t, ts.Contains(4))
}

func TestTilePos(t *testing.T) {
	// 9x9 atlas of 4x4 tiles: 2x2 tiles with a spare pixel on each
	// axis, so every id resolves.
	ts, ok := NewTileset(atlasData(9, 9), 9, 9, NewOptions(4, 4))
	require.True(t, ok)
	require.Equal(t, uint32(4), ts.TileCount())

	want := [][2]uint32{{0, 0}, {4, 0}, {0, 4}, {4, 4}}
	for id, pos := range want {
		x, y, ok := ts.TilePos(TileID(id))
		require.True(t, ok, "id %d", id)
		assert.Equal(t, pos[0], x, "id %d", id)
		assert.Equal(t, pos[1], y, "id %d", id)
	}
}

// A tile rectangle exactly flush with the image's right or bottom edge
// is rejected: the bound is strict. In an 8x8 atlas of 4x4 tiles only
// tile 0 is drawable even though the tile count is 4.
func TestTilePosStrictBound(t *testing.T) {
	ts, ok := NewTileset(atlasData(8, 8), 8, 8, NewOptions(4, 4))
	require.True(t, ok)
	require.Equal(t, uint32(4), ts.TileCount())

	x, y, ok := ts.TilePos(0)
	require.True(t, ok)
	assert.Equal(t, uint32(0), x)
	assert.Equal(t, uint32(0), y)

	for _, id := range []TileID{1, 2, 3} {
		_, _, ok := ts.TilePos(id)
		assert.False(t, ok, "id %d", id)
	}
}

func TestTilePosOffsetMargin(t *testing.T) {
	ts, ok := NewTileset(atlasData(20, 20), 20, 20, NewOptions(4, 4).WithOffset(2, 2).WithMargin(2, 2))
	require.True(t, ok)
	require.Equal(t, uint32(9), ts.TileCount())

	x, y, ok := ts.TilePos(4) // row 1, column 1
	require.True(t, ok)
	assert.Equal(t, uint32(8), x)
	assert.Equal(t, uint32(8), y)
}

func TestTilePosOutOfRange(t *testing.T) {
	ts, ok := NewTileset(atlasData(9, 9), 9, 9, NewOptions(4, 4))
	require.True(t, ok)

	for _, id := range []TileID{4, 5, 99, 1 << 20} {
		_, _, ok := ts.TilePos(id)
		assert.False(t, ok, "id %d", id)
	}
}

func TestTilePosDegenerateLayout(t *testing.T) {
	ts, ok := NewTileset(atlasData(8, 8), 8, 8, NewOptions(0, 0))
	require.True(t, ok)

	_, _, posOK := ts.TilePos(0)
	assert.False(t, posOK)
}

func TestTilesetSurface(t *testing.T) {
	ts, ok := NewTileset(atlasData(4, 4), 4, 4, NewOptions(2, 2))
	require.True(t, ok)

	assert.Equal(t, RGBA(10, 20, 100, 255), ts.At(1, 2))

	ts.Set(1, 2, RGBA(1, 2, 3, 4))
	assert.Equal(t, RGBA(1, 2, 3, 4), ts.At(1, 2))
}

func TestTilesetJSONRoundTrip(t *testing.T) {
	opts := NewOptions(4, 4).WithOffset(1, 1).WithKeyColor(RGBA(255, 0, 255, 255))
	ts, ok := NewTileset(atlasData(9, 9), 9, 9, opts)
	require.True(t, ok)

	b, err := json.Marshal(ts)
	require.NoError(t, err)

	var got Tileset
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, ts.Data(), got.Data())
	assert.Equal(t, ts.Options(), got.Options())
	assert.Equal(t, ts.TileCount(), got.TileCount())
}

func TestTilesetUnmarshalBadLength(t *testing.T) {
	// 3 bytes of pixel data for a 4x4 image.
	doc := `{"data":"AAAA","width":4,"height":4,"options":{"tile_width":2,"tile_height":2,"offset_x":0,"offset_y":0,"margin_x":0,"margin_y":0}}`

	var ts Tileset
	assert.Error(t, json.Unmarshal([]byte(doc), &ts))
}
