package renderer

import (
	"image"
	"math/rand"
)

// Tile represents a rectangular region of the image to be rendered.
// Bounds use bottom-up row indices, matching the camera's v coordinate.
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
	}
}

// Random returns the tile's random generator for a render seeded with seed.
// The sequence depends only on the seed and the tile ID.
func (t *Tile) Random(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(t.ID) + 42)) // +42 to avoid seed 0
}

// PixelCount returns the number of pixels covered by the tile
func (t *Tile) PixelCount() int {
	return t.Bounds.Dx() * t.Bounds.Dy()
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// NewBandGrid splits the image into full-width horizontal bands.
// Rows that do not divide evenly go to the first bands, one each.
// Bands never outnumber rows.
func NewBandGrid(width, height, bands int) []*Tile {
	bands = max(1, min(bands, height))

	rowsPerBand := height / bands
	remainder := height % bands

	tiles := make([]*Tile, 0, bands)
	y0 := 0
	for i := 0; i < bands; i++ {
		rows := rowsPerBand
		if i < remainder {
			rows++
		}
		tiles = append(tiles, NewTile(i, image.Rect(0, y0, width, y0+rows)))
		y0 += rows
	}

	return tiles
}
