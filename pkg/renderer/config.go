package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when width or height is not positive
	ErrInvalidDimensions = errors.New("image dimensions must be positive")
	// ErrOddDimensions is returned when width or height is odd
	ErrOddDimensions = errors.New("image dimensions must be even")
	// ErrInvalidSampling is returned for non-positive samples per pixel or bounce depth
	ErrInvalidSampling = errors.New("samples per pixel and max depth must be positive")
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of jittered rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	TileSize        int   // Edge length of square tiles
	Bands           int   // Number of horizontal bands; overrides TileSize when > 0
	Seed            int64 // Base seed for per-tile random generators
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           800,
		Height:          450,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		TileSize:        32,
		Bands:           0,
		Seed:            1,
	}
}

// Validate checks the configuration before any rendering work starts
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("%w: got %dx%d", ErrOddDimensions, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 || c.MaxDepth <= 0 {
		return fmt.Errorf("%w: got %d samples, depth %d", ErrInvalidSampling, c.SamplesPerPixel, c.MaxDepth)
	}
	return nil
}

// AspectRatio returns width/height
func (c RenderConfig) AspectRatio() float32 {
	return float32(c.Width) / float32(c.Height)
}

// tiles partitions the image according to the configuration
func (c RenderConfig) tiles() []*Tile {
	if c.Bands > 0 {
		return NewBandGrid(c.Width, c.Height, c.Bands)
	}
	tileSize := c.TileSize
	if tileSize <= 0 {
		tileSize = DefaultRenderConfig().TileSize
	}
	return NewTileGrid(c.Width, c.Height, tileSize)
}
