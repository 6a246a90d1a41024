package renderer

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It only reads shared state, so one instance serves every worker.
type TileRenderer struct {
	world      geometry.Shape
	camera     geometry.Camera
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
}

// NewTileRenderer creates a new tile renderer for an image of the given size
func NewTileRenderer(world geometry.Shape, camera geometry.Camera, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		width:      width,
		height:     height,
		samples:    samplesPerPixel,
	}
}

// RenderTile renders every pixel of the tile into fb and returns the number of samples taken.
// progress, if set, is called with the pixel count of each finished row.
func (tr *TileRenderer) RenderTile(tile *Tile, random *rand.Rand, fb *Framebuffer, progress func(pixels int)) int {
	bounds := tile.Bounds
	totalSamples := 0

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			fb.SetPixel(i, j, tr.samplePixel(i, j, random))
			totalSamples += tr.samples
		}
		if progress != nil {
			progress(bounds.Dx())
		}
	}

	return totalSamples
}

// samplePixel averages jittered camera rays through pixel (i, j), j counted from the bottom
func (tr *TileRenderer) samplePixel(i, j int, random *rand.Rand) core.Vec3 {
	colorAccum := core.Vec3{}

	for sample := 0; sample < tr.samples; sample++ {
		u := (float32(i) + random.Float32()) / float32(tr.width-1)
		v := (float32(j) + random.Float32()) / float32(tr.height-1)

		ray := tr.camera.GetRay(u, v)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.world, random))
	}

	return colorAccum.Divide(float32(tr.samples))
}
