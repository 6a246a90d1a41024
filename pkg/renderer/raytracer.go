package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// ProgressFunc observes render progress. It is called from worker goroutines
// with the number of pixels just finished and must be safe for concurrent use.
type ProgressFunc func(pixels int)

// Raytracer renders a world through a camera into a framebuffer
type Raytracer struct {
	world      geometry.Shape
	camera     geometry.Camera
	config     RenderConfig
	integrator integrator.Integrator
	logger     core.Logger
	onProgress ProgressFunc
	completed  atomic.Int64 // Pixels finished in the current render
}

// NewRaytracer creates a new raytracer using the path tracing integrator
func NewRaytracer(world geometry.Shape, camera geometry.Camera, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		logger:     logger,
	}
}

// NewSceneRaytracer creates a raytracer for a scene, building its camera for the configured aspect ratio
func NewSceneRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	camera := geometry.NewCamera(s.CameraConfig, config.AspectRatio())
	return NewRaytracer(s.World, camera, config, logger)
}

// SetIntegrator replaces the integrator used to shade camera rays
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// SetProgressFunc registers an observer for completed pixels
func (rt *Raytracer) SetProgressFunc(fn ProgressFunc) {
	rt.onProgress = fn
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Progress returns the number of pixels finished in the current render
func (rt *Raytracer) Progress() int64 {
	return rt.completed.Load()
}

// TotalPixels returns the number of pixels in the output image
func (rt *Raytracer) TotalPixels() int {
	return rt.config.Width * rt.config.Height
}

func (rt *Raytracer) reportProgress(pixels int) {
	rt.completed.Add(int64(pixels))
	if rt.onProgress != nil {
		rt.onProgress(pixels)
	}
}

// Render renders the whole image in parallel and blocks until every tile is done.
// ctx is only consulted before work is submitted; a started render runs to completion.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render not started: %w", err)
	}

	startTime := time.Now()
	rt.completed.Store(0)

	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	tiles := rt.config.tiles()
	tileRenderer := NewTileRenderer(rt.world, rt.camera, rt.integrator, rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel)

	workerPool := NewWorkerPool(tileRenderer, rt.config.NumWorkers, len(tiles))
	workerPool.Start()

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, max depth %d (%d tiles, %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth,
		len(tiles), workerPool.GetNumWorkers())

	for _, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Tile:        tile,
			Seed:        rt.config.Seed,
			Framebuffer: fb,
			Progress:    rt.reportProgress,
		})
	}

	stats := RenderStats{
		TotalPixels: rt.TotalPixels(),
		Tiles:       len(tiles),
		Workers:     workerPool.GetNumWorkers(),
	}

	// Collect every result so no worker is left blocked, keeping the first error
	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil && renderErr == nil {
			renderErr = result.Error
		}
		stats.TotalSamples += result.Samples
	}
	workerPool.Stop()

	if renderErr != nil {
		return nil, RenderStats{}, fmt.Errorf("render failed: %w", renderErr)
	}

	stats.finalize(time.Since(startTime))
	rt.logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Duration, stats.PixelsPerSecond)

	return fb, stats, nil
}
