package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// A scene is built once and only read while rendering.
type Scene struct {
	Name           string
	World          *geometry.HittableList // Objects in the scene
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig // Recommended render settings
}

// SamplingConfig contains the render settings a scene was designed for
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the settings used when a scene does not provide its own
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           800,
		Height:          450,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// New creates an empty scene with the given camera
func New(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:           name,
		World:          geometry.NewHittableList(),
		CameraConfig:   cameraConfig,
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// AddSphere adds a sphere with the given material to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float32, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// AspectRatio returns the width/height ratio of the recommended image size
func (c SamplingConfig) AspectRatio() float32 {
	return float32(c.Width) / float32(c.Height)
}
