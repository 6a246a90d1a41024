package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"golang.org/x/image/colornames"
)

var (
	// ErrUnknownSurface is returned for a surface type other than "sphere"
	ErrUnknownSurface = errors.New("unknown surface type")
	// ErrUnknownMaterial is returned for a material type other than "diffuse" or "metal"
	ErrUnknownMaterial = errors.New("unknown material type")
	// ErrUnknownColor is returned for a color name that is not a CSS/SVG color
	ErrUnknownColor = errors.New("unknown color name")
)

// SceneFile is the JSON document describing a scene
type SceneFile struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Camera      geometry.CameraConfig `json:"camera"`
	Surfaces    []SurfaceSpec         `json:"surfaces"`
}

// SurfaceSpec describes one surface; only spheres are supported
type SurfaceSpec struct {
	Type     string        `json:"type"`
	Center   core.Vec3     `json:"center"`
	Radius   *float32      `json:"radius"`
	Material *MaterialSpec `json:"material"`
}

// MaterialSpec describes a surface material
type MaterialSpec struct {
	Type   string     `json:"type"`
	Albedo ColorValue `json:"albedo"`
	Fuzz   float32    `json:"fuzz"`
}

// ColorValue is an RGB color given either as [r, g, b] in [0,1] or as a CSS color name
type ColorValue struct {
	core.Vec3
}

// UnmarshalJSON accepts a 3-element array or a color name such as "gold"
func (c *ColorValue) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		c.Vec3 = core.NewVec3(float32(rgba.R), float32(rgba.G), float32(rgba.B)).Divide(255)
		return nil
	}
	return c.Vec3.UnmarshalJSON(data)
}

// defaultFileCamera is used for any camera field a scene file leaves out
func defaultFileCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}
}

// LoadScene reads a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	s, err := ParseScene(file, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", filename, err)
	}
	return s, nil
}

// ParseScene decodes a JSON scene document. name is used when the document has no name of its own.
func ParseScene(reader io.Reader, name string) (*scene.Scene, error) {
	sceneFile := SceneFile{Camera: defaultFileCamera()}

	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sceneFile); err != nil {
		return nil, fmt.Errorf("failed to parse scene JSON: %w", err)
	}

	if sceneFile.Name != "" {
		name = sceneFile.Name
	}

	s := scene.New(name, sceneFile.Camera)
	for i, surface := range sceneFile.Surfaces {
		shape, err := buildSurface(surface)
		if err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
		s.World.Add(shape)
	}

	return s, nil
}

func buildSurface(spec SurfaceSpec) (geometry.Shape, error) {
	if spec.Type != "sphere" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, spec.Type)
	}
	if spec.Radius == nil {
		return nil, fmt.Errorf("sphere is missing a radius")
	}
	if spec.Material == nil {
		return nil, fmt.Errorf("sphere is missing a material")
	}

	mat, err := buildMaterial(*spec.Material)
	if err != nil {
		return nil, err
	}

	return geometry.NewSphere(spec.Center, *spec.Radius, mat), nil
}

func buildMaterial(spec MaterialSpec) (material.Material, error) {
	switch spec.Type {
	case "diffuse", "lambertian":
		return material.NewLambertian(spec.Albedo.Vec3), nil
	case "metal":
		return material.NewMetal(spec.Albedo.Vec3, spec.Fuzz), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, spec.Type)
	}
}
