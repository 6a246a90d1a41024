package integrator

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along a primary ray.
	// random must not be shared between goroutines.
	RayColor(ray core.Ray, world geometry.Shape, random *rand.Rand) core.Vec3
}
