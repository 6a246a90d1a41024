package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, math32.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}

	if _, _, ok := sphere.Roots(ray); ok {
		t.Error("Expected no real roots when closest approach exceeds the radius")
	}
}

func TestSphere_Roots_ThroughCenter(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	near, far, ok := sphere.Roots(ray)
	if !ok {
		t.Fatal("Expected two real roots for a ray through the center")
	}
	if math32.Abs(near-0.5) > 1e-6 || math32.Abs(far-1.5) > 1e-6 {
		t.Errorf("Expected roots 0.5 and 1.5, got %f and %f", near, far)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float32
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math32.Abs(hit.T-tt.expectedT) > 1e-6 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if !hit.Normal.ApproxEquals(tt.expectedNormal, 1e-6) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}

			if hit.Material != testMaterial {
				t.Error("Expected hit record to reference the sphere's material")
			}
		})
	}
}

func TestSphere_Hit_NormalOpposesRay(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -2), 0.75, testMaterial)

	origins := []core.Vec3{
		core.NewVec3(0, 0, 0),       // outside
		core.NewVec3(0.3, -0.2, -2), // center
		core.NewVec3(0.5, 0, -2.1),  // inside, off center
	}
	directions := []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(0.1, 0.2, -1),
		core.NewVec3(-0.3, 0.1, -0.8),
		core.NewVec3(1, 0, 0),
	}

	for _, origin := range origins {
		for _, direction := range directions {
			ray := core.NewRay(origin, direction)
			hit, isHit := sphere.Hit(ray, 0.001, math32.Inf(1))
			if !isHit {
				continue
			}
			if ray.Direction.Dot(hit.Normal) > 0 {
				t.Errorf("Normal %v faces along ray %v", hit.Normal, ray)
			}
		}
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if !hit.Point.ApproxEquals(expectedPoint, 1e-6) {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Test tMin bound
	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit = sphere.Hit(ray, 1.5, 1000.0)
	if !isHit {
		t.Fatal("Expected far intersection when near root is below tMin")
	}
	if math32.Abs(hit.T-3) > 1e-6 {
		t.Errorf("Expected far intersection at t=3, got t=%f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Expected far intersection to be a back face")
	}
}
