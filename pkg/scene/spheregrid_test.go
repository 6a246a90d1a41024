package scene

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

func TestNewRandomScene_Deterministic(t *testing.T) {
	a := NewRandomScene(7)
	b := NewRandomScene(7)

	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Fatalf("Expected equal sphere counts, got %d and %d", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}
	for i := range a.World.Shapes {
		sa := a.World.Shapes[i].(*geometry.Sphere)
		sb := b.World.Shapes[i].(*geometry.Sphere)
		if !sa.Center.Equals(sb.Center) || sa.Radius != sb.Radius {
			t.Fatalf("Sphere %d differs: %v vs %v", i, sa.Center, sb.Center)
		}
	}
}

func TestNewRandomScene_Layout(t *testing.T) {
	s := NewRandomScene(1)

	// ground + at most 22x22 small spheres + three large spheres
	count := s.GetPrimitiveCount()
	if count < 4 || count > 1+22*22+3 {
		t.Fatalf("Unexpected sphere count %d", count)
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for i, shape := range s.World.Shapes {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius != 0.2 {
			continue
		}
		if sphere.Center.Subtract(clearing).Length() <= 0.9 {
			t.Errorf("Small sphere %d at %v intrudes on the clearing", i, sphere.Center)
		}
		if sphere.Material == nil {
			t.Errorf("Small sphere %d has no material", i)
		}
	}
}

func TestNewDefaultScene_CameraOverride(t *testing.T) {
	s := NewDefaultScene(geometry.CameraConfig{VFov: 60})

	if s.CameraConfig.VFov != 60 {
		t.Errorf("Expected overridden fov 60, got %f", s.CameraConfig.VFov)
	}
	if !s.CameraConfig.LookFrom.Equals(core.NewVec3(-2, 2, 1)) {
		t.Errorf("Expected default position to survive override, got %v", s.CameraConfig.LookFrom)
	}
	if s.GetPrimitiveCount() != 4 {
		t.Errorf("Expected 4 spheres, got %d", s.GetPrimitiveCount())
	}
}
