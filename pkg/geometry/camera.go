package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// CameraConfig contains the scene-level camera placement
type CameraConfig struct {
	LookFrom core.Vec3 `json:"position"` // Eye position
	LookAt   core.Vec3 `json:"look_at"`  // Point the camera looks at
	Up       core.Vec3 `json:"up"`       // Up direction, (0,1,0) if unset
	VFov     float32   `json:"fov"`      // Vertical field of view in degrees
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if !override.LookFrom.Equals(zero) {
		result.LookFrom = override.LookFrom
	}
	if !override.LookAt.Equals(zero) {
		result.LookAt = override.LookAt
	}
	if !override.Up.Equals(zero) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}

	return result
}

// Camera generates primary rays for normalized viewport coordinates
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera derives the viewport basis from the camera placement and image aspect ratio
func NewCamera(config CameraConfig, aspectRatio float32) Camera {
	up := config.Up
	if up.Equals(core.Vec3{}) {
		up = core.NewVec3(0, 1, 0)
	}

	theta := config.VFov * math32.Pi / 180
	h := math32.Tan(theta / 2)
	viewportHeight := 2 * h
	viewportWidth := aspectRatio * viewportHeight

	// Orthonormal basis: w points backwards, u right, v up
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(w)

	return Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the bottom-left corner of the viewport.
func (c Camera) GetRay(s, t float32) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Origin returns the eye position
func (c Camera) Origin() core.Vec3 { return c.origin }

// LowerLeftCorner returns the viewport corner hit by GetRay(0, 0)
func (c Camera) LowerLeftCorner() core.Vec3 { return c.lowerLeftCorner }

// Horizontal returns the full-width viewport edge vector
func (c Camera) Horizontal() core.Vec3 { return c.horizontal }

// Vertical returns the full-height viewport edge vector
func (c Camera) Vertical() core.Vec3 { return c.vertical }
