package geo

import "math"

const (
	// GroundY is the elevation of the buildable ground plane.
	GroundY = 0.0
	// GroundOffsetY lifts projected points slightly above the ground
	// surface to avoid z-fighting in the renderer.
	GroundOffsetY = 0.02
	// parallelFallbackDist is how far along a near-horizontal ray the
	// projected point is placed when no plane intersection exists.
	parallelFallbackDist = 10.0
)

// Ray is a half-line in world space, typically unprojected from the
// camera through the pointer position.
type Ray struct {
	Origin Point3D `json:"origin"`
	Dir    Point3D `json:"dir"`
}

// ProjectToGround intersects the ray with the ground plane at y = GroundY.
// A ray that is (nearly) parallel to the plane never intersects it, so the
// point falls back to a fixed distance along the ray instead. The returned
// point always sits at GroundY + GroundOffsetY; this never fails.
func (r Ray) ProjectToGround() Point3D {
	dir := r.Dir.Normalize()
	var pt Point3D
	if math.Abs(dir.Y) < 1e-6 {
		pt = r.Origin.Add(dir.Scale(parallelFallbackDist))
	} else {
		t := (GroundY - r.Origin.Y) / dir.Y
		if t < 0 {
			// Plane is behind the ray origin.
			pt = r.Origin.Add(dir.Scale(parallelFallbackDist))
		} else {
			pt = r.Origin.Add(dir.Scale(t))
		}
	}
	pt.Y = GroundY + GroundOffsetY
	return pt
}
