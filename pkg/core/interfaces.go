package core

import "errors"

// Configuration errors returned before any rendering work begins
var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrInvalidMaterial = errors.New("invalid material")
	ErrInvalidCamera   = errors.New("invalid camera")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter decides whether the incoming ray continues after hitting the surface.
	// Returning false means the ray was absorbed.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports the nearest intersection with tMin < t < tMax
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray, starting at the hit point
	Attenuation Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit surface normal, always facing against the ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
