package material

import (
	"github.com/stjomd/raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Diffuse reflectance, each component in [0,1]
}

// NewLambertian creates a new lambertian material.
// Albedo components are clamped into [0,1].
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: clampAlbedo(albedo)}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	// Normal plus a random unit vector gives a cosine-weighted direction
	scatterDirection := hit.Normal.Add(core.SampleOnUnitSphere(sampler.Get2D()))

	// The random vector can cancel the normal
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}

// clampAlbedo keeps reflectance physically plausible
func clampAlbedo(albedo core.Vec3) core.Vec3 {
	return albedo.Clamp(0, 1)
}
