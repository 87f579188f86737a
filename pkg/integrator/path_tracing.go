package integrator

import (
	"math"

	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/scene"
)

// rayEpsilon is the lower bound of accepted hits, suppressing self-intersection
const rayEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with the sky as the only light
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor computes the color for a single ray.
// Each bounce multiplies the throughput by the material attenuation; the path ends
// when it escapes to the background, is absorbed, or runs out of depth.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := scene.Hit(ray, rayEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(scene.Background.Color(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			// Material absorbed the ray
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	return core.Vec3{}
}
