package scene

import (
	"math/rand"

	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/geometry"
	"github.com/stjomd/raytracer/pkg/material"
)

// NewSpheromaniaScene creates three big spheres of different materials among
// a grid of small randomly placed spheres. The same seed always yields the same scene.
func NewSpheromaniaScene(seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.DefaultCameraConfig()
	defaultCameraConfig.Center = core.NewVec3(13, 2, 3)
	defaultCameraConfig.LookAt = core.NewVec3(0, 0, 0)
	defaultCameraConfig.VFov = 20.0

	cameraConfig := resolveCamera(defaultCameraConfig, cameraOverrides)
	s, err := NewScene(cameraConfig, DefaultSamplingConfig())
	if err != nil {
		return nil, err
	}

	glass, err := material.NewDielectric(1.5)
	if err != nil {
		return nil, err
	}

	if err := s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))); err != nil {
		return nil, err
	}

	random := rand.New(rand.NewSource(seed))
	between := func(lo, hi float64) float64 {
		return lo + (hi-lo)*random.Float64()
	}

	// Keep the small spheres clear of the big metal sphere
	clearance := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			var sphereMaterial core.Material
			switch {
			case chooseMaterial < 0.7:
				albedo := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMaterial < 0.9:
				albedo := core.NewVec3(between(0.5, 1), between(0.5, 1), between(0.5, 1))
				sphereMaterial = material.NewMetal(albedo, between(0, 0.5))
			default:
				sphereMaterial = glass
			}

			if err := s.AddSphere(center, 0.2, sphereMaterial); err != nil {
				return nil, err
			}
		}
	}

	bigSpheres := []struct {
		center   core.Vec3
		material core.Material
	}{
		{core.NewVec3(0, 1, 0), glass},
		{core.NewVec3(-4, 1, 0), material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))},
		{core.NewVec3(4, 1, 0), material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)},
	}
	for _, big := range bigSpheres {
		if err := s.AddSphere(big.center, 1.0, big.material); err != nil {
			return nil, err
		}
	}

	return s, nil
}
