package scene

import (
	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/geometry"
	"github.com/stjomd/raytracer/pkg/material"
)

// NewSpheresScene creates a hollow glass sphere, a matte sphere and a metal sphere
// side by side, resting on a large matte sphere
func NewSpheresScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.DefaultCameraConfig()
	defaultCameraConfig.VFov = 90.0

	cameraConfig := resolveCamera(defaultCameraConfig, cameraOverrides)
	s, err := NewScene(cameraConfig, DefaultSamplingConfig())
	if err != nil {
		return nil, err
	}

	glass, err := material.NewDielectric(1.5)
	if err != nil {
		return nil, err
	}
	// Air bubble inside the glass, relative to the surrounding glass
	air, err := material.NewDielectric(1.0 / 1.5)
	if err != nil {
		return nil, err
	}

	spheres := []struct {
		center   core.Vec3
		radius   float64
		material core.Material
	}{
		{core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))},
		{core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewVec3(0.0, 0.2, 0.1))},
		{core.NewVec3(-1, 0, -1), 0.5, glass},
		{core.NewVec3(-1, 0, -1), 0.4, air},
		{core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)},
	}
	for _, sp := range spheres {
		if err := s.AddSphere(sp.center, sp.radius, sp.material); err != nil {
			return nil, err
		}
	}

	return s, nil
}
