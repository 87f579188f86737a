package scene

import (
	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/geometry"
	"github.com/stjomd/raytracer/pkg/material"
)

// NewBannerScene creates the wide group of spheres shown in the project banner
func NewBannerScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.DefaultCameraConfig()
	defaultCameraConfig.Center = core.NewVec3(0, 0.35, 10)
	defaultCameraConfig.LookAt = core.NewVec3(0, -0.35, 0)
	defaultCameraConfig.VFov = 27.0

	cameraConfig := resolveCamera(defaultCameraConfig, cameraOverrides)
	s, err := NewScene(cameraConfig, DefaultSamplingConfig())
	if err != nil {
		return nil, err
	}

	glass, err := material.NewDielectric(1.5)
	if err != nil {
		return nil, err
	}

	spheres := []struct {
		center   core.Vec3
		radius   float64
		material core.Material
	}{
		{core.NewVec3(0, -99.5, -19), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))},
		{core.NewVec3(0, 0, 0), 1.0, glass},
		{core.NewVec3(-1.01, 0.12, -2.3), 1.0, material.NewLambertian(core.NewVec3(0.24, 0.16, 0.37))},
		{core.NewVec3(1.01, 0.12, -2.3), 1.0, material.NewMetal(core.NewVec3(0.16, 0.37, 0.3), 0.0)},
		{core.NewVec3(-1.6, -0.8, 0.3), 0.6, material.NewMetal(core.NewVec3(0.37, 0.32, 0.16), 0.0)},
		{core.NewVec3(1.6, -0.8, 0.3), 0.6, material.NewMetal(core.NewVec3(0.16, 0.16, 0.37), 0.95)},
		{core.NewVec3(0, -1.05, 1.6), 0.6, material.NewLambertian(core.NewVec3(0.42, 0.19, 0.19))},
	}
	for _, sp := range spheres {
		if err := s.AddSphere(sp.center, sp.radius, sp.material); err != nil {
			return nil, err
		}
	}

	return s, nil
}
