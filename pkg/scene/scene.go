package scene

import (
	"fmt"

	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []core.Shape   // Objects in the scene
	World          *geometry.List // Aggregate of Shapes, kept current by Add
	BVH            *geometry.BVH  // Acceleration structure built by Preprocess
	SamplingConfig SamplingConfig
	Background     Background
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the sampling used when a scene does not specify one
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        10,
	}
}

// Validate reports a configuration error for unusable sampling settings
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel %d must be at least 1: %w", c.SamplesPerPixel, core.ErrInvalidConfig)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth %d must not be negative: %w", c.MaxDepth, core.ErrInvalidConfig)
	}
	return nil
}

// Background is the sky seen by rays that leave the scene.
// It blends vertically from Bottom to Top.
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// DefaultBackground returns a white to light blue sky
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color returns the background color seen along the ray
func (b Background) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}

// NewScene creates an empty scene with a validated camera and sampling configuration
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) (*Scene, error) {
	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}
	if err := samplingConfig.Validate(); err != nil {
		return nil, err
	}

	return &Scene{
		Camera:         camera,
		CameraConfig:   cameraConfig,
		Shapes:         make([]core.Shape, 0),
		World:          geometry.NewList(),
		SamplingConfig: samplingConfig,
		Background:     DefaultBackground(),
	}, nil
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...core.Shape) {
	for _, shape := range shapes {
		s.Shapes = append(s.Shapes, shape)
		if s.World != nil {
			s.World.Add(shape)
		}
	}
	// Stale until the next Preprocess
	s.BVH = nil
}

// AddSphere validates and adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, material core.Material) error {
	sphere, err := geometry.NewSphere(center, radius, material)
	if err != nil {
		return err
	}
	s.Add(sphere)
	return nil
}

// SetCameraConfig validates config and replaces the scene camera
func (s *Scene) SetCameraConfig(config geometry.CameraConfig) error {
	camera, err := geometry.NewCamera(config)
	if err != nil {
		return err
	}
	s.Camera = camera
	s.CameraConfig = config
	return nil
}

// Preprocess prepares the scene for rendering.
// It rebuilds World and the BVH from Shapes and recreates the camera if it is missing.
func (s *Scene) Preprocess() error {
	if err := s.SamplingConfig.Validate(); err != nil {
		return err
	}
	if s.Camera == nil {
		camera, err := geometry.NewCamera(s.CameraConfig)
		if err != nil {
			return err
		}
		s.Camera = camera
	}

	s.World = geometry.NewList(s.Shapes...)
	s.BVH = geometry.NewBVH(s.Shapes)
	return nil
}

// Hit finds the nearest intersection with any object in the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if s.BVH != nil {
		return s.BVH.Hit(ray, tMin, tMax)
	}
	if s.World == nil {
		return nil, false
	}
	return s.World.Hit(ray, tMin, tMax)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// Bounds returns the center and radius of a sphere enclosing all objects
func (s *Scene) Bounds() (center core.Vec3, radius float64, ok bool) {
	if s.BVH != nil {
		return s.BVH.Bounds()
	}
	if s.World == nil {
		return core.Vec3{}, 0, false
	}
	return s.World.Bounds()
}

// resolveCamera merges the first override, if any, onto a scene's default camera
func resolveCamera(defaults geometry.CameraConfig, cameraOverrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(cameraOverrides) > 0 {
		return geometry.MergeCameraConfig(defaults, cameraOverrides[0])
	}
	return defaults
}
