package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/geometry"
	"github.com/stjomd/raytracer/pkg/material"
	"github.com/stjomd/raytracer/pkg/scene"
)

// SceneFile is the JSON description of a scene
type SceneFile struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Camera      *CameraInput     `json:"camera"`
	Sampling    *SamplingInput   `json:"sampling"`
	Background  *BackgroundInput `json:"background"`
	Scene       []ObjectInput    `json:"scene"`
}

// CameraInput holds the camera settings of a scene file.
// Fov, Source and Target are required.
type CameraInput struct {
	Fov           *float64  `json:"fov"`
	Source        []float64 `json:"source"`
	Target        []float64 `json:"target"`
	Up            []float64 `json:"up"`
	Aperture      float64   `json:"aperture"`
	DefocusAngle  float64   `json:"defocusAngle"`
	FocusDistance float64   `json:"focusDistance"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
}

// SamplingInput overrides the default sampling settings
type SamplingInput struct {
	SamplesPerPixel *int `json:"samplesPerPixel"`
	MaxDepth        *int `json:"maxDepth"`
}

// BackgroundInput overrides the default sky colors
type BackgroundInput struct {
	Top    []float64 `json:"top"`
	Bottom []float64 `json:"bottom"`
}

// ObjectInput describes one object; only spheres are supported
type ObjectInput struct {
	Type     string         `json:"type"`
	Center   []float64      `json:"center"`
	Radius   float64        `json:"radius"`
	Material *MaterialInput `json:"material"`
}

// MaterialInput describes a surface material
type MaterialInput struct {
	Type  string    `json:"type"`
	Color []float64 `json:"color"`
	Fuzz  float64   `json:"fuzz"`
	Ridx  float64   `json:"ridx"`
}

// invalid wraps a scene file problem as a configuration error
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), core.ErrInvalidConfig)
}

// ParseScene decodes a scene file and checks that required fields are present.
// Unknown fields are rejected.
func ParseScene(r io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w: %w", core.ErrInvalidConfig, err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, invalid("unexpected data after scene object")
	}

	if file.Camera == nil {
		return nil, invalid("missing camera section")
	}
	if file.Camera.Fov == nil {
		return nil, invalid("missing camera.fov")
	}
	if file.Camera.Source == nil {
		return nil, invalid("missing camera.source")
	}
	if file.Camera.Target == nil {
		return nil, invalid("missing camera.target")
	}
	if file.Scene == nil {
		return nil, invalid("missing scene list")
	}

	return &file, nil
}

// LoadScene reads a JSON scene file and builds the scene it describes
func LoadScene(path string, cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	file, err := ParseScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file.BuildScene(cameraOverrides...)
}

// BuildScene constructs the scene, applying the first camera override if given
func (file *SceneFile) BuildScene(cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	cameraConfig, err := file.Camera.toConfig()
	if err != nil {
		return nil, err
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	sampling := scene.DefaultSamplingConfig()
	if file.Sampling != nil {
		if file.Sampling.SamplesPerPixel != nil {
			sampling.SamplesPerPixel = *file.Sampling.SamplesPerPixel
		}
		if file.Sampling.MaxDepth != nil {
			sampling.MaxDepth = *file.Sampling.MaxDepth
		}
	}

	s, err := scene.NewScene(cameraConfig, sampling)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
	}

	if file.Background != nil {
		if file.Background.Top != nil {
			if s.Background.Top, err = parseColor("background.top", file.Background.Top); err != nil {
				return nil, err
			}
		}
		if file.Background.Bottom != nil {
			if s.Background.Bottom, err = parseColor("background.bottom", file.Background.Bottom); err != nil {
				return nil, err
			}
		}
	}

	for i, object := range file.Scene {
		if err := addObject(s, object); err != nil {
			return nil, fmt.Errorf("scene[%d]: %w", i, err)
		}
	}

	return s, nil
}

func (c *CameraInput) toConfig() (geometry.CameraConfig, error) {
	config := geometry.DefaultCameraConfig()

	source, err := parseVec3("camera.source", c.Source)
	if err != nil {
		return config, err
	}
	target, err := parseVec3("camera.target", c.Target)
	if err != nil {
		return config, err
	}
	config.Center = source
	config.LookAt = target
	config.VFov = *c.Fov

	if c.Up != nil {
		if config.Up, err = parseVec3("camera.up", c.Up); err != nil {
			return config, err
		}
	}
	config.Aperture = c.Aperture
	config.DefocusAngle = c.DefocusAngle
	config.FocusDistance = c.FocusDistance
	if c.Width != 0 {
		config.Width = c.Width
	}
	if c.Height != 0 {
		config.Height = c.Height
	}
	return config, nil
}

func addObject(s *scene.Scene, object ObjectInput) error {
	if object.Type != "sphere" {
		return invalid("unknown object type %q", object.Type)
	}
	center, err := parseVec3("center", object.Center)
	if err != nil {
		return err
	}
	if object.Material == nil {
		return invalid("sphere is missing a material")
	}
	mat, err := object.Material.toMaterial()
	if err != nil {
		return err
	}
	if err := s.AddSphere(center, object.Radius, mat); err != nil {
		return fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
	}
	return nil
}

func (m *MaterialInput) toMaterial() (core.Material, error) {
	switch m.Type {
	case "matte", "lambertian":
		albedo, err := parseColor("material.color", m.Color)
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil
	case "metal":
		albedo, err := parseColor("material.color", m.Color)
		if err != nil {
			return nil, err
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric":
		dielectric, err := material.NewDielectric(m.Ridx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
		}
		return dielectric, nil
	case "absorbent", "absorbant":
		return material.NewAbsorbent(), nil
	default:
		return nil, invalid("unknown material type %q", m.Type)
	}
}

func parseVec3(field string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, invalid("%s must have 3 components, got %d", field, len(values))
	}
	v := core.NewVec3(values[0], values[1], values[2])
	if !v.IsFinite() {
		return core.Vec3{}, invalid("%s must be finite", field)
	}
	return v, nil
}

// parseColor parses an RGB triple with every channel in [0,1]
func parseColor(field string, values []float64) (core.Vec3, error) {
	c, err := parseVec3(field, values)
	if err != nil {
		return c, err
	}
	for _, channel := range []float64{c.X, c.Y, c.Z} {
		if channel < 0 || channel > 1 {
			return core.Vec3{}, invalid("%s channels must lie in [0,1], got %v", field, c)
		}
	}
	return c, nil
}
