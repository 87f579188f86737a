package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/geometry"
	"github.com/stjomd/raytracer/pkg/material"
)

const validScene = `{
	"name": "Metal Ball",
	"camera": {
		"fov": 27.0,
		"source": [0.0, 0.0, -1.0],
		"target": [0.0, 0.0, 0.0],
		"aperture": 0.0,
		"focusDistance": 0.0
	},
	"scene": [
		{
			"type": "sphere",
			"center": [0.0, 0.0, 0.0],
			"radius": 1.5,
			"material": {
				"type": "metal",
				"color": [0.5, 0.2, 0.1],
				"fuzz": 0.5
			}
		}
	]
}`

func TestParseScene_Valid(t *testing.T) {
	file, err := ParseScene(strings.NewReader(validScene))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	if file.Name != "Metal Ball" {
		t.Errorf("Name = %q, want %q", file.Name, "Metal Ball")
	}
	if *file.Camera.Fov != 27 {
		t.Errorf("fov = %v, want 27", *file.Camera.Fov)
	}
	if len(file.Scene) != 1 {
		t.Fatalf("got %d objects, want 1", len(file.Scene))
	}
	object := file.Scene[0]
	if object.Type != "sphere" || object.Radius != 1.5 || object.Material.Type != "metal" || object.Material.Fuzz != 0.5 {
		t.Errorf("unexpected object %+v", object)
	}
}

func TestBuildScene(t *testing.T) {
	file, err := ParseScene(strings.NewReader(validScene))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	s, err := file.BuildScene()
	if err != nil {
		t.Fatalf("BuildScene failed: %v", err)
	}

	config := s.Camera.GetConfig()
	if config.Center != core.NewVec3(0, 0, -1) || config.LookAt != (core.Vec3{}) || config.VFov != 27 {
		t.Errorf("unexpected camera config %+v", config)
	}
	if w, h := s.Camera.Size(); w != 400 || h != 225 {
		t.Errorf("camera size = %dx%d, want default 400x225", w, h)
	}
	if s.SamplingConfig.SamplesPerPixel != 100 || s.SamplingConfig.MaxDepth != 10 {
		t.Errorf("sampling = %+v, want defaults", s.SamplingConfig)
	}
	if s.GetPrimitiveCount() != 1 {
		t.Fatalf("got %d shapes, want 1", s.GetPrimitiveCount())
	}

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok := s.Hit(ray, 0.001, 100)
	if !ok {
		t.Fatal("expected the sphere to be hit")
	}
	metal, isMetal := hit.Material.(*material.Metal)
	if !isMetal {
		t.Fatalf("material = %T, want *material.Metal", hit.Material)
	}
	if metal.Albedo != core.NewVec3(0.5, 0.2, 0.1) || metal.Fuzz != 0.5 {
		t.Errorf("metal = %+v", metal)
	}
}

func TestBuildScene_OptionalSections(t *testing.T) {
	input := `{
		"camera": {"fov": 60, "source": [0, 1, 3], "target": [0, 0, 0], "up": [0, 1, 0],
		           "defocusAngle": 2, "focusDistance": 3, "width": 32, "height": 16},
		"sampling": {"samplesPerPixel": 8, "maxDepth": 0},
		"background": {"top": [0, 0, 0], "bottom": [1, 0.5, 0]},
		"scene": [
			{"type": "sphere", "center": [0, 0, 0], "radius": 0.5, "material": {"type": "matte", "color": [0.1, 0.2, 0.3]}},
			{"type": "sphere", "center": [1, 0, 0], "radius": 0.5, "material": {"type": "lambertian", "color": [1, 1, 1]}},
			{"type": "sphere", "center": [2, 0, 0], "radius": 0.5, "material": {"type": "dielectric", "ridx": 1.5}},
			{"type": "sphere", "center": [3, 0, 0], "radius": 0.5, "material": {"type": "absorbent"}}
		]
	}`
	file, err := ParseScene(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	s, err := file.BuildScene()
	if err != nil {
		t.Fatalf("BuildScene failed: %v", err)
	}

	if w, h := s.Camera.Size(); w != 32 || h != 16 {
		t.Errorf("camera size = %dx%d, want 32x16", w, h)
	}
	if s.Camera.LensRadius() <= 0 {
		t.Error("expected a lens from the defocus angle")
	}
	if s.SamplingConfig.SamplesPerPixel != 8 || s.SamplingConfig.MaxDepth != 0 {
		t.Errorf("sampling = %+v, want {8 0}", s.SamplingConfig)
	}
	if s.Background.Top != (core.Vec3{}) || s.Background.Bottom != core.NewVec3(1, 0.5, 0) {
		t.Errorf("background = %+v", s.Background)
	}
	if s.GetPrimitiveCount() != 4 {
		t.Errorf("got %d shapes, want 4", s.GetPrimitiveCount())
	}
}

func TestBuildScene_CameraOverride(t *testing.T) {
	file, err := ParseScene(strings.NewReader(validScene))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	s, err := file.BuildScene(geometry.CameraConfig{Width: 64, Height: 48, VFov: 40})
	if err != nil {
		t.Fatalf("BuildScene failed: %v", err)
	}

	config := s.Camera.GetConfig()
	if config.Width != 64 || config.Height != 48 || config.VFov != 40 {
		t.Errorf("override not applied: %+v", config)
	}
	if config.Center != core.NewVec3(0, 0, -1) {
		t.Errorf("Center = %v, want value from file", config.Center)
	}
}

func TestParseScene_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"camera": `},
		{"missing source", `{"camera": {"fov": 27, "target": [0, 0, 0]}, "scene": []}`},
		{"missing target", `{"camera": {"fov": 27, "source": [0, 0, -1]}, "scene": []}`},
		{"missing fov", `{"camera": {"source": [0, 0, -1], "target": [0, 0, 0]}, "scene": []}`},
		{"missing camera", `{"scene": []}`},
		{"missing scene", `{"camera": {"fov": 27, "source": [0, 0, -1], "target": [0, 0, 0]}}`},
		{"unknown field", `{"camera": {"fov": 27, "source": [0, 0, -1], "target": [0, 0, 0], "zoom": 2}, "scene": []}`},
		{"trailing data", `{"camera": {"fov": 27, "source": [0, 0, -1], "target": [0, 0, 0]}, "scene": []} {}`},
		{"wrong type", `{"camera": {"fov": "wide", "source": [0, 0, -1], "target": [0, 0, 0]}, "scene": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.input))
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestBuildScene_Invalid(t *testing.T) {
	const camera = `"camera": {"fov": 27, "source": [0, 0, -1], "target": [0, 0, 0]}`
	tests := []struct {
		name  string
		input string
	}{
		{"short vector", `{"camera": {"fov": 27, "source": [0, 0], "target": [0, 0, 0]}, "scene": []}`},
		{"camera at target", `{"camera": {"fov": 27, "source": [0, 0, 0], "target": [0, 0, 0]}, "scene": []}`},
		{"fov out of range", `{"camera": {"fov": 180, "source": [0, 0, -1], "target": [0, 0, 0]}, "scene": []}`},
		{"negative samples", `{` + camera + `, "sampling": {"samplesPerPixel": 0}, "scene": []}`},
		{"background out of range", `{` + camera + `, "background": {"top": [2, 0, 0]}, "scene": []}`},
		{"unknown object", `{` + camera + `, "scene": [{"type": "cube", "center": [0, 0, 0], "radius": 1, "material": {"type": "absorbent"}}]}`},
		{"missing material", `{` + camera + `, "scene": [{"type": "sphere", "center": [0, 0, 0], "radius": 1}]}`},
		{"zero radius", `{` + camera + `, "scene": [{"type": "sphere", "center": [0, 0, 0], "radius": 0, "material": {"type": "absorbent"}}]}`},
		{"negative radius", `{` + camera + `, "scene": [{"type": "sphere", "center": [0, 0, 0], "radius": -1, "material": {"type": "absorbent"}}]}`},
		{"unknown material", `{` + camera + `, "scene": [{"type": "sphere", "center": [0, 0, 0], "radius": 1, "material": {"type": "plastic"}}]}`},
		{"albedo above one", `{` + camera + `, "scene": [{"type": "sphere", "center": [0, 0, 0], "radius": 1, "material": {"type": "matte", "color": [1.5, 0, 0]}}]}`},
		{"negative albedo", `{` + camera + `, "scene": [{"type": "sphere", "center": [0, 0, 0], "radius": 1, "material": {"type": "metal", "color": [0, -0.1, 0], "fuzz": 0}}]}`},
		{"missing color", `{` + camera + `, "scene": [{"type": "sphere", "center": [0, 0, 0], "radius": 1, "material": {"type": "matte"}}]}`},
		{"zero refractive index", `{` + camera + `, "scene": [{"type": "sphere", "center": [0, 0, 0], "radius": 1, "material": {"type": "dielectric", "ridx": 0}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := ParseScene(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseScene failed: %v", err)
			}
			if _, err := file.BuildScene(); !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metal-ball.json")
	if err := os.WriteFile(path, []byte(validScene), 0o644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}

	s, err := LoadScene(path, geometry.CameraConfig{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if w, h := s.Camera.Size(); w != 8 || h != 8 {
		t.Errorf("camera size = %dx%d, want 8x8", w, h)
	}

	if _, err := LoadScene(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
