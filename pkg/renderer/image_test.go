package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/stjomd/raytracer/pkg/core"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) < tolerance &&
		math.Abs(a.Y-b.Y) < tolerance &&
		math.Abs(a.Z-b.Z) < tolerance
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		gamma float64
		want  uint8
	}{
		{"black", 0, 2, 0},
		{"white", 1, 2, 255},
		{"quarter with gamma 2", 0.25, 2, 128},
		{"half without gamma", 0.5, 1, 128},
		{"clamped above", 4, 2, 255},
		{"clamped below", -1, 2, 0},
		{"NaN", math.NaN(), 2, 0},
		{"positive infinity", math.Inf(1), 2, 255},
		{"gamma 2.2", 0.5, 2.2, uint8(256 * math.Pow(0.5, 1/2.2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := Quantize(core.NewVec3(tt.value, tt.value, tt.value), tt.gamma)
			if r != tt.want || g != tt.want || b != tt.want {
				t.Errorf("Quantize(%v, %v) = (%d, %d, %d), want %d", tt.value, tt.gamma, r, g, b, tt.want)
			}
		})
	}
}

func TestQuantize_PerChannel(t *testing.T) {
	r, g, b := Quantize(core.NewVec3(0.25, math.NaN(), 2), 2.0)
	if r != 128 || g != 0 || b != 255 {
		t.Errorf("Quantize = (%d, %d, %d), want (128, 0, 255)", r, g, b)
	}
}

func TestImage_SetGet(t *testing.T) {
	img := NewImage(3, 2, 2.0)
	if img.Width() != 3 || img.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", img.Width(), img.Height())
	}

	c := core.NewVec3(0.1, 0.2, 0.3)
	img.Set(2, 1, c)
	if got := img.Get(2, 1); got != c {
		t.Errorf("Get(2, 1) = %v, want %v", got, c)
	}
	if got := img.Get(1, 1); got != (core.Vec3{}) {
		t.Errorf("unset pixel = %v, want black", got)
	}
}

func TestImage_At(t *testing.T) {
	img := NewImage(2, 2, 2.0)
	img.Set(1, 0, core.NewVec3(1, 0.25, 0))

	if got, want := img.At(1, 0), (color.RGBA{R: 255, G: 128, B: 0, A: 255}); got != want {
		t.Errorf("At(1, 0) = %v, want %v", got, want)
	}
	if got, want := img.At(0, 0), (color.RGBA{A: 255}); got != want {
		t.Errorf("At(0, 0) = %v, want %v", got, want)
	}
	if got := img.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("out-of-bounds At = %v, want transparent", got)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 || b.Min.X != 0 || b.Min.Y != 0 {
		t.Errorf("Bounds = %v, want (0,0)-(2,2)", b)
	}
	if img.ColorModel() != color.RGBAModel {
		t.Error("expected RGBA color model")
	}
}
