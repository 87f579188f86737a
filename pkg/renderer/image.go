package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/stjomd/raytracer/pkg/core"
)

// Image holds the averaged linear color of every pixel.
// Pixels are stored row-major with (0, 0) at the top-left corner.
// As an image.Image it yields gamma-corrected 8-bit colors.
type Image struct {
	width  int
	height int
	gamma  float64
	pixels []core.Vec3
}

// NewImage creates a black image; gamma is applied when pixels are quantized
func NewImage(width, height int, gamma float64) *Image {
	return &Image{
		width:  width,
		height: height,
		gamma:  gamma,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the image width in pixels
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels
func (img *Image) Height() int { return img.height }

// Gamma returns the gamma used for quantization
func (img *Image) Gamma() float64 { return img.gamma }

// Set stores the linear color of pixel (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	img.pixels[y*img.width+x] = c
}

// Get returns the linear color of pixel (x, y)
func (img *Image) Get(x, y int) core.Vec3 {
	return img.pixels[y*img.width+x]
}

// RGB8 returns the quantized 8-bit channels of pixel (x, y)
func (img *Image) RGB8(x, y int) (r, g, b uint8) {
	return Quantize(img.Get(x, y), img.gamma)
}

// ColorModel implements image.Image
func (img *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// At implements image.Image
func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := img.RGB8(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Quantize maps a linear color to 0..255 per channel: clamp to [0,1], gamma-correct, scale.
// NaN channels map to 0.
func Quantize(c core.Vec3, gamma float64) (r, g, b uint8) {
	c = core.NewVec3(zeroIfNaN(c.X), zeroIfNaN(c.Y), zeroIfNaN(c.Z)).Clamp(0, 1)
	if gamma > 0 && gamma != 1.0 {
		c = c.GammaCorrect(gamma)
	}
	return toByte(c.X), toByte(c.Y), toByte(c.Z)
}

func zeroIfNaN(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return value
}

func toByte(value float64) uint8 {
	return uint8(256 * math.Min(value, 0.999))
}
