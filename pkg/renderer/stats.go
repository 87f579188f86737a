package renderer

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/stjomd/raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	AverageSamples  float64       // Average samples per pixel
	Tiles           int           // Number of tiles rendered
	Workers         int           // Number of parallel workers
	Elapsed         time.Duration // Wall-clock render time
	MeanLuminance   float64       // Mean luminance of the averaged pixels
	StdDevLuminance float64       // Standard deviation of pixel luminance across the image
	MeanNoise       float64       // Mean per-pixel standard error of the luminance estimate
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// StandardError returns the standard error of the mean luminance; 0 below two samples
func (ps *PixelStats) StandardError() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	variance := math.Max(0, ps.LuminanceSqAccum/n-mean*mean) * n / (n - 1)
	return math.Sqrt(variance / n)
}

// luminanceStats returns the mean and standard deviation of pixel luminance
func luminanceStats(img *Image) (mean, stdDev float64) {
	luminances := make([]float64, 0, img.Width()*img.Height())
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			luminances = append(luminances, img.Get(x, y).Luminance())
		}
	}
	if len(luminances) == 0 {
		return 0, 0
	}
	if len(luminances) == 1 {
		return luminances[0], 0
	}
	return stat.MeanStdDev(luminances, nil)
}
