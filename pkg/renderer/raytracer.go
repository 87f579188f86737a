package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/integrator"
	"github.com/stjomd/raytracer/pkg/scene"
)

// Config contains renderer settings that do not belong to the scene
type Config struct {
	TileSize   int     // Size of each tile in pixels
	NumWorkers int     // Number of parallel workers (0 = auto-detect CPU count)
	Seed       int64   // Base seed for every tile's random generator
	Gamma      float64 // Gamma applied when quantizing pixels
}

// DefaultConfig returns the renderer settings used by the CLI
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0,
		Seed:       42,
		Gamma:      2.0,
	}
}

// Validate reports a configuration error for unusable renderer settings
func (c Config) Validate() error {
	if c.TileSize < 1 {
		return fmt.Errorf("tile size %d must be at least 1: %w", c.TileSize, core.ErrInvalidConfig)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count %d must not be negative: %w", c.NumWorkers, core.ErrInvalidConfig)
	}
	if !(c.Gamma > 0) {
		return fmt.Errorf("gamma %v must be positive: %w", c.Gamma, core.ErrInvalidConfig)
	}
	return nil
}

// Raytracer renders a scene into an Image tile by tile
type Raytracer struct {
	scene      *scene.Scene
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer prepares the scene and creates a raytracer using path tracing
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) (*Raytracer, error) {
	if s == nil {
		return nil, fmt.Errorf("scene is nil: %w", core.ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("failed to preprocess scene: %w", err)
	}
	if logger == nil {
		logger = NewDiscardLogger()
	}

	return &Raytracer{
		scene:      s,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(),
		logger:     logger,
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// GetConfig returns the renderer settings
func (rt *Raytracer) GetConfig() Config {
	return rt.config
}

// SamplePixel returns the averaged linear color of pixel (i, j)
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	ps := NewTileRenderer(rt.scene, rt.integrator).SamplePixel(i, j, sampler)
	return ps.GetColor()
}

// Render renders the whole image. On cancellation it returns the context's error and no image.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	width, height := rt.scene.Camera.Size()
	sampling := rt.scene.SamplingConfig

	if center, radius, ok := rt.scene.Bounds(); ok {
		rt.logger.Printf("Scene: %d objects, bounds center %v radius %.2f, BVH depth %d\n",
			rt.scene.GetPrimitiveCount(), center, radius, rt.scene.BVH.Depth())
	} else {
		rt.logger.Printf("Scene: empty\n")
	}
	rt.logger.Printf("Rendering %dx%d, %d spp, depth %d\n",
		width, height, sampling.SamplesPerPixel, sampling.MaxDepth)

	img := NewImage(width, height, rt.config.Gamma)
	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)
	pool := NewWorkerPool(rt.config.NumWorkers)
	tileRenderer := NewTileRenderer(rt.scene, rt.integrator)

	var totalSamples atomic.Int64
	var completed atomic.Int64
	noisePerTile := make([]float64, len(tiles))

	start := time.Now()
	err := pool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) error {
		sampler := core.NewRandomSampler(tile.Random)
		samples, noise := tileRenderer.RenderTileBounds(tile.Bounds, img, sampler)
		totalSamples.Add(int64(samples))
		noisePerTile[tile.ID] = noise

		done := completed.Add(1)
		if remaining := int64(len(tiles)) - done; remaining > 0 && done%16 == 0 {
			rt.logger.Printf("Tiles remaining: %d of %d\n", remaining, len(tiles))
		}
		return nil
	})
	elapsed := time.Since(start)
	if err != nil {
		rt.logger.Printf("Render cancelled after %v: %v\n", elapsed.Round(time.Millisecond), err)
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		TotalPixels:  width * height,
		TotalSamples: int(totalSamples.Load()),
		Tiles:        len(tiles),
		Workers:      pool.GetNumWorkers(),
		Elapsed:      elapsed,
	}
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
		var noise float64
		for _, n := range noisePerTile {
			noise += n
		}
		stats.MeanNoise = noise / float64(stats.TotalPixels)
	}
	stats.MeanLuminance, stats.StdDevLuminance = luminanceStats(img)

	rt.logger.Printf("Render complete in %v: %d tiles, %d workers, %.1f samples/pixel\n",
		elapsed.Round(time.Millisecond), stats.Tiles, stats.Workers, stats.AverageSamples)
	rt.logger.Printf("Luminance: mean %.4f, std dev %.4f, mean noise %.5f\n",
		stats.MeanLuminance, stats.StdDevLuminance, stats.MeanNoise)

	return img, stats, nil
}
