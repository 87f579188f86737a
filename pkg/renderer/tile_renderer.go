package renderer

import (
	"image"
	"math/rand"

	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/integrator"
	"github.com/stjomd/raytracer/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a new tile whose random stream depends only on seed and id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(tileSeed(seed, id))),
	}
}

// tileSeed mixes the render seed with the tile id
func tileSeed(seed int64, id int) int64 {
	return seed*1_000_003 + int64(id) + 42
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
	}
}

// SamplePixel takes SamplesPerPixel samples of pixel (i, j).
// A single sample goes through the pixel center; more samples are jittered across the pixel.
func (tr *TileRenderer) SamplePixel(i, j int, sampler core.Sampler) PixelStats {
	config := tr.scene.SamplingConfig
	camera := tr.scene.Camera

	var ps PixelStats
	for s := 0; s < config.SamplesPerPixel; s++ {
		px, py := float64(i)+0.5, float64(j)+0.5
		if config.SamplesPerPixel > 1 {
			jitter := sampler.Get2D()
			px, py = float64(i)+jitter.X, float64(j)+jitter.Y
		}

		ray := camera.GetRay(px, py, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler, config.MaxDepth))
	}
	return ps
}

// RenderTileBounds renders pixels within the specified bounds into img.
// It returns the summed per-pixel standard error for noise reporting.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *Image, sampler core.Sampler) (samples int, noise float64) {
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := tr.SamplePixel(i, j, sampler)
			img.Set(i, j, ps.GetColor())
			samples += ps.SampleCount
			noise += ps.StandardError()
		}
	}
	return samples, noise
}
