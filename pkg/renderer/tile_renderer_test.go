package renderer

import (
	"context"
	"errors"
	"image"
	"sync/atomic"
	"testing"
)

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		wantTiles     int
	}{
		{"exact fit", 64, 32, 32, 2},
		{"partial edge tiles", 70, 40, 32, 6},
		{"tile larger than image", 10, 5, 32, 1},
		{"single pixel tiles", 3, 2, 1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 42)
			if len(tiles) != tt.wantTiles {
				t.Fatalf("got %d tiles, want %d", len(tiles), tt.wantTiles)
			}

			covered := make([]int, tt.width*tt.height)
			for id, tile := range tiles {
				if tile.ID != id {
					t.Errorf("tile %d has ID %d", id, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for i, count := range covered {
				if count != 1 {
					t.Fatalf("pixel (%d, %d) covered %d times", i%tt.width, i/tt.width, count)
				}
			}
		})
	}
}

func TestNewTile_RandomDependsOnSeedAndID(t *testing.T) {
	first := func(seed int64, id int) float64 {
		return NewTile(id, image.Rect(0, 0, 1, 1), seed).Random.Float64()
	}

	if first(1, 3) != first(1, 3) {
		t.Error("same seed and id should give the same stream")
	}
	if first(1, 3) == first(1, 4) {
		t.Error("different tile ids should give different streams")
	}
	if first(1, 3) == first(2, 3) {
		t.Error("different seeds should give different streams")
	}
}

func TestWorkerPool_RunsEveryTile(t *testing.T) {
	tiles := NewTileGrid(20, 20, 4, 1)
	pool := NewWorkerPool(3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("GetNumWorkers = %d, want 3", pool.GetNumWorkers())
	}

	seen := make([]atomic.Int32, len(tiles))
	err := pool.Run(context.Background(), tiles, func(ctx context.Context, tile *Tile) error {
		seen[tile.ID].Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for id := range seen {
		if n := seen[id].Load(); n != 1 {
			t.Errorf("tile %d ran %d times", id, n)
		}
	}
}

func TestWorkerPool_StopsOnError(t *testing.T) {
	tiles := NewTileGrid(64, 64, 1, 1)
	pool := NewWorkerPool(1)
	failure := errors.New("tile failed")

	var ran atomic.Int32
	err := pool.Run(context.Background(), tiles, func(ctx context.Context, tile *Tile) error {
		ran.Add(1)
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected tile error, got %v", err)
	}
	if int(ran.Load()) == len(tiles) {
		t.Error("expected remaining tiles to be skipped after the first error")
	}
}

func TestNewWorkerPool_DefaultsToCPUCount(t *testing.T) {
	if n := NewWorkerPool(0).GetNumWorkers(); n < 1 {
		t.Errorf("GetNumWorkers = %d, want at least 1", n)
	}
}
