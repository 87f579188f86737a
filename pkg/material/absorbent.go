package material

import (
	"github.com/stjomd/raytracer/pkg/core"
)

// Absorbent swallows every ray, rendering as pure black
type Absorbent struct{}

// NewAbsorbent creates a new absorbent material
func NewAbsorbent() *Absorbent {
	return &Absorbent{}
}

// Scatter implements the Material interface; the ray never continues
func (a *Absorbent) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}
