package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/stjomd/raytracer/pkg/core"
)

// Bounded is a shape with a finite axis-aligned bounding box
type Bounded interface {
	core.Shape
	BoundingBox() r3.Box
}

// toR3 converts a core vector to a gonum vector
func toR3(v core.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// fromR3 converts a gonum vector to a core vector
func fromR3(v r3.Vec) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

// boxCenter returns the center of the box
func boxCenter(box r3.Box) core.Vec3 {
	return fromR3(box.Center())
}

// boxRadius returns the radius of the sphere circumscribing the box
func boxRadius(box r3.Box) float64 {
	return r3.Norm(r3.Scale(0.5, box.Size()))
}

// hitBox tests if a ray intersects the box within (tMin, tMax) using the slab method
func hitBox(box r3.Box, ray core.Ray, tMin, tMax float64) bool {
	mins := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	maxs := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}
	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	direction := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}

	for axis := 0; axis < 3; axis++ {
		// Ray parallel to this slab: origin must lie within it
		if math.Abs(direction[axis]) < 1e-12 {
			if origin[axis] < mins[axis] || origin[axis] > maxs[axis] {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction[axis]
		t1 := (mins[axis] - origin[axis]) * invDirection
		t2 := (maxs[axis] - origin[axis]) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}
