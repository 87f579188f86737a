package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/stjomd/raytracer/pkg/core"
)

// List is an ordered collection of shapes that is itself hittable.
// It resolves the nearest hit across all members.
type List struct {
	shapes  []core.Shape
	box     r3.Box
	bounded bool // false once any member has no finite bounding box
}

// NewList creates a list holding the given shapes
func NewList(shapes ...core.Shape) *List {
	l := &List{bounded: true}
	for _, shape := range shapes {
		l.Add(shape)
	}
	return l
}

// Add appends a shape and grows the bounding box
func (l *List) Add(shape core.Shape) {
	if len(l.shapes) == 0 {
		l.bounded = true
	}
	l.shapes = append(l.shapes, shape)

	b, ok := shape.(Bounded)
	if !ok {
		l.bounded = false
		return
	}
	if len(l.shapes) == 1 {
		l.box = b.BoundingBox()
	} else {
		l.box = l.box.Union(b.BoundingBox())
	}
}

// Len returns the number of shapes in the list
func (l *List) Len() int {
	return len(l.shapes)
}

// Shapes returns the shapes in insertion order
func (l *List) Shapes() []core.Shape {
	return l.shapes
}

// BoundingBox returns the box enclosing every member
func (l *List) BoundingBox() r3.Box {
	return l.box
}

// Bounds returns the center and radius of the sphere enclosing every member.
// ok is false for an empty list or when a member is unbounded.
func (l *List) Bounds() (center core.Vec3, radius float64, ok bool) {
	if len(l.shapes) == 0 || !l.bounded {
		return core.Vec3{}, 0, false
	}
	return boxCenter(l.box), boxRadius(l.box), true
}

// Hit returns the closest intersection among all members
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if len(l.shapes) == 0 {
		return nil, false
	}
	if l.bounded && !hitBox(l.box, ray, tMin, tMax) {
		return nil, false
	}

	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
