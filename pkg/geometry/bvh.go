package geometry

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/stjomd/raytracer/pkg/core"
)

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox r3.Box
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Bounded // Shapes of a leaf node (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// Shapes without a bounding box are kept outside the tree and tested on every ray.
type BVH struct {
	Root      *BVHNode
	unbounded []core.Shape
}

// bvhItem caches the box center a shape is sorted by
type bvhItem struct {
	shape  Bounded
	center r3.Vec
}

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []core.Shape) *BVH {
	bvh := &BVH{}

	items := make([]bvhItem, 0, len(shapes))
	for _, shape := range shapes {
		if b, ok := shape.(Bounded); ok {
			items = append(items, bvhItem{shape: b, center: b.BoundingBox().Center()})
		} else {
			bvh.unbounded = append(bvh.unbounded, shape)
		}
	}

	if len(items) > 0 {
		bvh.Root = buildBVH(items)
	}
	return bvh
}

// buildBVH recursively builds the BVH with median splits along the longest axis
func buildBVH(items []bvhItem) *BVHNode {
	boundingBox := items[0].shape.BoundingBox()
	for _, item := range items[1:] {
		boundingBox = boundingBox.Union(item.shape.BoundingBox())
	}

	if len(items) <= leafThreshold {
		shapes := make([]Bounded, len(items))
		for i, item := range items {
			shapes[i] = item.shape
		}
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes,
		}
	}

	sortItemsByAxis(items, longestAxis(boundingBox))

	mid := len(items) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(items[:mid]),
		Right:       buildBVH(items[mid:]),
	}
}

// longestAxis returns 0, 1 or 2 for the X, Y or Z extent of the box
func longestAxis(box r3.Box) int {
	size := box.Size()
	switch {
	case size.X >= size.Y && size.X >= size.Z:
		return 0
	case size.Y >= size.Z:
		return 1
	default:
		return 2
	}
}

// sortItemsByAxis sorts items by their bounding box center along the specified axis
func sortItemsByAxis(items []bvhItem, axis int) {
	sort.SliceStable(items, func(i, j int) bool {
		centerI, centerJ := items[i].center, items[j].center
		switch axis {
		case 0:
			return centerI.X < centerJ.X
		case 1:
			return centerI.Y < centerJ.Y
		default:
			return centerI.Z < centerJ.Z
		}
	})
}

// Hit returns the closest intersection among all shapes
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	if bvh.Root != nil {
		if hit, isHit := hitNode(bvh.Root, ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}
	for _, shape := range bvh.unbounded {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// hitNode recursively tests ray intersection with BVH nodes
func hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if !hitBox(node.BoundingBox, ray, tMin, tMax) {
		return nil, false
	}

	var closestHit *core.HitRecord
	closestSoFar := tMax

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
				closestSoFar = hit.T
				closestHit = hit
			}
		}
		return closestHit, closestHit != nil
	}

	if hit, isHit := hitNode(node.Left, ray, tMin, closestSoFar); isHit {
		closestSoFar = hit.T
		closestHit = hit
	}
	if hit, isHit := hitNode(node.Right, ray, tMin, closestSoFar); isHit {
		closestHit = hit
	}

	return closestHit, closestHit != nil
}

// Bounds returns the center and radius of the sphere enclosing every shape.
// ok is false for an empty hierarchy or when a shape is unbounded.
func (bvh *BVH) Bounds() (center core.Vec3, radius float64, ok bool) {
	if bvh.Root == nil || len(bvh.unbounded) > 0 {
		return core.Vec3{}, 0, false
	}
	return boxCenter(bvh.Root.BoundingBox), boxRadius(bvh.Root.BoundingBox), true
}

// Depth returns the number of levels in the tree; 0 when it is empty
func (bvh *BVH) Depth() int {
	if bvh == nil {
		return 0
	}
	return nodeDepth(bvh.Root)
}

func nodeDepth(node *BVHNode) int {
	if node == nil {
		return 0
	}
	return 1 + max(nodeDepth(node.Left), nodeDepth(node.Right))
}
