package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Leaves are ordinary primitives; a node with a single primitive holds it
// on both sides.
type BVHNode struct {
	Left  Primitive
	Right Primitive
	bbox  core.AABB
}

// NewBVH constructs a BVH over the given primitives.
// It returns nil when there is nothing to build.
func NewBVH(objects []Primitive) *BVHNode {
	if len(objects) == 0 {
		return nil
	}

	// Make a copy of the slice so sorting does not reorder the caller's primitives
	objectsCopy := make([]Primitive, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy)
}

// buildBVH recursively splits objects at the median along the longest axis
func buildBVH(objects []Primitive) *BVHNode {
	// Calculate bounding box for the whole span
	bbox := core.EmptyAABB
	for _, object := range objects {
		bbox = bbox.Union(object.BoundingBox())
	}

	node := &BVHNode{bbox: bbox}

	switch len(objects) {
	case 1:
		node.Left = objects[0]
		node.Right = objects[0]
	case 2:
		node.Left = objects[0]
		node.Right = objects[1]
	default:
		axis := bbox.LongestAxis()
		sortByAxis(objects, axis)

		mid := len(objects) / 2
		node.Left = buildBVH(objects[:mid])
		node.Right = buildBVH(objects[mid:])
	}

	return node
}

// sortByAxis sorts primitives by the minimum of their bounding box along axis
func sortByAxis(objects []Primitive, axis int) {
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].BoundingBox().Axis(axis).Min < objects[j].BoundingBox().Axis(axis).Min
	})
}

// Hit tests the node's box, then both children, narrowing the right child's
// range to the left child's hit
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT, sampler)

	rightT := rayT
	if hitLeft {
		rightT.Max = leftHit.T
	}
	rightHit, hitRight := n.Right.Hit(ray, rightT, sampler)

	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the cached bounding box of the subtree
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// PDFValue is 0; BVHs are acceleration structures, not light groups
func (n *BVHNode) PDFValue(origin, direction core.Vec3) float64 {
	return 0
}

// RandomFrom returns an arbitrary fixed direction
func (n *BVHNode) RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return noSampleDirection
}

func (n *BVHNode) isPrimitive() {}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes int
	leafCount  int
	maxDepth   int
	avgDepth   float64
}

// getStats returns statistics about the BVH structure
func (n *BVHNode) getStats() bvhStats {
	stats := bvhStats{}
	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.leafCount > 0 {
		stats.avgDepth = stats.avgDepth / float64(stats.leafCount)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *bvhStats) {
	stats.totalNodes++

	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	children := []Primitive{n.Left, n.Right}
	if n.Left == n.Right {
		children = children[:1]
	}

	for _, child := range children {
		if inner, ok := child.(*BVHNode); ok {
			inner.collectStats(depth+1, stats)
		} else {
			stats.leafCount++
			stats.avgDepth += float64(depth + 1) // Accumulate depth for average calculation
		}
	}
}
