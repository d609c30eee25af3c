package core

import "math"

// minimumExtent is the thinnest an AABB axis may be after construction.
// Planar primitives such as axis-aligned quads would otherwise produce
// zero-thickness boxes that the slab test rejects.
const minimumExtent = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB bounds nothing and is the identity for Union
var EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}

// NewAABB creates an AABB from per-axis intervals, padding degenerate axes
func NewAABB(x, y, z Interval) AABB {
	aabb := AABB{X: x, Y: y, Z: z}
	aabb.padToMinimums()
	return aabb
}

// NewAABBFromPoints creates an AABB that bounds all given points.
// The points may be given in any order; each axis is sorted so that Min <= Max.
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return EmptyAABB
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return NewAABB(
		NewInterval(min.X, max.X),
		NewInterval(min.Y, max.Y),
		NewInterval(min.Z, max.Z),
	)
}

// padToMinimums widens any axis thinner than minimumExtent
func (aabb *AABB) padToMinimums() {
	if aabb.X.Size() < minimumExtent {
		aabb.X = aabb.X.Expand(minimumExtent)
	}
	if aabb.Y.Size() < minimumExtent {
		aabb.Y = aabb.Y.Expand(minimumExtent)
	}
	if aabb.Z.Size() < minimumExtent {
		aabb.Z = aabb.Z.Expand(minimumExtent)
	}
}

// Axis returns the interval for axis 0 (X), 1 (Y) or 2 (Z)
func (aabb AABB) Axis(axis int) Interval {
	switch axis {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	default:
		return aabb.Z
	}
}

// Hit tests if a ray intersects with this AABB using the slab method.
// A zero direction component divides to ±Inf, which keeps the comparisons
// below consistent under IEEE-754 without a special case.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		ax := aabb.Axis(axis)
		adinv := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (ax.Min - origin) * adinv
		t1 := (ax.Max - origin) * adinv

		if t0 < t1 {
			if t0 > rayT.Min {
				rayT.Min = t0
			}
			if t1 < rayT.Max {
				rayT.Max = t1
			}
		} else {
			if t1 > rayT.Min {
				rayT.Min = t1
			}
			if t0 < rayT.Max {
				rayT.Max = t0
			}
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		X: aabb.X.Union(other.X),
		Y: aabb.Y.Union(other.Y),
		Z: aabb.Z.Union(other.Z),
	}
}

// Offset returns the AABB translated by offset
func (aabb AABB) Offset(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Offset(offset.X),
		Y: aabb.Y.Offset(offset.Y),
		Z: aabb.Z.Offset(offset.Z),
	}
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min().Add(aabb.Max()).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties go to the lowest axis index.
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x >= y && x >= z {
		return 0 // X axis
	}
	if y >= z {
		return 1 // Y axis
	}
	return 2 // Z axis
}
