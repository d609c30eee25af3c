package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// List is an unordered collection of primitives searched linearly.
// It is used for small groups such as light lists and box faces, and as the
// flat input to BVH construction.
type List struct {
	objects []Primitive
	bbox    core.AABB
}

// NewList creates a list holding the given primitives
func NewList(objects ...Primitive) *List {
	l := &List{bbox: core.EmptyAABB}
	for _, object := range objects {
		l.Add(object)
	}
	return l
}

// Add appends a primitive and grows the cached bounding box to include it
func (l *List) Add(object Primitive) {
	l.objects = append(l.objects, object)
	l.bbox = l.bbox.Union(object.BoundingBox())
}

// Len returns the number of primitives in the list
func (l *List) Len() int {
	return len(l.objects)
}

// Objects returns a copy of the list's primitives
func (l *List) Objects() []Primitive {
	objects := make([]Primitive, len(l.objects))
	copy(objects, l.objects)
	return objects
}

// Hit tests every primitive, shrinking the search range to the closest hit so far
func (l *List) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.objects {
		if hit, isHit := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), sampler); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all members' bounding boxes
func (l *List) BoundingBox() core.AABB {
	return l.bbox
}

// PDFValue averages the members' densities, matching RandomFrom's uniform choice of member
func (l *List) PDFValue(origin, direction core.Vec3) float64 {
	if len(l.objects) == 0 {
		return 0
	}

	weight := 1.0 / float64(len(l.objects))
	sum := 0.0
	for _, object := range l.objects {
		sum += weight * object.PDFValue(origin, direction)
	}
	return sum
}

// RandomFrom samples a direction toward a uniformly chosen member
func (l *List) RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if len(l.objects) == 0 {
		return noSampleDirection
	}
	index := core.RandomInt(sampler, 0, len(l.objects)-1)
	return l.objects[index].RandomFrom(origin, sampler)
}

func (l *List) isPrimitive() {}
