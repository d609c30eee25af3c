package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate displaces a primitive by a fixed offset
type Translate struct {
	Object Primitive
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so that it appears moved by offset
func NewTranslate(object Primitive, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Offset(offset),
	}
}

// Hit moves the ray into object space, intersects, and moves the hit back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Object.Hit(offsetRay, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the translated bounding box
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// PDFValue evaluates the wrapped primitive's density from the object-space origin
func (t *Translate) PDFValue(origin, direction core.Vec3) float64 {
	return t.Object.PDFValue(origin.Subtract(t.Offset), direction)
}

// RandomFrom samples the wrapped primitive from the object-space origin
func (t *Translate) RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return t.Object.RandomFrom(origin.Subtract(t.Offset), sampler)
}

func (t *Translate) isPrimitive() {}

// RotateY rotates a primitive about the Y axis
type RotateY struct {
	Object   Primitive
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis
func NewRotateY(object Primitive, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Rotate all eight corners of the object's box and bound the results
	box := object.BoundingBox()
	corners := make([]core.Vec3, 0, 8)
	for _, x := range []float64{box.X.Min, box.X.Max} {
		for _, y := range []float64{box.Y.Min, box.Y.Max} {
			for _, z := range []float64{box.Z.Min, box.Z.Max} {
				corners = append(corners, r.toWorld(core.NewVec3(x, y, z)))
			}
		}
	}
	r.bbox = core.NewAABBFromPoints(corners...)

	return r
}

// toObject rotates a world-space vector by -angle
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object-space vector by +angle
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, intersects, and rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(rotated, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the bounds of the rotated object box
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}

// PDFValue evaluates the wrapped primitive's density in object space
func (r *RotateY) PDFValue(origin, direction core.Vec3) float64 {
	return r.Object.PDFValue(r.toObject(origin), r.toObject(direction))
}

// RandomFrom samples the wrapped primitive in object space and rotates the result back
func (r *RotateY) RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return r.toWorld(r.Object.RandomFrom(r.toObject(origin), sampler))
}

func (r *RotateY) isPrimitive() {}
