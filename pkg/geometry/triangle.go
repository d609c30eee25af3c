package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// insideThreshold is how parallel the three sub-triangle normals must be
// for a point to count as inside the triangle. Points very close to an edge
// can fall below it and miss.
const insideThreshold = 0.999

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	normal     core.Vec3         // Cached unit normal
	d          float64           // Plane equation constant
	w          core.Vec3         // Cached (e1 × e2) / |e1 × e2|² for planar coordinates
	area       float64
	bbox       core.AABB
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}

	// Precompute normal and bounding box for efficiency
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	cross := edge1.Cross(edge2)

	t.normal = cross.Normalize()
	t.d = t.normal.Dot(v0)
	t.area = 0.5 * cross.Length()
	if t.area > 0 {
		t.w = cross.Divide(cross.LengthSquared())
	}
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)

	return t
}

// Normal returns the unit normal, oriented by the vertex winding
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Hit intersects the triangle's plane and then checks that the hit point
// lies on the same side of all three edges
func (t *Triangle) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if t.area == 0 {
		return nil, false
	}

	denominator := t.normal.Dot(ray.Direction)

	// Ray lies in or parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	tHit := (t.d - t.normal.Dot(ray.Origin)) / denominator
	if !rayT.Contains(tHit) {
		return nil, false
	}

	p := ray.At(tHit)

	// Normals of the sub-triangles formed with each edge must all agree
	c0 := t.V1.Subtract(t.V0).Cross(p.Subtract(t.V0)).Normalize()
	c1 := t.V2.Subtract(t.V1).Cross(p.Subtract(t.V1)).Normalize()
	c2 := t.V0.Subtract(t.V2).Cross(p.Subtract(t.V2)).Normalize()
	if c0.Dot(c1) <= insideThreshold || c1.Dot(c2) <= insideThreshold || c0.Dot(c2) <= insideThreshold {
		return nil, false
	}

	// Planar coordinates along the two edges from V0
	hitVector := p.Subtract(t.V0)
	alpha := t.w.Dot(hitVector.Cross(t.V2.Subtract(t.V0)))
	beta := t.w.Dot(t.V1.Subtract(t.V0).Cross(hitVector))

	hitRecord := &material.HitRecord{
		T:        tHit,
		Point:    p,
		U:        alpha,
		V:        beta,
		Material: t.Material,
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	return hitRecord, true
}

// BoundingBox returns the cached bounding box
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Area returns the surface area of the triangle
func (t *Triangle) Area() float64 {
	return t.area
}

// PDFValue converts the uniform area density to solid angle as seen from origin
func (t *Triangle) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := t.Hit(core.NewRay(origin, direction), core.NewInterval(0.001, math.Inf(1)), nil)
	if !ok {
		return 0
	}
	return areaToSolidAngle(hit.T, direction, hit.Normal, t.area)
}

// RandomFrom returns a direction toward a uniformly chosen point on the triangle
func (t *Triangle) RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	r1, r2 := sample.X, sample.Y

	// Fold the upper half of the unit square back onto the triangle
	if r1+r2 > 1 {
		r1, r2 = 1-r1, 1-r2
	}

	p := t.V0.Add(t.V1.Subtract(t.V0).Multiply(r1)).Add(t.V2.Subtract(t.V0).Multiply(r2))
	return p.Subtract(origin)
}

func (t *Triangle) isPrimitive() {}
