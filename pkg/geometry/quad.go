package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quad represents a planar parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (direction of U × V)
	Material material.Material // Material of the quad
	D        float64           // Plane equation constant: normal · p = D
	W        core.Vec3         // Cached (U × V) / |U × V|² for planar coordinates
	area     float64
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	q := &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: material,
		D:        normal.Dot(corner),
		area:     cross.Length(),
	}
	if q.area > 0 {
		q.W = cross.Divide(cross.LengthSquared())
	}

	// Bounding box of all four vertices
	q.bbox = core.NewAABBFromPoints(corner, corner.Add(u), corner.Add(v), corner.Add(u).Add(v))

	return q
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if q.area == 0 {
		return nil, false
	}

	denominator := q.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if !rayT.Contains(t) {
		return nil, false
	}

	hitPoint := ray.At(t)

	// Planar coordinates of the hit point relative to the corner
	hitVector := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))

	unit := core.NewInterval(0, 1)
	if !unit.Contains(alpha) || !unit.Contains(beta) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		U:        alpha,
		V:        beta,
		Material: q.Material,
	}
	hitRecord.SetFaceNormal(ray, q.Normal)

	return hitRecord, true
}

// BoundingBox returns the cached bounding box
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.area
}

// PDFValue converts the uniform area density to solid angle as seen from origin
func (q *Quad) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := q.Hit(core.NewRay(origin, direction), core.NewInterval(0.001, math.Inf(1)), nil)
	if !ok {
		return 0
	}
	return areaToSolidAngle(hit.T, direction, hit.Normal, q.area)
}

// RandomFrom returns a direction toward a uniformly chosen point on the quad
func (q *Quad) RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	p := q.Corner.Add(q.U.Multiply(sample.X)).Add(q.V.Multiply(sample.Y))
	return p.Subtract(origin)
}

func (q *Quad) isPrimitive() {}

// areaToSolidAngle converts a uniform area density 1/area to a solid-angle
// density for a hit at parameter t along direction
func areaToSolidAngle(t float64, direction, normal core.Vec3, area float64) float64 {
	distanceSquared := t * t * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(normal) / direction.Length())
	if cosine < 1e-8 || area <= 0 {
		return 0
	}
	return distanceSquared / (cosine * area)
}
