package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape whose center may move linearly over the
// shutter interval [0, 1]
type Sphere struct {
	Center   core.Ray // Center(t) = Origin + Direction*t; Direction is zero for static spheres
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	s := &Sphere{
		Center:   core.NewRay(center, core.Vec3{}),
		Radius:   math.Max(0, radius),
		Material: material,
	}
	s.bbox = s.boxAt(center)
	return s
}

// NewMovingSphere creates a sphere that moves from center0 at time 0 to center1 at time 1
func NewMovingSphere(center0, center1 core.Vec3, radius float64, material material.Material) *Sphere {
	s := &Sphere{
		Center:   core.NewRay(center0, center1.Subtract(center0)),
		Radius:   math.Max(0, radius),
		Material: material,
	}
	s.bbox = s.boxAt(center0).Union(s.boxAt(center1))
	return s
}

func (s *Sphere) boxAt(center core.Vec3) core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABBFromPoints(center.Subtract(radius), center.Add(radius))
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	center := s.Center.At(ray.Time)

	// Quadratic equation coefficients with h = -b/2
	oc := center.Subtract(ray.Origin)
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Outward normal from center to hit point
	outwardNormal := hitRecord.Point.Subtract(center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.U, hitRecord.V = sphereUV(outwardNormal)

	return hitRecord, true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u runs around the Y axis starting from X=-1, v runs from Y=-1 to Y=+1.
func sphereUV(p core.Vec3) (float64, float64) {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// PDFValue returns the density of the uniform cone toward the sphere.
// Only stationary spheres are sampled exactly; moving spheres use their t=0 position.
func (s *Sphere) PDFValue(origin, direction core.Vec3) float64 {
	if _, ok := s.Hit(core.NewRay(origin, direction), core.NewInterval(0.001, math.Inf(1)), nil); !ok {
		return 0
	}

	distSq := s.Center.At(0).Subtract(origin).LengthSquared()
	ratio := s.Radius * s.Radius / distSq
	if ratio >= 1 {
		// Origin inside the sphere: the cone covers every direction
		return 1 / (4 * math.Pi)
	}
	cosThetaMax := math.Sqrt(1 - ratio)
	solidAngle := 2 * math.Pi * (1 - cosThetaMax)
	return 1 / solidAngle
}

// RandomFrom returns a direction toward a uniformly chosen point of the visible cap
func (s *Sphere) RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := s.Center.At(0).Subtract(origin)
	distSq := direction.LengthSquared()
	if s.Radius*s.Radius >= distSq {
		return core.SampleOnUnitSphere(sampler.Get2D())
	}
	basis := core.NewONB(direction)
	return basis.Transform(core.SampleToSphere(s.Radius, distSq, sampler.Get2D()))
}

func (s *Sphere) isPrimitive() {}
