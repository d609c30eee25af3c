package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ConstantMedium is a homogeneous participating medium such as smoke or fog,
// filling the inside of a closed boundary primitive
type ConstantMedium struct {
	Boundary      Primitive
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium of the given density with a solid-color phase function
func NewConstantMedium(boundary Primitive, density float64, albedo core.Vec3) *ConstantMedium {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium creates a medium whose phase function color comes from a texture
func NewTexturedConstantMedium(boundary Primitive, density float64, albedo material.ColorSource) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
		negInvDensity: -1 / density,
	}
}

// Hit samples a free-flight distance through the medium; a hit is reported
// only when the ray scatters before leaving the boundary
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	// Find where the ray enters and leaves the boundary along its whole line
	entry, ok := m.Boundary.Hit(ray, core.UniverseInterval, sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, core.NewInterval(entry.T+0.0001, math.Inf(1)), sampler)
	if !ok {
		return nil, false
	}

	t1 := math.Max(entry.T, rayT.Min)
	t2 := math.Min(exit.T, rayT.Max)
	if t1 >= t2 {
		return nil, false
	}
	t1 = math.Max(t1, 0)

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())
	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,                  // also arbitrary
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's bounding box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}

// PDFValue is 0; media are not sampled as lights
func (m *ConstantMedium) PDFValue(origin, direction core.Vec3) float64 {
	return 0
}

// RandomFrom returns an arbitrary fixed direction
func (m *ConstantMedium) RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return noSampleDirection
}

func (m *ConstantMedium) isPrimitive() {}
