package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Primitive is anything a ray can be intersected with. The set of primitives
// is closed: Sphere, Quad, Triangle, BVHNode, List, Translate, RotateY and
// ConstantMedium. Primitives are immutable once built and safe to share
// between render workers.
type Primitive interface {
	// Hit returns the closest intersection with t inside rayT.
	// The sampler is only consumed by volumetric primitives.
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool)

	// BoundingBox returns the cached world-space bounds
	BoundingBox() core.AABB

	// PDFValue returns the solid-angle density of sampling direction from
	// origin toward this primitive (0 when the primitive cannot be sampled)
	PDFValue(origin, direction core.Vec3) float64

	// RandomFrom returns a direction from origin toward a random point on the primitive
	RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3

	isPrimitive()
}

// noSampleDirection is returned by primitives that cannot be importance sampled
var noSampleDirection = core.NewVec3(1, 0, 0)
