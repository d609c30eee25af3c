// Package pdf provides the direction sampling strategies used for importance
// sampling: uniform sphere, cosine-weighted hemisphere, sampling toward a
// shape, and an equal-weight mixture of two strategies.
package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PDF is a direction sampling strategy paired with its density.
// The set of implementations is closed: SpherePDF, CosinePDF, HittablePDF
// and MixturePDF.
type PDF interface {
	// Value returns the probability density of sampling direction
	Value(direction core.Vec3) float64
	// Generate draws a direction from the distribution
	Generate(sampler core.Sampler) core.Vec3

	isPDF()
}

// Target is a shape that can be sampled by solid angle from a point.
// Geometry primitives implement it so that scattering can be aimed at lights.
type Target interface {
	// PDFValue returns the density of choosing direction from origin toward the shape
	PDFValue(origin, direction core.Vec3) float64
	// RandomFrom returns a direction from origin toward a random point of the shape
	RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// SpherePDF samples directions uniformly over the unit sphere
type SpherePDF struct{}

// NewSpherePDF creates a uniform sphere PDF
func NewSpherePDF() SpherePDF {
	return SpherePDF{}
}

// Value returns 1/(4π) for every direction
func (SpherePDF) Value(direction core.Vec3) float64 {
	return 1 / (4 * math.Pi)
}

// Generate returns a uniform random unit vector
func (SpherePDF) Generate(sampler core.Sampler) core.Vec3 {
	return core.SampleOnUnitSphere(sampler.Get2D())
}

func (SpherePDF) isPDF() {}

// CosinePDF samples directions with density proportional to the cosine
// with a surface normal
type CosinePDF struct {
	basis core.ONB
}

// NewCosinePDF creates a cosine-weighted PDF around normal
func NewCosinePDF(normal core.Vec3) CosinePDF {
	return CosinePDF{basis: core.NewONB(normal)}
}

// Value returns max(0, cos θ / π)
func (c CosinePDF) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(c.basis.W)
	return math.Max(0, cosine/math.Pi)
}

// Generate returns a cosine-weighted direction in the hemisphere of the normal
func (c CosinePDF) Generate(sampler core.Sampler) core.Vec3 {
	return c.basis.Transform(core.RandomCosineDirection(sampler.Get2D()))
}

func (CosinePDF) isPDF() {}

// HittablePDF samples directions from an origin toward a target shape
type HittablePDF struct {
	target Target
	origin core.Vec3
}

// NewHittablePDF creates a PDF aimed at target as seen from origin
func NewHittablePDF(target Target, origin core.Vec3) HittablePDF {
	return HittablePDF{target: target, origin: origin}
}

// Value delegates to the target's solid-angle density
func (h HittablePDF) Value(direction core.Vec3) float64 {
	return h.target.PDFValue(h.origin, direction)
}

// Generate delegates to the target's direction sampler
func (h HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return h.target.RandomFrom(h.origin, sampler)
}

func (HittablePDF) isPDF() {}

// MixturePDF combines two PDFs with equal weight
type MixturePDF struct {
	p [2]PDF
}

// NewMixturePDF creates a 50/50 mixture of p0 and p1
func NewMixturePDF(p0, p1 PDF) MixturePDF {
	return MixturePDF{p: [2]PDF{p0, p1}}
}

// Value returns the mean of the two component densities
func (m MixturePDF) Value(direction core.Vec3) float64 {
	return 0.5*m.p[0].Value(direction) + 0.5*m.p[1].Value(direction)
}

// Generate picks one component with a fair coin flip and samples it
func (m MixturePDF) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.p[0].Generate(sampler)
	}
	return m.p[1].Generate(sampler)
}

func (MixturePDF) isPDF() {}
