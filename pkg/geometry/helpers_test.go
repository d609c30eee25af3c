package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	testLight    = material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	forward      = core.NewInterval(0.001, math.Inf(1))
)

func newTestSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

// mockPrimitive lets tests control hits directly
type mockPrimitive struct {
	bbox  core.AABB
	hitFn func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
}

func (m *mockPrimitive) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	return m.hitFn(ray, rayT)
}

func (m *mockPrimitive) BoundingBox() core.AABB { return m.bbox }

func (m *mockPrimitive) PDFValue(origin, direction core.Vec3) float64 { return 0 }

func (m *mockPrimitive) RandomFrom(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return noSampleDirection
}

func (m *mockPrimitive) isPrimitive() {}

// randomRay returns a ray starting in a box of half-size spread aimed at a random point near the origin
func randomRay(sampler core.Sampler, spread float64) core.Ray {
	origin := core.RandomVec3(sampler, -spread, spread)
	target := core.RandomVec3(sampler, -spread/4, spread/4)
	return core.NewRay(origin, target.Subtract(origin))
}

// estimateSolidAngleIntegral integrates a primitive's PDFValue over the sphere of directions
func estimateSolidAngleIntegral(p Primitive, origin core.Vec3, n int) float64 {
	sampler := core.NewSeededSampler(7)
	sum := 0.0
	for i := 0; i < n; i++ {
		dir := core.SampleOnUnitSphere(sampler.Get2D())
		sum += p.PDFValue(origin, dir) * 4 * math.Pi
	}
	return sum / float64(n)
}
