package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// MinPDF is the smallest mixture density the estimator divides by.
// Samples with a lower (or non-finite) density contribute emission only.
const MinPDF = 1e-8

// rayEpsilon keeps secondary rays from re-hitting the surface they leave
const rayEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with
// light/material mixture importance sampling
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		maxDepth: maxDepth,
	}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, pt.maxDepth, scene, hasLights(scene.GetLights()), sampler)
}

// rayColor is the recursive estimator
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, depth int, scene Scene, sampleLights bool, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := scene.GetWorld().Hit(ray, core.NewInterval(rayEpsilon, math.Inf(1)), sampler)
	if !isHit {
		return scene.GetBackground()
	}

	// Start with emitted light from the hit material
	colorEmitted := hit.Material.Emitted(ray, hit, hit.UV(), hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return colorEmitted
	}

	// Specular materials pick their own direction and weight
	if scatter.SkipPDF {
		incoming := pt.rayColor(scatter.SkipPDFRay, depth-1, scene, sampleLights, sampler)
		return colorEmitted.Add(scatter.Attenuation.MultiplyVec(incoming))
	}

	samplingPDF := scatter.PDF
	if sampleLights {
		lightPDF := pdf.NewHittablePDF(scene.GetLights(), hit.Point)
		samplingPDF = pdf.NewMixturePDF(lightPDF, scatter.PDF)
	}

	scattered := core.NewRayAtTime(hit.Point, samplingPDF.Generate(sampler), ray.Time)
	pdfValue := samplingPDF.Value(scattered.Direction)
	if !(pdfValue > MinPDF) || math.IsInf(pdfValue, 0) {
		return colorEmitted
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, hit, scattered)
	incoming := pt.rayColor(scattered, depth-1, scene, sampleLights, sampler)

	colorScattered := scatter.Attenuation.MultiplyVec(incoming).Multiply(scatteringPDF / pdfValue)
	return colorEmitted.Add(colorScattered)
}

// hasLights reports whether lights can be importance sampled
func hasLights(lights geometry.Primitive) bool {
	if lights == nil {
		return false
	}
	if list, ok := lights.(*geometry.List); ok {
		return list != nil && list.Len() > 0
	}
	return true
}
