package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Material describes how a surface or volume scatters and emits light.
// The set of materials is closed: Lambertian, Metal, Dielectric,
// DiffuseLight and Isotropic.
type Material interface {
	// Scatter returns the scattering distribution for an incoming ray.
	// false means the ray is absorbed (or the material only emits).
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool)

	// Emitted returns the light emitted at the hit point (black for non-emitters)
	Emitted(rayIn core.Ray, hit *HitRecord, uv core.Vec2, point core.Vec3) core.Vec3

	// ScatteringPDF returns the density of the material's own scattering model
	// in the direction of scattered. Delta materials return 0.
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64

	isMaterial()
}

// ScatterRecord contains the result of material scattering
type ScatterRecord struct {
	Attenuation core.Vec3 // Color attenuation
	PDF         pdf.PDF   // Sampling strategy for the scattered direction (nil when SkipPDF)
	SkipPDF     bool      // Specular scattering: follow SkipPDFRay without importance sampling
	SkipPDFRay  core.Ray  // The scattered ray when SkipPDF is set
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, facing against the ray
	T         float64   // Parameter t along the ray
	U, V      float64   // Surface coordinates
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// UV returns the surface coordinates as a Vec2
func (h *HitRecord) UV() core.Vec2 {
	return core.NewVec2(h.U, h.V)
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal is assumed to have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// black is returned by materials that do not emit
var black = core.Vec3{}
