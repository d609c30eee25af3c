package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight represents a one-sided light-emitting material
type DiffuseLight struct {
	Emission ColorSource // Emitted light color/intensity
}

// NewDiffuseLight creates a new light with uniform emission
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// Scatter implements the Material interface for emissive materials.
// Lights don't scatter rays - they only emit light.
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

// Emitted returns the emission on the front face and black on the back face
func (e *DiffuseLight) Emitted(rayIn core.Ray, hit *HitRecord, uv core.Vec2, point core.Vec3) core.Vec3 {
	if !hit.FrontFace {
		return black
	}
	return e.Emission.Evaluate(uv, point)
}

// ScatteringPDF is 0; lights never scatter
func (e *DiffuseLight) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

func (e *DiffuseLight) isMaterial() {}
