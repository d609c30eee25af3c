package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func newTestSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

// upHit returns a front-face hit on the XY plane facing +Z
func upHit(m Material) *HitRecord {
	return &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		T:         1,
		FrontFace: true,
		Material:  m,
	}
}

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRayAtTime(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1), 0.3)
	scatter, didScatter := metal.Scatter(rayIn, upHit(metal), newTestSampler())
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.SkipPDFRay.Direction.Normalize()
	if actual.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
	if !scatter.SkipPDF || scatter.PDF != nil {
		t.Error("Metal should skip the PDF machinery")
	}
	if scatter.SkipPDFRay.Time != 0.3 {
		t.Errorf("Scattered ray should keep the incoming time, got %v", scatter.SkipPDFRay.Time)
	}
	if pdf := metal.ScatteringPDF(rayIn, upHit(metal), scatter.SkipPDFRay); pdf != 0 {
		t.Errorf("Metal scattering PDF should be 0, got %v", pdf)
	}
}

func TestMetal_FuzzyReflectionStaysAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := newTestSampler()

	// Grazing incidence absorbs some fuzzy reflections
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.05), core.NewVec3(1, 0, -0.05))
	absorbed := 0
	for i := 0; i < 1000; i++ {
		scatter, ok := metal.Scatter(rayIn, upHit(metal), sampler)
		if !ok {
			absorbed++
			continue
		}
		if scatter.SkipPDFRay.Direction.Dot(core.NewVec3(0, 0, 1)) <= 0 {
			t.Fatalf("Scattered ray %v points into the surface", scatter.SkipPDFRay.Direction)
		}
	}
	if absorbed == 0 {
		t.Error("Expected some grazing fuzzy reflections to be absorbed")
	}
}

func TestLambertian_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.6, 0.7)
	lambertian := NewLambertian(albedo)
	hit := upHit(lambertian)
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, ok := lambertian.Scatter(rayIn, hit, newTestSampler())
	if !ok {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.SkipPDF {
		t.Error("Lambertian should not skip the PDF machinery")
	}
	if scatter.PDF == nil {
		t.Fatal("Lambertian should provide a sampling PDF")
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}

	// The sampling PDF and the scattering PDF agree for a cosine lobe
	sampler := newTestSampler()
	for i := 0; i < 100; i++ {
		dir := scatter.PDF.Generate(sampler)
		scattered := core.NewRay(hit.Point, dir)
		if math.Abs(scatter.PDF.Value(dir)-lambertian.ScatteringPDF(rayIn, hit, scattered)) > 1e-9 {
			t.Fatalf("PDF mismatch for direction %v", dir)
		}
	}

	below := core.NewRay(hit.Point, core.NewVec3(0, 0, -1))
	if pdf := lambertian.ScatteringPDF(rayIn, hit, below); pdf != 0 {
		t.Errorf("Expected zero scattering PDF below the surface, got %v", pdf)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Inside the glass, hitting the boundary at a steep angle
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: false,
		Material:  glass,
	}
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.2), core.NewVec3(1, 0, -0.2))

	sampler := newTestSampler()
	for i := 0; i < 50; i++ {
		scatter, ok := glass.Scatter(rayIn, hit, sampler)
		if !ok {
			t.Fatal("Dielectric should always scatter")
		}
		if scatter.SkipPDFRay.Direction.Z <= 0 {
			t.Fatalf("Expected total internal reflection, got direction %v", scatter.SkipPDFRay.Direction)
		}
		if !scatter.Attenuation.Equals(core.NewVec3(1, 1, 1)) {
			t.Errorf("Expected white attenuation, got %v", scatter.Attenuation)
		}
		if !scatter.SkipPDF {
			t.Error("Dielectric should skip the PDF machinery")
		}
	}
}

func TestDielectric_RefractsAtNormalIncidence(t *testing.T) {
	glass := NewDielectric(1.5)
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	refracted := 0
	sampler := newTestSampler()
	const n = 2000
	for i := 0; i < n; i++ {
		scatter, _ := glass.Scatter(rayIn, upHit(glass), sampler)
		if scatter.SkipPDFRay.Direction.Z < 0 {
			refracted++
		}
	}

	// Schlick reflectance at normal incidence for n=1.5 is 0.04
	fraction := float64(refracted) / n
	if math.Abs(fraction-0.96) > 0.02 {
		t.Errorf("Expected ~96%% refraction, got %v", fraction)
	}
}

func TestReflectance(t *testing.T) {
	if r := Reflectance(1.0, 1.0/1.5); math.Abs(r-0.04) > 1e-9 {
		t.Errorf("Expected 0.04 at normal incidence, got %v", r)
	}
	if r := Reflectance(0.0, 1.0/1.5); math.Abs(r-1.0) > 1e-9 {
		t.Errorf("Expected 1.0 at grazing incidence, got %v", r)
	}
}

func TestDiffuseLight_OneSided(t *testing.T) {
	emission := core.NewVec3(15, 15, 15)
	light := NewDiffuseLight(emission)
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	front := upHit(light)
	if got := light.Emitted(rayIn, front, front.UV(), front.Point); !got.Equals(emission) {
		t.Errorf("Expected front face emission %v, got %v", emission, got)
	}

	back := upHit(light)
	back.FrontFace = false
	if got := light.Emitted(rayIn, back, back.UV(), back.Point); !got.Equals(core.Vec3{}) {
		t.Errorf("Expected no back face emission, got %v", got)
	}

	if _, ok := light.Scatter(rayIn, front, newTestSampler()); ok {
		t.Error("Diffuse light should never scatter")
	}
}

func TestIsotropic_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.2, 0.4, 0.9)
	iso := NewIsotropic(albedo)
	hit := upHit(iso)
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, ok := iso.Scatter(rayIn, hit, newTestSampler())
	if !ok || scatter.PDF == nil || scatter.SkipPDF {
		t.Fatal("Isotropic should scatter through a sampling PDF")
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}

	expected := 1 / (4 * math.Pi)
	dir := core.NewVec3(0, 0, -1)
	if got := iso.ScatteringPDF(rayIn, hit, core.NewRay(hit.Point, dir)); math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected scattering PDF %v, got %v", expected, got)
	}
	if got := scatter.PDF.Value(dir); math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected sampling PDF %v, got %v", expected, got)
	}
}

func TestNonEmitters_EmitBlack(t *testing.T) {
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	materials := []Material{
		NewLambertian(core.NewVec3(1, 1, 1)),
		NewMetal(core.NewVec3(1, 1, 1), 0),
		NewDielectric(1.5),
		NewIsotropic(core.NewVec3(1, 1, 1)),
	}

	for _, m := range materials {
		hit := upHit(m)
		if got := m.Emitted(rayIn, hit, hit.UV(), hit.Point); !got.Equals(core.Vec3{}) {
			t.Errorf("%T should not emit, got %v", m, got)
		}
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	var front HitRecord
	front.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), outward)
	if !front.FrontFace || !front.Normal.Equals(outward) {
		t.Errorf("Expected front face with outward normal, got %+v", front)
	}

	var back HitRecord
	back.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1)), outward)
	if back.FrontFace || !back.Normal.Equals(outward.Negate()) {
		t.Errorf("Expected back face with flipped normal, got %+v", back)
	}
}
