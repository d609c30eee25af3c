package renderer

import (
	"fmt"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

// testScene is a minimal Scene implementation
type testScene struct {
	world      geometry.Primitive
	lights     geometry.Primitive
	background core.Vec3
	camera     CameraConfig
	sampling   SamplingConfig
}

func (s *testScene) GetWorld() geometry.Primitive      { return s.world }
func (s *testScene) GetLights() geometry.Primitive     { return s.lights }
func (s *testScene) GetBackground() core.Vec3          { return s.background }
func (s *testScene) GetCameraConfig() CameraConfig     { return s.camera }
func (s *testScene) GetSamplingConfig() SamplingConfig { return s.sampling }

// fixedSampler returns the same values on every call
type fixedSampler struct {
	value float64
	pair  core.Vec2
}

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 {
	return f.pair
}
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.value, f.value, f.value)
}

// constantIntegrator returns a fixed color and counts calls
type constantIntegrator struct {
	color core.Vec3
	mu    sync.Mutex
	calls int
}

func (c *constantIntegrator) RayColor(ray core.Ray, scene integrator.Scene, sampler core.Sampler) core.Vec3 {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.color
}

// recordingLogger collects log lines
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// newSpheresScene creates a ground sphere, a small sphere and a spherical light
func newSpheresScene() *testScene {
	light := geometry.NewSphere(core.NewVec3(0, 2, -1), 0.5, material.NewDiffuseLight(core.NewVec3(4, 4, 4)))
	world := geometry.NewBVH([]geometry.Primitive{
		geometry.NewSphere(core.NewVec3(0, -1000, -1), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		light,
	})

	camera := DefaultCameraConfig()
	camera.Width = 50

	return &testScene{
		world:      world,
		lights:     geometry.NewList(light),
		background: core.NewVec3(0.7, 0.8, 1.0),
		camera:     camera,
		sampling:   SamplingConfig{SamplesPerPixel: 4, MaxDepth: 10},
	}
}

// newOpenBoxScene creates five walls of a box open toward the camera with a
// light on the back wall. The box fills only the middle of the image.
func newOpenBoxScene() *testScene {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := geometry.NewQuad(core.NewVec3(-0.3, -0.3, -1.99), core.NewVec3(0.6, 0, 0), core.NewVec3(0, 0.6, 0),
		material.NewDiffuseLight(core.NewVec3(4, 4, 4)))

	world := geometry.NewList(
		geometry.NewQuad(core.NewVec3(-1, -1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), white), // back
		geometry.NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(0, 0, -2), core.NewVec3(0, 2, 0), white), // left
		geometry.NewQuad(core.NewVec3(1, -1, -2), core.NewVec3(0, 0, 2), core.NewVec3(0, 2, 0), white),  // right
		geometry.NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, -2), white), // floor
		geometry.NewQuad(core.NewVec3(-1, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), white),  // ceiling
		light,
	)

	return &testScene{
		world:      world,
		lights:     geometry.NewList(light),
		background: core.NewVec3(0.3, 0.2, 0.2),
		camera: CameraConfig{
			Center:      core.NewVec3(0, 0, 5),
			LookAt:      core.NewVec3(0, 0, 0),
			Up:          core.NewVec3(0, 1, 0),
			Width:       41,
			AspectRatio: 1,
			VFov:        90,
		},
		sampling: SamplingConfig{SamplesPerPixel: 16, MaxDepth: 10},
	}
}
