package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const cornellSize = 555.0

// cornellCameraConfig looks into the open side of the box
func cornellCameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(278, 278, -800),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   1.0,
		VFov:          40.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}
}

// addCornellWalls appends the five walls of the box. The camera's image x axis
// runs along -X, so the red wall at x=555 appears on the left.
func addCornellWalls(objects []geometry.Primitive) []geometry.Primitive {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return append(objects,
		// Left wall (red)
		geometry.NewQuad(core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, cornellSize, 0), core.NewVec3(0, 0, cornellSize), red),
		// Right wall (green)
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, cornellSize, 0), core.NewVec3(0, 0, cornellSize), green),
		// Floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, 0, cornellSize), white),
		// Ceiling
		geometry.NewQuad(core.NewVec3(cornellSize, cornellSize, cornellSize), core.NewVec3(-cornellSize, 0, 0), core.NewVec3(0, 0, -cornellSize), white),
		// Back wall
		geometry.NewQuad(core.NewVec3(0, 0, cornellSize), core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, cornellSize, 0), white),
	)
}

// newCornellLight creates a ceiling light facing down into the box.
// u x v must point along -Y for the light to emit downwards.
func newCornellLight(corner, u, v core.Vec3, emission float64) *geometry.Quad {
	return geometry.NewQuad(corner, u, v, material.NewDiffuseLight(core.NewVec3(emission, emission, emission)))
}

// NewCornellScene creates the classic Cornell box with a rotated aluminium
// block and a glass sphere. Both the light and the sphere are sampled.
func NewCornellScene() *Scene {
	objects := addCornellWalls(nil)

	light := newCornellLight(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), 15)
	objects = append(objects, light)

	aluminium := material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0.0)
	tallBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), aluminium)
	objects = append(objects, geometry.NewTranslate(geometry.NewRotateY(tallBox, 15), core.NewVec3(265, 0, 295)))

	glass := geometry.NewSphere(core.NewVec3(190, 90, 190), 90, material.NewDielectric(1.5))
	objects = append(objects, glass)

	return newScene("cornell", objects, geometry.NewList(light, glass),
		core.Vec3{}, // No light from outside the box
		cornellCameraConfig(),
		renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	)
}

// NewCornellSmokeScene replaces the two blocks with dark and light smoke
func NewCornellSmokeScene() *Scene {
	objects := addCornellWalls(nil)

	light := newCornellLight(core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305), 7)
	objects = append(objects, light)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	tall := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tallPlaced := geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(265, 0, 295))

	short := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	shortPlaced := geometry.NewTranslate(geometry.NewRotateY(short, -18), core.NewVec3(130, 0, 65))

	objects = append(objects,
		geometry.NewConstantMedium(tallPlaced, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(shortPlaced, 0.01, core.NewVec3(1, 1, 1)),
	)

	return newScene("cornell-smoke", objects, geometry.NewList(light),
		core.Vec3{},
		cornellCameraConfig(),
		renderer.SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50},
	)
}
