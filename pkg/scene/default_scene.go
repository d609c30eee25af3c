package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewSpheresScene creates the basic scene: a huge ground sphere under a row of
// small spheres, lit by a sky and one small spherical light
func NewSpheresScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2.5), // Slightly above and behind the row
		LookAt:        core.NewVec3(0, 0, -1),     // Look at the center sphere
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}

	lambertianGround := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	lambertianCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.2)
	materialGlass := material.NewDielectric(1.5)
	lightWarm := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	ground := geometry.NewSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGround)
	center := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianCenter)
	left := geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass)
	right := geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metalGold)
	light := geometry.NewSphere(core.NewVec3(0, 2, -1), 0.5, lightWarm)

	objects := []geometry.Primitive{ground, center, left, right, light}
	lights := geometry.NewList(light)

	return newScene("spheres", objects, lights,
		core.NewVec3(0.7, 0.8, 1.0), // Pale blue sky
		cameraConfig,
		renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	)
}
