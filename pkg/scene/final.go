package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const (
	finalBoxesPerSide = 20
	finalClusterSize  = 1000
)

// NewFinalScene creates the showcase scene exercising every primitive and
// material: a field of random boxes, a moving sphere, glass, brushed metal,
// participating media, and image, noise and checker textures. Random layout
// comes from opts.Seed so the scene is reproducible.
func NewFinalScene(opts Options) (*Scene, error) {
	sampler := core.NewSeededSampler(opts.Seed)
	var objects []geometry.Primitive

	// Ground: grid of boxes with random heights
	groundMat := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	boxes := make([]geometry.Primitive, 0, finalBoxesPerSide*finalBoxesPerSide)
	for i := 0; i < finalBoxesPerSide; i++ {
		for j := 0; j < finalBoxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := core.RandomRange(sampler, 1, 101)
			boxes = append(boxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), groundMat))
		}
	}
	objects = append(objects, geometry.NewBVH(boxes))

	// Ceiling light
	light := geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265),
		material.NewDiffuseLight(core.NewVec3(7, 7, 7)))
	objects = append(objects, light)

	// Motion blurred sphere
	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	objects = append(objects, geometry.NewMovingSphere(center0, center1, 50,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	glass := material.NewDielectric(1.5)
	objects = append(objects,
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, glass),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass ball filled with blue fog
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, glass)
	objects = append(objects, boundary, geometry.NewConstantMedium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin mist over everything
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, glass)
	objects = append(objects, geometry.NewConstantMedium(mist, 0.0001, core.NewVec3(1, 1, 1)))

	globe, err := finalGlobeTexture(opts.TexturePath)
	if err != nil {
		return nil, err
	}
	objects = append(objects, geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(globe)))

	marble := material.NewNoiseTexture(0.2, sampler)
	objects = append(objects, geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(marble)))

	// Cluster of small white spheres
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := make([]geometry.Primitive, 0, finalClusterSize)
	for i := 0; i < finalClusterSize; i++ {
		cluster = append(cluster, geometry.NewSphere(core.RandomVec3(sampler, 0, 165), 10, white))
	}
	objects = append(objects, geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBVH(cluster), 15),
		core.NewVec3(-100, 270, 395),
	))

	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(478, 278, -600),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   1.0,
		VFov:          40.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}

	return newScene("final", objects, geometry.NewList(light),
		core.Vec3{},
		cameraConfig,
		renderer.SamplingConfig{SamplesPerPixel: 250, MaxDepth: 40},
	), nil
}

// finalGlobeTexture loads the globe image, or falls back to a checker pattern
func finalGlobeTexture(path string) (material.ColorSource, error) {
	if path == "" {
		return material.NewCheckerColors(32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)), nil
	}
	texture, err := loaders.LoadImageTexture(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load globe texture: %w", err)
	}
	return texture, nil
}
