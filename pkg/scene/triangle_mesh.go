package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Mesh placement: models are fitted into a cube of this size resting on the floor
var (
	meshCenter = core.NewVec3(0, 1, 0)
	meshSize   = 2.0
)

// tetrahedronMesh is the model used when no mesh file is given
func tetrahedronMesh() *loaders.Mesh {
	return &loaders.Mesh{
		Vertices: []core.Vec3{
			core.NewVec3(1, 1, 1),
			core.NewVec3(-1, -1, 1),
			core.NewVec3(-1, 1, -1),
			core.NewVec3(1, -1, -1),
		},
		Faces: []int{
			0, 1, 3,
			0, 2, 1,
			0, 3, 2,
			1, 2, 3,
		},
	}
}

// NewMeshScene creates a scene showcasing a triangle mesh loaded from
// opts.OBJPath (OBJ or PLY), flanked by a metal and a glass sphere
func NewMeshScene(opts Options) (*Scene, error) {
	mesh := tetrahedronMesh()
	if opts.OBJPath != "" {
		loaded, err := loaders.LoadMesh(opts.OBJPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load mesh: %w", err)
		}
		mesh = loaded
	}

	meshMaterial := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	model, err := mesh.Build(meshMaterial, mesh.FitOptions(meshCenter, meshSize))
	if err != nil {
		return nil, fmt.Errorf("failed to build mesh: %w", err)
	}

	floor := material.NewTexturedLambertian(
		material.NewCheckerColors(1.0, core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.3, 0.3, 0.3)))
	light := geometry.NewQuad(core.NewVec3(-1.5, 5, -1.5), core.NewVec3(3, 0, 0), core.NewVec3(0, 0, 3),
		material.NewDiffuseLight(core.NewVec3(6, 6, 6)))

	objects := []geometry.Primitive{
		NewGroundQuad(core.NewVec3(0, 0, 0), 40, floor),
		model,
		geometry.NewSphere(core.NewVec3(-2.2, 0.6, 0.5), 0.6, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.05)),
		geometry.NewSphere(core.NewVec3(2.2, 0.6, 0.5), 0.6, material.NewDielectric(1.5)),
		light,
	}

	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(0, 2.5, 7),
		LookAt:        core.NewVec3(0, 1, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}

	return newScene("mesh", objects, geometry.NewList(light),
		core.NewVec3(0.05, 0.05, 0.08),
		cameraConfig,
		renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	), nil
}
