package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering. It is immutable
// once built and shared read-only by all render workers.
type Scene struct {
	Name           string
	World          geometry.Primitive // Acceleration structure over every object
	Lights         *geometry.List     // Emitters to importance sample (also part of World)
	Background     core.Vec3          // Radiance for rays that escape the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	objects        []geometry.Primitive
}

// newScene builds the BVH over objects and wraps everything in a Scene
func newScene(name string, objects []geometry.Primitive, lights *geometry.List, background core.Vec3,
	camera renderer.CameraConfig, sampling renderer.SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		World:          geometry.NewBVH(objects),
		Lights:         lights,
		Background:     background,
		CameraConfig:   camera,
		SamplingConfig: sampling,
		objects:        objects,
	}
}

// GetWorld returns the scene's acceleration structure
func (s *Scene) GetWorld() geometry.Primitive {
	return s.World
}

// GetLights returns the light list, or nil when there is nothing to sample
func (s *Scene) GetLights() geometry.Primitive {
	if s.Lights == nil || s.Lights.Len() == 0 {
		return nil
	}
	return s.Lights
}

// GetBackground returns the background color
func (s *Scene) GetBackground() core.Vec3 {
	return s.Background
}

// GetCameraConfig returns the camera configuration
func (s *Scene) GetCameraConfig() renderer.CameraConfig {
	return s.CameraConfig
}

// GetSamplingConfig returns the sampling configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.SamplingConfig
}

// Objects returns the top-level objects the BVH was built from
func (s *Scene) Objects() []geometry.Primitive {
	return s.objects
}

// GetPrimitiveCount returns the number of top-level objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.objects)
}

// NewGroundQuad creates a large quad to replace infinite ground planes
// Creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, material material.Material) *geometry.Quad {
	// Create corner at bottom-left of the quad
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// Edge vectors: u along Z axis, v along X axis
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0) which normalizes to (0,1,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, material)
}
