package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Scene is the read-only view of a scene that integrators need.
// Defined here rather than in pkg/scene to avoid circular imports.
type Scene interface {
	GetWorld() geometry.Primitive  // Everything rays can hit, usually a BVH
	GetLights() geometry.Primitive // Primitives to importance sample, nil for none
	GetBackground() core.Vec3      // Radiance returned by rays that escape
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}
