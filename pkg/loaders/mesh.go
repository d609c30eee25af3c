package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Mesh is an indexed triangle mesh as read from a model file
type Mesh struct {
	Vertices []core.Vec3 // Vertex positions
	Faces    []int       // Triangle vertex indices (3 per triangle)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Faces) / 3
}

// Bounds returns the bounding box of all vertices
func (m *Mesh) Bounds() core.AABB {
	return core.NewAABBFromPoints(m.Vertices...)
}

// FitOptions returns mesh options that uniformly scale the mesh so its
// largest extent equals size and move its bounding box center to center
func (m *Mesh) FitOptions(center core.Vec3, size float64) *geometry.TriangleMeshOptions {
	bounds := m.Bounds()
	extent := max(bounds.X.Size(), bounds.Y.Size(), bounds.Z.Size())

	scale := 1.0
	if extent > 0 {
		scale = size / extent
	}

	return &geometry.TriangleMeshOptions{
		Scale:  scale,
		Offset: center.Subtract(bounds.Center().Multiply(scale)),
	}
}

// Build creates a BVH of triangles from the mesh
func (m *Mesh) Build(mat material.Material, options *geometry.TriangleMeshOptions) (*geometry.BVHNode, error) {
	return geometry.NewTriangleMesh(m.Vertices, m.Faces, mat, options)
}

// appendFan triangulates a convex polygon as a fan around its first vertex
func (m *Mesh) appendFan(polygon []int) {
	for i := 1; i+1 < len(polygon); i++ {
		m.Faces = append(m.Faces, polygon[0], polygon[i], polygon[i+1])
	}
}

// LoadMesh loads a Wavefront OBJ (.obj) or PLY (.ply) file
func LoadMesh(filename string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".obj":
		return LoadOBJFile(filename)
	case ".ply":
		return LoadPLYFile(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
}
