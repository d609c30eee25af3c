package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Materials []material.Material // Optional per-triangle materials
	Scale     float64             // Uniform scale applied to vertices (0 means 1)
	Offset    core.Vec3           // Translation applied after scaling
}

// NewTriangleMesh builds the triangles described by vertices and face indices
// (each group of 3 indices forms a triangle) into a BVH.
// options may be nil.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*BVHNode, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3", len(faces))
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("mesh has no faces")
	}

	numTriangles := len(faces) / 3

	if options != nil && options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, fmt.Errorf("got %d materials for %d triangles", len(options.Materials), numTriangles)
	}

	// Apply scale and offset if specified
	workingVertices := vertices
	if options != nil && (options.Scale != 0 || options.Offset != (core.Vec3{})) {
		scale := options.Scale
		if scale == 0 {
			scale = 1
		}
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			workingVertices[i] = vertex.Multiply(scale).Add(options.Offset)
		}
	}

	triangles := make([]Primitive, 0, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]

		for _, index := range []int{i0, i1, i2} {
			if index < 0 || index >= len(workingVertices) {
				return nil, fmt.Errorf("triangle %d: vertex index %d out of range [0, %d)", i, index, len(workingVertices))
			}
		}

		// Determine material for this triangle
		triangleMaterial := mat
		if options != nil && options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}

		triangles = append(triangles, NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], triangleMaterial))
	}

	return NewBVH(triangles), nil
}
