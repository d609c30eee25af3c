package geometry

import (
	"math"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// unit square in the XY plane made of two triangles
var squareVertices = []core.Vec3{
	core.NewVec3(0, 0, 0),
	core.NewVec3(1, 0, 0),
	core.NewVec3(1, 1, 0),
	core.NewVec3(0, 1, 0),
}

var squareFaces = []int{0, 1, 2, 0, 2, 3}

func TestNewTriangleMesh_Errors(t *testing.T) {
	tests := []struct {
		name      string
		faces     []int
		options   *TriangleMeshOptions
		errSubstr string
	}{
		{"no faces", nil, nil, "no faces"},
		{"ragged faces", []int{0, 1, 2, 3}, nil, "multiple of 3"},
		{"index out of range", []int{0, 1, 4}, nil, "out of range"},
		{"negative index", []int{0, -1, 2}, nil, "out of range"},
		{"material count mismatch", squareFaces, &TriangleMeshOptions{Materials: []material.Material{testMaterial}}, "materials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := NewTriangleMesh(squareVertices, tt.faces, testMaterial, tt.options)
			if err == nil {
				t.Fatalf("Expected error, got mesh %+v", mesh)
			}
			if !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("Expected error containing %q, got %q", tt.errSubstr, err)
			}
		})
	}
}

func TestNewTriangleMesh_Hit(t *testing.T) {
	mesh, err := NewTriangleMesh(squareVertices, squareFaces, testMaterial, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, p := range []core.Vec3{core.NewVec3(0.8, 0.2, 1), core.NewVec3(0.2, 0.8, 1)} {
		hit, ok := mesh.Hit(core.NewRay(p, core.NewVec3(0, 0, -1)), forward, nil)
		if !ok {
			t.Fatalf("Expected hit through %v", p)
		}
		if math.Abs(hit.T-1) > 1e-9 {
			t.Errorf("Expected t=1, got %v", hit.T)
		}
	}

	if _, ok := mesh.Hit(core.NewRay(core.NewVec3(1.5, 0.5, 1), core.NewVec3(0, 0, -1)), forward, nil); ok {
		t.Error("Expected miss outside the square")
	}
}

func TestNewTriangleMesh_Options(t *testing.T) {
	red := material.NewLambertian(core.NewVec3(1, 0, 0))
	blue := material.NewLambertian(core.NewVec3(0, 0, 1))

	mesh, err := NewTriangleMesh(squareVertices, squareFaces, testMaterial, &TriangleMeshOptions{
		Materials: []material.Material{red, blue},
		Scale:     2,
		Offset:    core.NewVec3(10, 0, 0),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bbox := mesh.BoundingBox()
	if bbox.X.Min != 10 || bbox.X.Max != 12 || bbox.Y.Max != 2 {
		t.Errorf("Expected scaled and offset bounds, got %+v", bbox)
	}

	lower, ok := mesh.Hit(core.NewRay(core.NewVec3(11.6, 0.4, 1), core.NewVec3(0, 0, -1)), forward, nil)
	if !ok || lower.Material != red {
		t.Errorf("Expected first triangle's material, got %+v %v", lower, ok)
	}
	upper, ok := mesh.Hit(core.NewRay(core.NewVec3(10.4, 1.6, 1), core.NewVec3(0, 0, -1)), forward, nil)
	if !ok || upper.Material != blue {
		t.Errorf("Expected second triangle's material, got %+v %v", upper, ok)
	}
}
