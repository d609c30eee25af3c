package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// LoadOBJFile loads vertex positions and faces from a Wavefront OBJ file
func LoadOBJFile(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	mesh, err := LoadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// LoadOBJ reads `v` and `f` records from OBJ text. Polygons are fan
// triangulated; face indices may be negative (relative to the vertices read
// so far) and may carry texture/normal indices (v/vt/vn), which are ignored.
// All other record types are skipped.
func LoadOBJ(r io.Reader) (*Mesh, error) {
	mesh := &Mesh{}
	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			vertex, err := parseOBJVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			mesh.Vertices = append(mesh.Vertices, vertex)
		case "f":
			polygon, err := parseOBJFace(fields[1:], len(mesh.Vertices))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			mesh.appendFan(polygon)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ: %w", err)
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("OBJ contains no faces")
	}

	return mesh, nil
}

// parseOBJVertex parses "x y z [w]"
func parseOBJVertex(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}

	var coords [3]float64
	for i := range coords {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid vertex coordinate %q", fields[i])
		}
		coords[i] = value
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseOBJFace converts 1-based (or negative relative) face references to
// 0-based vertex indices
func parseOBJFace(fields []string, vertexCount int) ([]int, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}

	polygon := make([]int, len(fields))
	for i, field := range fields {
		ref, _, _ := strings.Cut(field, "/")
		index, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid face index %q", field)
		}

		switch {
		case index > 0:
			index--
		case index < 0:
			index += vertexCount
		default:
			return nil, fmt.Errorf("face index 0 is not valid")
		}

		if index < 0 || index >= vertexCount {
			return nil, fmt.Errorf("face index %s refers to missing vertex (have %d)", ref, vertexCount)
		}
		polygon[i] = index
	}
	return polygon, nil
}
