package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// pixelCenterSampler aims camera rays through pixel centers at time 0
type pixelCenterSampler struct{}

func (pixelCenterSampler) Get1D() float64   { return 0 }
func (pixelCenterSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (pixelCenterSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

func colorHex(c core.Vec3) string {
	channel := func(x float64) int { return int(math.Max(0, math.Min(1, x)) * 255) }
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X), channel(c.Y), channel(c.Z))
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Evaluate(hit.UV(), hit.Point)
		properties["albedo"] = [3]float64{albedo.X, albedo.Y, albedo.Z}
		properties["color"] = colorHex(albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = colorHex(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := m.Emission.Evaluate(hit.UV(), hit.Point)
		properties["emission"] = [3]float64{emission.X, emission.Y, emission.Z}
		properties["color"] = colorHex(emission)
		return "diffuse_light", properties

	case *material.Isotropic:
		albedo := m.Albedo.Evaluate(hit.UV(), hit.Point)
		properties["albedo"] = [3]float64{albedo.X, albedo.Y, albedo.Z}
		properties["color"] = colorHex(albedo)
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes a top-level scene object
func (s *Server) extractGeometryInfo(object geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch g := object.(type) {
	case *geometry.Sphere:
		center := g.Center.At(0)
		properties["center"] = [3]float64{center.X, center.Y, center.Z}
		properties["radius"] = g.Radius
		properties["moving"] = g.Center.Direction != (core.Vec3{})
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = [3]float64{g.Corner.X, g.Corner.Y, g.Corner.Z}
		properties["u"] = [3]float64{g.U.X, g.U.Y, g.U.Z}
		properties["v"] = [3]float64{g.V.X, g.V.Y, g.V.Z}
		properties["normal"] = [3]float64{g.Normal.X, g.Normal.Y, g.Normal.Z}
		return "quad", properties

	case *geometry.Triangle:
		normal := g.Normal()
		properties["area"] = g.Area()
		properties["normal"] = [3]float64{normal.X, normal.Y, normal.Z}
		return "triangle", properties

	case *geometry.ConstantMedium:
		return "constant_medium", properties

	case *geometry.Translate:
		properties["offset"] = [3]float64{g.Offset.X, g.Offset.Y, g.Offset.Z}
		return "translate", properties

	case *geometry.RotateY:
		return "rotate_y", properties

	case *geometry.BVHNode:
		return "bvh", properties

	case *geometry.List:
		properties["count"] = g.Len()
		return "list", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains rich information about an object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord // Full hit record with material reference
	Object    geometry.Primitive  // The top-level object that was hit
}

// inspectPixel casts a ray through the center of the given pixel and returns
// information about the first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	camera := renderer.NewCamera(sceneObj.CameraConfig)
	sampler := pixelCenterSampler{}
	ray := camera.GetRay(pixelX, pixelY, 0, 0, 1, sampler)
	rayT := core.NewInterval(0.001, math.Inf(1))

	hit, isHit := sceneObj.GetWorld().Hit(ray, rayT, sampler)
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The BVH doesn't report which object was hit, so find the top-level
	// object that produces the same intersection
	for _, object := range sceneObj.Objects() {
		if objectHit, ok := object.Hit(ray, core.NewInterval(0.001, hit.T+0.001), sampler); ok && objectHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Object: object}
		}
	}
	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")

	inspectReq, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	width, height := renderer.NewCamera(sceneObj.CameraConfig).ImageSize()
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)

	w.Header().Set("Content-Type", "application/json")
	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material, result.HitRecord)
	geometryType, geometryProps := s.extractGeometryInfo(result.Object)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{result.HitRecord.Point.X, result.HitRecord.Point.Y, result.HitRecord.Point.Z},
		Normal:       [3]float64{result.HitRecord.Normal.X, result.HitRecord.Normal.Y, result.HitRecord.Normal.Z},
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
