package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       101,
		AspectRatio: 1.0,
		VFov:        60.0,
	}
}

// centered samples the middle of the pixel with no stratification
var centered = fixedSampler{value: 0.5, pair: core.NewVec2(0.5, 0.5)}

func TestCameraImageSize(t *testing.T) {
	tests := []struct {
		name         string
		width        int
		aspectRatio  float64
		expectHeight int
	}{
		{"16:9", 400, 16.0 / 9.0, 225},
		{"small 16:9", 50, 16.0 / 9.0, 28},
		{"square", 64, 1.0, 64},
		{"very wide clamps to one row", 10, 100.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig()
			config.Width = tt.width
			config.AspectRatio = tt.aspectRatio

			width, height := NewCamera(config).ImageSize()
			if width != tt.width || height != tt.expectHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.width, tt.expectHeight, width, height)
			}
		})
	}
}

func TestCameraGetCameraForward(t *testing.T) {
	config := testCameraConfig()
	config.Center = core.NewVec3(1, 2, 3)
	config.LookAt = core.NewVec3(1, 2, 0)

	forward := NewCamera(config).GetCameraForward()
	if forward.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Expected forward direction (0,0,-1), got %v", forward)
	}
}

func TestCameraCenterPixelLooksAtTarget(t *testing.T) {
	config := testCameraConfig()
	config.Center = core.NewVec3(-800, 0, 0)
	config.LookAt = core.NewVec3(0, 0, 0)
	camera := NewCamera(config)

	ray := camera.GetRay(50, 50, 0, 0, 1, centered)
	dir := ray.Direction.Normalize()
	if dir.Subtract(core.NewVec3(1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Expected center ray along +X, got %v", dir)
	}
	if !ray.Origin.Equals(config.Center) {
		t.Errorf("Expected pinhole origin %v, got %v", config.Center, ray.Origin)
	}
}

func TestCameraOrientation(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	// Pixel (0, 0) is the top-left corner of the image
	topLeft := camera.GetRay(0, 0, 0, 0, 1, centered).Direction
	if topLeft.X >= 0 || topLeft.Y <= 0 {
		t.Errorf("Expected top-left ray to point up and left, got %v", topLeft)
	}

	bottomRight := camera.GetRay(100, 100, 0, 0, 1, centered).Direction
	if bottomRight.X <= 0 || bottomRight.Y >= 0 {
		t.Errorf("Expected bottom-right ray to point down and right, got %v", bottomRight)
	}
}

func TestCameraVerticalFieldOfView(t *testing.T) {
	config := testCameraConfig()
	camera := NewCamera(config)

	// Top edge of the top-center pixel lies on the edge of the viewport
	topEdge := fixedSampler{value: 0.5, pair: core.NewVec2(0.5, 0)}
	ray := camera.GetRay(50, 0, 0, 0, 1, topEdge)

	angle := math.Acos(ray.Direction.Normalize().Dot(camera.GetCameraForward()))
	expected := core.DegreesToRadians(config.VFov / 2)
	if math.Abs(angle-expected) > 1e-9 {
		t.Errorf("Expected half field of view %v, got %v", expected, angle)
	}
}

func TestCameraDefocus(t *testing.T) {
	config := testCameraConfig()
	config.Aperture = 10
	config.FocusDistance = 4
	camera := NewCamera(config)

	radius := config.FocusDistance * math.Tan(core.DegreesToRadians(config.Aperture/2))
	sampler := core.NewSeededSampler(3)

	// Rays through the same pixel position converge on the focus plane
	var focusPoint core.Vec3
	originsDiffer := false
	for k := 0; k < 100; k++ {
		pixelOnly := fixedSampler{value: sampler.Get1D(), pair: core.NewVec2(0.25, 0.75)}
		ray := camera.GetRay(10, 20, 0, 0, 1, &mixedSampler{pixel: pixelOnly, disk: sampler})

		if d := ray.Origin.Subtract(config.Center).Length(); d > radius+1e-9 {
			t.Fatalf("Ray origin %v outside defocus disk of radius %v", ray.Origin, radius)
		}
		if math.Abs(ray.Origin.Z) > 1e-12 {
			t.Fatalf("Ray origin %v not in the lens plane", ray.Origin)
		}

		target := ray.At(1)
		if k == 0 {
			focusPoint = target
		} else if target.Subtract(focusPoint).Length() > 1e-9 {
			t.Fatalf("Expected all rays to pass through %v, got %v", focusPoint, target)
		}
		if !ray.Origin.Equals(config.Center) {
			originsDiffer = true
		}
	}

	if !originsDiffer {
		t.Error("Expected defocus to move ray origins")
	}
	if math.Abs(focusPoint.Z+config.FocusDistance) > 1e-9 {
		t.Errorf("Expected focus plane at z=%v, got %v", -config.FocusDistance, focusPoint.Z)
	}
}

// mixedSampler feeds the first Get2D call (the pixel offset) from pixel and
// later ones (the lens position) from disk
type mixedSampler struct {
	pixel  fixedSampler
	disk   core.Sampler
	calls2 int
}

func (m *mixedSampler) Get1D() float64 { return m.pixel.Get1D() }
func (m *mixedSampler) Get3D() core.Vec3 {
	return m.disk.Get3D()
}
func (m *mixedSampler) Get2D() core.Vec2 {
	m.calls2++
	if m.calls2 == 1 {
		return m.pixel.Get2D()
	}
	return m.disk.Get2D()
}

func TestCameraRayTime(t *testing.T) {
	camera := NewCamera(testCameraConfig())
	sampler := core.NewSeededSampler(1)

	for k := 0; k < 1000; k++ {
		ray := camera.GetRay(k%101, k%7, 0, 0, 1, sampler)
		if ray.Time < 0 || ray.Time >= 1 {
			t.Fatalf("Ray time %v outside [0, 1)", ray.Time)
		}
	}
}

func TestStratifiedOffset(t *testing.T) {
	for k := 1; k <= 5; k++ {
		cell := 1.0 / float64(k)
		for si := 0; si < k; si++ {
			for sj := 0; sj < k; sj++ {
				low := StratifiedOffset(si, sj, k, core.NewVec2(0, 0))
				high := StratifiedOffset(si, sj, k, core.NewVec2(1, 1))

				// Cell corners tile [-0.5, 0.5] without gaps or overlap
				expectLowX := -0.5 + float64(si)*cell
				expectLowY := -0.5 + float64(sj)*cell
				if math.Abs(low.X-expectLowX) > 1e-12 || math.Abs(low.Y-expectLowY) > 1e-12 {
					t.Errorf("k=%d cell (%d,%d): expected low corner (%v,%v), got %v", k, si, sj, expectLowX, expectLowY, low)
				}
				if math.Abs(high.X-(expectLowX+cell)) > 1e-12 || math.Abs(high.Y-(expectLowY+cell)) > 1e-12 {
					t.Errorf("k=%d cell (%d,%d): expected high corner one cell up, got %v", k, si, sj, high)
				}
				if low.X < -0.5 || high.X > 0.5+1e-12 || low.Y < -0.5 || high.Y > 0.5+1e-12 {
					t.Errorf("k=%d cell (%d,%d): offsets leave the pixel: %v %v", k, si, sj, low, high)
				}
			}
		}
	}
}

func TestSqrtSamples(t *testing.T) {
	tests := []struct {
		spp      int
		expected int
	}{
		{0, 1},
		{1, 1},
		{3, 1},
		{4, 2},
		{5, 2},
		{100, 10},
		{120, 10},
	}

	for _, tt := range tests {
		if got := SqrtSamples(tt.spp); got != tt.expected {
			t.Errorf("SqrtSamples(%d): expected %d, got %d", tt.spp, tt.expected, got)
		}
	}
}
