package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look-from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually 0,1,0)
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Defocus cone angle in degrees, 0 for a pinhole camera
	FocusDistance float64   // Distance to the plane of perfect focus, 0 means |LookAt - Center|
}

// DefaultCameraConfig returns a camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
}

// Camera generates primary rays. All derived values are computed once in
// NewCamera and the camera is read-only afterwards.
type Camera struct {
	config       CameraConfig
	imageWidth   int
	imageHeight  int
	center       core.Vec3
	pixel00      core.Vec3 // Center of the top-left pixel
	pixelDeltaU  core.Vec3 // Offset to the pixel on the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	imageWidth := config.Width
	imageHeight := imageHeightFor(config.Width, config.AspectRatio)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.Center).Length()
	}

	theta := core.DegreesToRadians(config.VFov)
	viewportHeight := 2 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * float64(imageWidth) / float64(imageHeight)

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Viewport edges: u runs left to right, v runs top to bottom
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(imageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := config.Center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(core.DegreesToRadians(config.Aperture/2))

	return &Camera{
		config:       config,
		imageWidth:   imageWidth,
		imageHeight:  imageHeight,
		center:       config.Center,
		pixel00:      pixel00,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		u:            u,
		v:            v,
		w:            w,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}
}

// imageHeightFor derives the image height from width and aspect ratio, at least 1
func imageHeightFor(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return max(1, width)
	}
	return max(1, int(float64(width)/aspectRatio))
}

// ImageSize returns the image dimensions in pixels
func (c *Camera) ImageSize() (width, height int) {
	return c.imageWidth, c.imageHeight
}

// GetRay returns a ray through pixel (i, j), j counted from the top row,
// jittered within stratum (si, sj) of a sqrtSpp x sqrtSpp grid.
// The ray time is uniform in [0, 1) for motion blur.
func (c *Camera) GetRay(i, j, si, sj, sqrtSpp int, sampler core.Sampler) core.Ray {
	offset := StratifiedOffset(si, sj, sqrtSpp, sampler.Get2D())
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.Aperture > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// defocusDiskSample returns a random point on the camera's defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// StratifiedOffset maps a uniform sample in [0,1)^2 into stratum (si, sj)
// of a k x k grid over the pixel, returning an offset in [-0.5, 0.5)^2
// relative to the pixel center
func StratifiedOffset(si, sj, k int, sample core.Vec2) core.Vec2 {
	recipSqrtSpp := 1.0 / float64(k)
	return core.NewVec2(
		(float64(si)+sample.X)*recipSqrtSpp-0.5,
		(float64(sj)+sample.Y)*recipSqrtSpp-0.5,
	)
}

// SqrtSamples returns the side of the stratification grid for spp samples
// per pixel; spp is rounded down to the nearest perfect square (minimum 1)
func SqrtSamples(spp int) int {
	return max(1, int(math.Sqrt(float64(spp))))
}
