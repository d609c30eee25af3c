package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains per-pixel sampling configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel, rounded down to a perfect square
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// RenderConfig contains settings for how a render is executed
type RenderConfig struct {
	NumWorkers int   // Number of row bands rendered in parallel
	Seed       int64 // Base seed; band i samples with seed+i
}

// DefaultRenderConfig uses one worker per logical CPU and a fixed seed
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: DefaultNumWorkers(),
		Seed:       42,
	}
}

// Scene is everything the raytracer needs from a scene.
// Defined here rather than in pkg/scene to avoid circular imports.
type Scene interface {
	integrator.Scene
	GetCameraConfig() CameraConfig
	GetSamplingConfig() SamplingConfig
}

// Raytracer renders a scene into a framebuffer using parallel row bands
type Raytracer struct {
	scene      Scene
	integrator integrator.Integrator
	camera     *Camera
	sampling   SamplingConfig
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer for the scene. Invalid configurations
// (no workers, zero width, no samples, negative depth) are programming
// errors and panic before any rendering starts.
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) *Raytracer {
	cameraConfig := scene.GetCameraConfig()
	sampling := scene.GetSamplingConfig()

	if config.NumWorkers <= 0 {
		panic(fmt.Sprintf("renderer: NumWorkers must be positive, got %d", config.NumWorkers))
	}
	if cameraConfig.Width <= 0 {
		panic(fmt.Sprintf("renderer: image width must be positive, got %d", cameraConfig.Width))
	}
	if sampling.SamplesPerPixel <= 0 {
		panic(fmt.Sprintf("renderer: SamplesPerPixel must be positive, got %d", sampling.SamplesPerPixel))
	}
	if sampling.MaxDepth < 0 {
		panic(fmt.Sprintf("renderer: MaxDepth must not be negative, got %d", sampling.MaxDepth))
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Raytracer{
		scene:      scene,
		integrator: integrator.NewPathTracingIntegrator(sampling.MaxDepth),
		camera:     NewCamera(cameraConfig),
		sampling:   sampling,
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the default path tracing integrator
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Render traces every pixel and returns the linear framebuffer with stats.
// Each band gets its own sampler seeded from the render seed, so the output
// does not depend on scheduling.
func (rt *Raytracer) Render() (*Framebuffer, RenderStats) {
	start := time.Now()
	width, height := rt.camera.ImageSize()
	fb := NewFramebuffer(width, height)
	bands := NewBands(height, rt.config.NumWorkers)
	sqrtSpp := SqrtSamples(rt.sampling.SamplesPerPixel)

	bandRenderer := NewBandRenderer(rt.scene, rt.integrator, rt.camera, rt.sampling.SamplesPerPixel)
	pool := NewWorkerPool(bandRenderer, fb, len(bands), len(bands))
	pool.Start()

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, max depth %d, %d bands on %d workers\n",
		width, height, sqrtSpp*sqrtSpp, rt.sampling.MaxDepth, len(bands), pool.GetNumWorkers())

	for _, band := range bands {
		pool.SubmitTask(BandTask{
			Band:    band,
			Sampler: core.NewSeededSampler(rt.config.Seed + int64(band.Index)),
		})
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: sqrtSpp * sqrtSpp,
		Bands:           len(bands),
	}

	for range bands {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		band := result.Stats.Band
		rt.logger.Printf("Band %d/%d rows %d-%d done in %v\n",
			band.Index+1, len(bands), band.StartRow, band.EndRow-1, result.Stats.Duration.Round(time.Millisecond))
		stats.TotalPixels += result.Stats.Pixels
		stats.TotalSamples += result.Stats.Samples
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	stats.MeanLuminance, stats.StdDevLuminance = LuminanceStats(fb)

	rt.logger.Printf("Render complete in %v (%d samples)\n", stats.Duration.Round(time.Millisecond), stats.TotalSamples)
	return fb, stats
}
