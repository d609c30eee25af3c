package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Band is a contiguous range of image rows rendered by one worker
type Band struct {
	Index    int // Band number, also used to derive the band's sampler seed
	StartRow int // First row (inclusive, 0 is the top row)
	EndRow   int // Last row (exclusive)
}

// Rows returns the number of rows in the band
func (b Band) Rows() int {
	return b.EndRow - b.StartRow
}

// NewBands splits height rows into n contiguous bands of height/n rows;
// the last band absorbs the remainder. n is clamped to [1, height].
func NewBands(height, n int) []Band {
	n = max(1, min(n, height))
	block := height / n

	bands := make([]Band, n)
	for i := range bands {
		bands[i] = Band{Index: i, StartRow: i * block, EndRow: (i + 1) * block}
	}
	bands[n-1].EndRow = height
	return bands
}

// BandStats describes the work done for one band
type BandStats struct {
	Band     Band
	Pixels   int
	Samples  int
	Duration time.Duration
}

// BandRenderer renders bands of pixels into a framebuffer using an integrator
type BandRenderer struct {
	scene      integrator.Scene
	integrator integrator.Integrator
	camera     *Camera
	sqrtSpp    int
}

// NewBandRenderer creates a band renderer taking samplesPerPixel stratified
// samples per pixel (rounded down to a perfect square)
func NewBandRenderer(scene integrator.Scene, integratorInst integrator.Integrator, camera *Camera, samplesPerPixel int) *BandRenderer {
	return &BandRenderer{
		scene:      scene,
		integrator: integratorInst,
		camera:     camera,
		sqrtSpp:    SqrtSamples(samplesPerPixel),
	}
}

// RenderBand renders every pixel of band into the band's own framebuffer rows
func (br *BandRenderer) RenderBand(band Band, fb *Framebuffer, sampler core.Sampler) BandStats {
	start := time.Now()
	stats := BandStats{Band: band}

	for j := band.StartRow; j < band.EndRow; j++ {
		row := fb.Row(j)
		for i := range row {
			row[i] = br.samplePixel(i, j, sampler)
			stats.Pixels++
			stats.Samples += br.sqrtSpp * br.sqrtSpp
		}
	}

	stats.Duration = time.Since(start)
	return stats
}

// samplePixel averages one jittered sample from each stratum of the pixel
func (br *BandRenderer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	pixelColor := core.Vec3{}
	for sj := 0; sj < br.sqrtSpp; sj++ {
		for si := 0; si < br.sqrtSpp; si++ {
			ray := br.camera.GetRay(i, j, si, sj, br.sqrtSpp, sampler)
			pixelColor = pixelColor.Add(br.integrator.RayColor(ray, br.scene, sampler))
		}
	}

	return pixelColor.Multiply(1.0 / float64(br.sqrtSpp*br.sqrtSpp))
}
