package renderer

import (
	"image"
	"time"

	"gonum.org/v1/gonum/stat"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	SamplesPerPixel int           // Effective samples per pixel after stratification
	Bands           int           // Number of row bands rendered in parallel
	Duration        time.Duration // Wall-clock render time
	MeanLuminance   float64       // Mean linear luminance over all pixels
	StdDevLuminance float64       // Standard deviation of linear luminance
}

// LuminanceStats returns the mean and standard deviation of the sanitized
// linear luminance of every pixel
func LuminanceStats(fb *Framebuffer) (mean, stdDev float64) {
	values := make([]float64, 0, fb.Width*fb.Height)
	for y := 0; y < fb.Height; y++ {
		for _, c := range fb.Row(y) {
			values = append(values, sanitize(c).Luminance())
		}
	}

	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// CalculateAverageLuminance returns the mean relative luminance of an 8-bit
// image, with channels scaled to [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	values := make([]float64, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels
			values = append(values, 0.2126*float64(r)/65535+0.7152*float64(g)/65535+0.0722*float64(b)/65535)
		}
	}

	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
