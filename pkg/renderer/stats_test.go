package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Create a 2x2 image
	// Top-left: Red (1, 0, 0) -> Lum = 0.2126
	// Top-right: Green (0, 1, 0) -> Lum = 0.7152
	// Bottom-left: Blue (0, 0, 1) -> Lum = 0.0722
	// Bottom-right: Black (0, 0, 0) -> Lum = 0.0

	// Expected average: (0.2126 + 0.7152 + 0.0722 + 0.0) / 4 = 1.0 / 4 = 0.25

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	// 1x1 White pixel -> Lum = 1.0
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestLuminanceStats(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Set(0, 0, core.NewVec3(1, 1, 1))
	fb.Set(1, 0, core.NewVec3(1, 1, 1))
	fb.Set(0, 1, core.NewVec3(math.NaN(), 0, 0)) // sanitized to black
	fb.Set(1, 1, core.NewVec3(-3, 0, 0))         // sanitized to black

	mean, stdDev := LuminanceStats(fb)
	if math.Abs(mean-0.5) > 1e-9 {
		t.Errorf("Expected mean 0.5, got %v", mean)
	}
	// Sample standard deviation of {1, 1, 0, 0}
	if expected := math.Sqrt(1.0 / 3.0); math.Abs(stdDev-expected) > 1e-9 {
		t.Errorf("Expected std dev %v, got %v", expected, stdDev)
	}

	single := NewFramebuffer(1, 1)
	single.Set(0, 0, core.NewVec3(1, 1, 1))
	if mean, stdDev := LuminanceStats(single); math.Abs(mean-1) > 1e-9 || stdDev != 0 {
		t.Errorf("Expected (1, 0) for a single pixel, got (%v, %v)", mean, stdDev)
	}
}
