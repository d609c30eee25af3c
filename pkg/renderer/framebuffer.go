package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds linear radiance per pixel, stored as one slice per row.
// Each render band owns a disjoint set of rows and writes them without locking.
type Framebuffer struct {
	Width  int
	Height int
	rows   [][]core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	rows := make([][]core.Vec3, height)
	for y := range rows {
		rows[y] = make([]core.Vec3, width)
	}
	return &Framebuffer{Width: width, Height: height, rows: rows}
}

// Row returns row y (0 is the top row) for in-place writes
func (f *Framebuffer) Row(y int) []core.Vec3 {
	return f.rows[y]
}

// At returns the linear color of pixel (x, y)
func (f *Framebuffer) At(x, y int) core.Vec3 {
	return f.rows[y][x]
}

// Set stores the linear color of pixel (x, y)
func (f *Framebuffer) Set(x, y int, c core.Vec3) {
	f.rows[y][x] = c
}

// sanitize zeroes NaN, infinite and negative channels
func sanitize(c core.Vec3) core.Vec3 {
	clean := func(x float64) float64 {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return 0
		}
		return x
	}
	return core.NewVec3(clean(c.X), clean(c.Y), clean(c.Z))
}

// ToneMap converts a linear color to 8-bit channels: sanitize, gamma 2,
// clamp to [0, 0.999] and scale by 256
func ToneMap(c core.Vec3) (r, g, b uint8) {
	mapped := sanitize(c).GammaCorrect(2.0).Clamp(0, 0.999)
	return uint8(256 * mapped.X), uint8(256 * mapped.Y), uint8(256 * mapped.Z)
}

// WritePPM writes the framebuffer as a plain-text P3 PPM image
func (f *Framebuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", f.Width, f.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for _, row := range f.rows {
		for _, c := range row {
			r, g, b := ToneMap(c)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("failed to write PPM pixel: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM: %w", err)
	}
	return nil
}

// Image converts the framebuffer to a tone-mapped RGBA image
func (f *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y, row := range f.rows {
		for x, c := range row {
			r, g, b := ToneMap(c)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
