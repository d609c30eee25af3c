package renderer

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestRaytracerSpheresProducesValidPPM(t *testing.T) {
	sc := newSpheresScene()
	rt := NewRaytracer(sc, RenderConfig{NumWorkers: 4, Seed: 42}, &recordingLogger{})

	fb, stats := rt.Render()
	if fb.Width != 50 || fb.Height != 28 {
		t.Fatalf("Expected 50x28 image, got %dx%d", fb.Width, fb.Height)
	}
	if stats.TotalPixels != 50*28 || stats.TotalSamples != 50*28*4 {
		t.Errorf("Unexpected stats %+v", stats)
	}

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if c := fb.At(x, y); !c.IsFinite() {
				t.Fatalf("Pixel (%d,%d) is not finite: %v", x, y, c)
			}
		}
	}

	var buf bytes.Buffer
	if err := fb.WritePPM(&buf); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if len(lines) != 3+50*28 {
		t.Fatalf("Expected %d lines, got %d", 3+50*28, len(lines))
	}
	if lines[0] != "P3" || lines[1] != "50 28" || lines[2] != "255" {
		t.Fatalf("Unexpected header %q", lines[:3])
	}
	for i, line := range lines[3:] {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			t.Fatalf("Pixel line %d has %d fields: %q", i, len(fields), line)
		}
		for _, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil || v < 0 || v > 255 {
				t.Fatalf("Pixel line %d has invalid channel %q", i, field)
			}
		}
	}
}

func TestRaytracerOpenBox(t *testing.T) {
	sc := newOpenBoxScene()
	fb, _ := NewRaytracer(sc, RenderConfig{NumWorkers: 3, Seed: 7}, &recordingLogger{}).Render()

	// Corner rays miss the box entirely
	for _, corner := range [][2]int{{0, 0}, {40, 0}, {0, 40}, {40, 40}} {
		if c := fb.At(corner[0], corner[1]); c.Subtract(sc.background).Length() > 1e-9 {
			t.Errorf("Expected background %v at corner %v, got %v", sc.background, corner, c)
		}
	}

	lightLum := fb.At(20, 20).Luminance()
	for _, wall := range []struct {
		name string
		x, y int
	}{
		{"floor", 20, 24},
		{"back wall", 22, 20},
	} {
		if wallLum := fb.At(wall.x, wall.y).Luminance(); lightLum <= wallLum {
			t.Errorf("Expected light pixel luminance %v to exceed %s luminance %v", lightLum, wall.name, wallLum)
		}
	}
}

func TestRaytracerDeterministic(t *testing.T) {
	config := RenderConfig{NumWorkers: 4, Seed: 99}
	first, _ := NewRaytracer(newSpheresScene(), config, &recordingLogger{}).Render()
	second, _ := NewRaytracer(newSpheresScene(), config, &recordingLogger{}).Render()

	for y := 0; y < first.Height; y++ {
		for x := 0; x < first.Width; x++ {
			if first.At(x, y) != second.At(x, y) {
				t.Fatalf("Pixel (%d,%d) differs between identical renders: %v vs %v", x, y, first.At(x, y), second.At(x, y))
			}
		}
	}
}

func TestRaytracerEveryPixelSampled(t *testing.T) {
	sc := newSpheresScene()
	sc.sampling.SamplesPerPixel = 5 // rounds down to a 2x2 grid

	mock := &constantIntegrator{color: core.NewVec3(0.1, 0.2, 0.3)}
	logger := &recordingLogger{}
	rt := NewRaytracer(sc, RenderConfig{NumWorkers: 5, Seed: 1}, logger)
	rt.SetIntegrator(mock)

	fb, stats := rt.Render()

	if mock.calls != 50*28*4 {
		t.Errorf("Expected %d integrator calls, got %d", 50*28*4, mock.calls)
	}
	if stats.SamplesPerPixel != 4 || stats.Bands != 5 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if fb.At(x, y).Subtract(mock.color).Length() > 1e-12 {
				t.Fatalf("Pixel (%d,%d) = %v, expected %v", x, y, fb.At(x, y), mock.color)
			}
		}
	}

	bandLines := 0
	for _, line := range logger.lines {
		if strings.HasPrefix(line, "Band ") {
			bandLines++
		}
	}
	if bandLines != 5 {
		t.Errorf("Expected 5 band completion lines, got %d: %v", bandLines, logger.lines)
	}
	if len(logger.lines) == 0 || !strings.Contains(logger.lines[0], "5 bands on 5 workers") {
		t.Errorf("Expected the start line to report the worker count, got %v", logger.lines)
	}
}

func TestNewRaytracerPanicsOnInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(sc *testScene, config *RenderConfig)
	}{
		{"zero workers", func(sc *testScene, config *RenderConfig) { config.NumWorkers = 0 }},
		{"zero width", func(sc *testScene, config *RenderConfig) { sc.camera.Width = 0 }},
		{"zero samples", func(sc *testScene, config *RenderConfig) { sc.sampling.SamplesPerPixel = 0 }},
		{"negative depth", func(sc *testScene, config *RenderConfig) { sc.sampling.MaxDepth = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newSpheresScene()
			config := RenderConfig{NumWorkers: 2, Seed: 1}
			tt.modify(sc, &config)

			defer func() {
				if recover() == nil {
					t.Error("Expected NewRaytracer to panic")
				}
			}()
			NewRaytracer(sc, config, &recordingLogger{})
		})
	}
}

func TestDefaultConfigs(t *testing.T) {
	if DefaultNumWorkers() < 1 {
		t.Error("Expected at least one default worker")
	}
	if config := DefaultRenderConfig(); config.NumWorkers < 1 {
		t.Errorf("Unexpected default render config %+v", config)
	}
	if sampling := DefaultSamplingConfig(); sampling.SamplesPerPixel <= 0 || sampling.MaxDepth <= 0 {
		t.Errorf("Unexpected default sampling config %+v", sampling)
	}
}
