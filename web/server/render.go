package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const consoleBufferSize = 256

// RenderRequest represents a render request from the client.
// Zero values for Width, SamplesPerPixel, MaxDepth and Threads keep the
// scene's (or machine's) defaults.
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene ID (e.g., "cornell")
	Width           int    `json:"width"`           // Image width
	SamplesPerPixel int    `json:"samplesPerPixel"` // Samples per pixel
	MaxDepth        int    `json:"maxDepth"`        // Maximum bounce depth
	Threads         int    `json:"threads"`         // Number of render bands
	Seed            int64  `json:"seed"`            // Sampling and layout seed
	Format          string `json:"format"`          // "png", "ppm" or "json"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int64   `json:"totalSamples"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	Bands           int     `json:"bands"`
	MeanLuminance   float64 `json:"meanLuminance"`
	StdDevLuminance float64 `json:"stdDevLuminance"`
	ImageLuminance  float64 `json:"imageLuminance"` // Mean luminance of the encoded 8-bit image
}

// RenderResponse is the body returned for format=json
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// handleRender renders a scene to completion and returns the image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.DefaultRenderConfig()
	if req.Threads > 0 {
		config.NumWorkers = req.Threads
	}
	config.Seed = req.Seed

	renderID := fmt.Sprintf("render-%d", s.renderID.Add(1))
	consoleChan := make(chan ConsoleMessage, consoleBufferSize)
	logger := NewWebLogger(renderID, consoleChan)
	logger.Printf("Rendering scene %s\n", sceneObj.Name)

	startTime := time.Now()
	raytracer := renderer.NewRaytracer(sceneObj, config, logger)
	fb, stats := raytracer.Render()
	elapsed := time.Since(startTime)

	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(elapsed.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))

	switch req.Format {
	case "ppm":
		var buf bytes.Buffer
		if err := fb.WritePPM(&buf); err != nil {
			writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		w.Header().Set("Content-Type", "image/x-portable-pixmap")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())

	case "json":
		img := fb.Image()
		imageData, err := s.imageToBase64PNG(img)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		response := RenderResponse{
			Scene:     sceneObj.Name,
			Width:     stats.Width,
			Height:    stats.Height,
			ImageData: imageData,
			Stats: Stats{
				TotalPixels:     stats.TotalPixels,
				TotalSamples:    int64(stats.TotalSamples),
				SamplesPerPixel: stats.SamplesPerPixel,
				Bands:           stats.Bands,
				MeanLuminance:   stats.MeanLuminance,
				StdDevLuminance: stats.StdDevLuminance,
				ImageLuminance:  renderer.CalculateAverageLuminance(img),
			},
			Console:   drainConsole(consoleChan),
			ElapsedMs: elapsed.Milliseconds(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)

	default:
		var buf bytes.Buffer
		if err := png.Encode(&buf, fb.Image()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "cornell", Format: "png"}

	if sceneID := query.Get("scene"); sceneID != "" {
		req.Scene = sceneID
	}
	if format := query.Get("format"); format != "" {
		if format != "png" && format != "ppm" && format != "json" {
			return nil, fmt.Errorf("format must be png, ppm or json, got: %s", format)
		}
		req.Format = format
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 16, 2000); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 0, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 0, 1, 1000); err != nil {
		return nil, err
	}
	if req.Threads, err = parseIntParam(query, "threads", 0, 1, 256); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", 42); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width > 800 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// createScene builds the requested scene and applies request overrides.
// Scenes needing files from disk are built with their defaults.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Create(req.Scene, scene.Options{Seed: req.Seed})
	if errors.Is(err, scene.ErrUnknownScene) {
		return nil, fmt.Errorf("Unknown scene: %s", req.Scene)
	}
	if err != nil {
		return nil, err
	}

	if req.Width > 0 {
		sceneObj.CameraConfig.Width = req.Width
	}
	if req.SamplesPerPixel > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth > 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}
	return sceneObj, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
