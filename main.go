package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	width     int
	spp       int
	depth     int
	threads   int
	seed      int64
	format    string
	out       string
	objPath   string
	texture   string
	list      bool
	help      bool
}

// writerLogger sends render progress to w so stdout stays free for image data
type writerLogger struct {
	w io.Writer
}

func (l writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// parseFlags parses and validates the command line
func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.sceneName, "scene", "spheres", "Scene to render (see -list)")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 uses the scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel, rounded down to a perfect square (0 uses the scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 uses the scene default)")
	fs.IntVar(&opts.threads, "threads", 0, "Number of render bands/workers (0 uses all CPUs)")
	fs.Int64Var(&opts.seed, "seed", 42, "Random seed for sampling and scene layout")
	fs.StringVar(&opts.format, "format", "ppm", "Output format: 'ppm' or 'png'")
	fs.StringVar(&opts.out, "out", "", "Output file, '-' for stdout (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&opts.objPath, "obj", "", "OBJ or PLY model for the mesh scene")
	fs.StringVar(&opts.texture, "texture", "", "Image texture for the globe in the final scene")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}

	switch {
	case fs.NArg() > 0:
		return nil, fs, fmt.Errorf("unexpected arguments: %v", fs.Args())
	case opts.width < 0:
		return nil, fs, fmt.Errorf("width must not be negative, got %d", opts.width)
	case opts.spp < 0:
		return nil, fs, fmt.Errorf("spp must not be negative, got %d", opts.spp)
	case opts.depth < 0:
		return nil, fs, fmt.Errorf("depth must not be negative, got %d", opts.depth)
	case opts.threads < 0:
		return nil, fs, fmt.Errorf("threads must not be negative, got %d", opts.threads)
	case opts.format != "ppm" && opts.format != "png":
		return nil, fs, fmt.Errorf("unknown format %q (want 'ppm' or 'png')", opts.format)
	}
	return opts, fs, nil
}

// run executes the CLI and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.help {
		printHelp(fs, stdout)
		return 0
	}
	if opts.list {
		for _, info := range scene.ListScenes() {
			fmt.Fprintf(stdout, "  %-14s %s\n", info.ID, info.Description)
		}
		return 0
	}

	if err := render(opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Monte Carlo Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
}

// createScene builds the selected scene and applies command line overrides
func createScene(opts *options) (*scene.Scene, error) {
	s, err := scene.Create(opts.sceneName, scene.Options{
		OBJPath:     opts.objPath,
		TexturePath: opts.texture,
		Seed:        opts.seed,
	})
	if err != nil {
		return nil, err
	}

	if opts.width > 0 {
		s.CameraConfig.Width = opts.width
	}
	if opts.spp > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if opts.depth > 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	return s, nil
}

func render(opts *options, stdout, stderr io.Writer) error {
	s, err := createScene(opts)
	if err != nil {
		return err
	}

	config := renderer.DefaultRenderConfig()
	if opts.threads > 0 {
		config.NumWorkers = opts.threads
	}
	config.Seed = opts.seed

	logger := writerLogger{w: stderr}
	logger.Printf("Using %s scene (%d objects)...\n", s.Name, s.GetPrimitiveCount())

	rt := renderer.NewRaytracer(s, config, logger)
	fb, stats := rt.Render()
	logger.Printf("Mean luminance %.4f (std dev %.4f)\n", stats.MeanLuminance, stats.StdDevLuminance)

	if opts.out == "-" {
		return writeImage(fb, opts.format, stdout)
	}

	filename := opts.out
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", s.Name, fmt.Sprintf("render_%s.%s", timestamp, opts.format))
	}
	if err := saveImage(fb, opts.format, filename); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// saveImage writes the framebuffer to filename, creating parent directories
func saveImage(fb *renderer.Framebuffer, format, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := writeImage(fb, format, file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}
	return nil
}

// writeImage encodes the framebuffer as PPM or PNG
func writeImage(fb *renderer.Framebuffer, format string, w io.Writer) error {
	switch format {
	case "png":
		bw := bufio.NewWriter(w)
		if err := png.Encode(bw, fb.Image()); err != nil {
			return fmt.Errorf("error saving PNG: %w", err)
		}
		return bw.Flush()
	case "ppm":
		return fb.WritePPM(w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
