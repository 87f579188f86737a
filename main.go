package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/geometry"
	"github.com/stjomd/raytracer/pkg/loaders"
	"github.com/stjomd/raytracer/pkg/output"
	"github.com/stjomd/raytracer/pkg/renderer"
	"github.com/stjomd/raytracer/pkg/scene"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// scenesDir holds the JSON scenes shown by -list
const scenesDir = "scenes"

// vecFlag is a point given on the command line as "x,y,z"
type vecFlag struct {
	value core.Vec3
}

func (v *vecFlag) String() string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", v.value.X, v.value.Y, v.value.Z)
}

func (v *vecFlag) Set(s string) error {
	parsed, err := core.ParseVec3(s)
	if err != nil {
		return err
	}
	v.value = parsed
	return nil
}

// cameraFlags are the flags that set a camera field
var cameraFlags = []string{"width", "height", "center", "target", "fov", "aperture", "defocus-angle", "focus"}

// options holds the parsed command line
type options struct {
	sceneName    string
	output       string
	format       output.Format
	seed         int64
	quiet        bool
	list         bool
	help         bool
	camera       geometry.CameraConfig
	cameraSet    map[string]bool // camera flags given on the command line
	samples      int
	depth        int
	samplesSet   bool
	depthSet     bool
	renderConfig renderer.Config
}

func newFlagSet(opts *options, stderr io.Writer) (*flag.FlagSet, *vecFlag, *vecFlag, *string) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := renderer.DefaultConfig()
	center, target := &vecFlag{}, &vecFlag{}
	format := new(string)

	fs.StringVar(&opts.sceneName, "scene", "spheres", "Built-in scene name ('spheres', 'spheromania', 'final', 'banner') or path to a .json scene")
	fs.IntVar(&opts.camera.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.camera.Height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.StringVar(&opts.output, "output", "", "Output file path (empty = PPM on stdout)")
	fs.StringVar(format, "format", "", "Output format: 'ppm', 'ppm-ascii' or 'png' (default from the output extension)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (default from scene)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounce depth (default from scene)")
	fs.Float64Var(&opts.renderConfig.Gamma, "gamma", defaults.Gamma, "Gamma used when writing pixels")
	fs.Var(center, "center", "Camera position as x,y,z")
	fs.Var(target, "target", "Point the camera looks at as x,y,z")
	fs.Float64Var(&opts.camera.VFov, "fov", 0, "Vertical field of view in degrees")
	fs.Float64Var(&opts.camera.Aperture, "aperture", 0, "Lens diameter for depth of field")
	fs.Float64Var(&opts.camera.DefocusAngle, "defocus-angle", 0, "Defocus cone angle in degrees (overrides -aperture)")
	fs.Float64Var(&opts.camera.FocusDistance, "focus", 0, "Distance to the plane in focus (0 = distance to target)")
	fs.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed for rendering and random scenes")
	fs.IntVar(&opts.renderConfig.NumWorkers, "workers", defaults.NumWorkers, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&opts.renderConfig.TileSize, "tile", defaults.TileSize, "Tile size in pixels")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	return fs, center, target, format
}

// parseOptions parses and validates args. Values that cannot be checked
// without a scene are validated when the scene and renderer are built.
func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs, center, target, format := newFlagSet(opts, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments %v: %w", fs.Args(), core.ErrInvalidConfig)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts.camera.Center = center.value
	opts.camera.LookAt = target.value
	opts.cameraSet = make(map[string]bool)
	for _, name := range cameraFlags {
		if set[name] {
			opts.cameraSet[name] = true
		}
	}
	opts.samplesSet = set["samples"]
	opts.depthSet = set["depth"]

	if set["width"] && opts.camera.Width < 1 {
		return nil, fmt.Errorf("-width %d must be at least 1: %w", opts.camera.Width, core.ErrInvalidConfig)
	}
	if set["height"] && opts.camera.Height < 1 {
		return nil, fmt.Errorf("-height %d must be at least 1: %w", opts.camera.Height, core.ErrInvalidConfig)
	}
	if set["fov"] && (opts.camera.VFov <= 0 || opts.camera.VFov >= 180) {
		return nil, fmt.Errorf("-fov %v must lie in (0, 180): %w", opts.camera.VFov, core.ErrInvalidConfig)
	}
	for name, value := range map[string]float64{
		"aperture":      opts.camera.Aperture,
		"defocus-angle": opts.camera.DefocusAngle,
		"focus":         opts.camera.FocusDistance,
	} {
		if set[name] && value < 0 {
			return nil, fmt.Errorf("-%s %v must not be negative: %w", name, value, core.ErrInvalidConfig)
		}
	}

	parsedFormat, err := output.ParseFormat(*format)
	if err != nil {
		return nil, err
	}
	opts.format = parsedFormat
	opts.renderConfig.Seed = opts.seed
	if err := opts.renderConfig.Validate(); err != nil {
		return nil, err
	}

	return opts, nil
}

// createScene creates a built-in scene or loads a JSON scene file
func createScene(opts *options) (*scene.Scene, error) {
	var s *scene.Scene
	var err error

	switch {
	case scene.IsBuiltin(opts.sceneName):
		s, err = scene.NewBuiltinScene(opts.sceneName, opts.seed)
	case strings.EqualFold(filepath.Ext(opts.sceneName), ".json"):
		s, err = loaders.LoadScene(opts.sceneName)
	default:
		return nil, fmt.Errorf("unknown scene %q: %w", opts.sceneName, core.ErrInvalidConfig)
	}
	if err != nil {
		return nil, err
	}

	if len(opts.cameraSet) > 0 {
		if err := s.SetCameraConfig(applyCameraFlags(s.CameraConfig, opts)); err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
		}
	}
	if opts.samplesSet {
		s.SamplingConfig.SamplesPerPixel = opts.samples
	}
	if opts.depthSet {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// applyCameraFlags copies the camera fields given on the command line onto config.
// Zero values count, so -center 0,0,0 moves the camera to the origin.
func applyCameraFlags(config geometry.CameraConfig, opts *options) geometry.CameraConfig {
	flags := opts.camera
	for name := range opts.cameraSet {
		switch name {
		case "width":
			config.Width = flags.Width
		case "height":
			config.Height = flags.Height
		case "center":
			config.Center = flags.Center
		case "target":
			config.LookAt = flags.LookAt
		case "fov":
			config.VFov = flags.VFov
		case "aperture":
			config.Aperture = flags.Aperture
		case "defocus-angle":
			config.DefocusAngle = flags.DefocusAngle
		case "focus":
			config.FocusDistance = flags.FocusDistance
		}
	}
	return config
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Sphere Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs, _, _, _ := newFlagSet(&options{}, w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without -output the image is written to stdout as plain PPM.")
}

func listScenes(w io.Writer, dir string) error {
	scenes, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-24s %s", info.ID, info.Name)
		if info.Error != "" {
			fmt.Fprintf(w, " (unreadable: %s)", info.Error)
		} else if info.Description != "" {
			fmt.Fprintf(w, " - %s", info.Description)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if opts.help {
		printHelp(stdout)
		return exitOK
	}
	if opts.list {
		if err := listScenes(stdout, scenesDir); err != nil {
			fmt.Fprintf(stderr, "Error listing scenes: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	logger := renderer.NewDefaultLogger(stderr)
	if opts.quiet {
		logger = renderer.NewDiscardLogger()
	}

	selectedScene, err := createScene(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, opts.renderConfig, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	img, _, err := raytracer.Render(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Render failed: %v\n", err)
		return exitFailure
	}

	if opts.output == "" {
		format := opts.format
		if format == "" {
			format = output.FormatPPMASCII
		}
		err = output.Encode(stdout, img, format)
	} else {
		err = output.Write(opts.output, img, opts.format)
		if err == nil {
			logger.Printf("Render saved as %s\n", opts.output)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error writing image: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
