package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/loaders"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/schollz/progressbar/v3"
)

// scenesDir is searched for JSON scene files referenced by name
const scenesDir = "scenes"

// options holds the parsed command line
type options struct {
	sceneName string
	output    string
	config    renderer.RenderConfig
	quiet     bool
	list      bool
	setFlags  map[string]bool // Flags given explicitly on the command line
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(context.Background(), opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses args (without the program name)
func parseFlags(args []string, errOut io.Writer) (options, error) {
	defaults := renderer.DefaultRenderConfig()
	opts := options{setFlags: make(map[string]bool)}

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintln(errOut, "Usage: raytracer [options] <output.png|.jpg|.bmp|.tif>")
		fmt.Fprintln(errOut)
		fmt.Fprintln(errOut, "Options:")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.sceneName, "scene", "random", "Built-in scene name or path to a .json scene file (see -list)")
	fs.IntVar(&opts.config.Width, "width", defaults.Width, "Image width in pixels (must be even)")
	fs.IntVar(&opts.config.Height, "height", defaults.Height, "Image height in pixels (must be even)")
	fs.IntVar(&opts.config.SamplesPerPixel, "samples", defaults.SamplesPerPixel, "Samples per pixel")
	fs.IntVar(&opts.config.MaxDepth, "depth", defaults.MaxDepth, "Maximum ray bounce depth")
	fs.IntVar(&opts.config.NumWorkers, "threads", 0, "Number of worker goroutines (0 = all logical CPUs)")
	fs.IntVar(&opts.config.TileSize, "tile", defaults.TileSize, "Tile edge length in pixels")
	fs.IntVar(&opts.config.Bands, "bands", 0, "Split the image into this many horizontal bands instead of tiles")
	fs.Int64Var(&opts.config.Seed, "seed", 0, "Random seed (0 = time based)")
	fs.BoolVar(&opts.quiet, "quiet", false, "Disable logging and the progress bar")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) { opts.setFlags[f.Name] = true })

	if !opts.list {
		if fs.NArg() != 1 {
			fs.Usage()
			return options{}, fmt.Errorf("expected exactly one output path, got %d arguments", fs.NArg())
		}
		opts.output = fs.Arg(0)
	}

	if opts.config.Seed == 0 {
		opts.config.Seed = time.Now().UnixNano()
	}

	return opts, nil
}

// applySceneDefaults fills every sampling setting not given on the command line from the scene
func (o *options) applySceneDefaults(sampling scene.SamplingConfig) {
	if !o.setFlags["width"] && !o.setFlags["height"] {
		o.config.Width = sampling.Width
		o.config.Height = sampling.Height
	}
	if !o.setFlags["samples"] {
		o.config.SamplesPerPixel = sampling.SamplesPerPixel
	}
	if !o.setFlags["depth"] {
		o.config.MaxDepth = sampling.MaxDepth
	}
}

func run(ctx context.Context, opts options, out, errOut io.Writer) error {
	if opts.list {
		return listScenes(out)
	}

	// Reject bad dimensions before doing any scene work
	if err := opts.config.Validate(); err != nil {
		return err
	}

	var logger core.Logger = renderer.NewDefaultLogger()
	if opts.quiet {
		logger = renderer.NewDiscardLogger()
	}

	selectedScene, err := createScene(opts.sceneName, opts.config.Seed)
	if err != nil {
		return err
	}
	opts.applySceneDefaults(selectedScene.SamplingConfig)
	if err := opts.config.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", selectedScene.Name, err)
	}

	if err := createOutputDir(opts.output); err != nil {
		return err
	}

	logger.Printf("Scene %q with %d spheres, seed %d\n", selectedScene.Name, selectedScene.GetPrimitiveCount(), opts.config.Seed)

	raytracer := renderer.NewSceneRaytracer(selectedScene, opts.config, logger)

	var bar *progressbar.ProgressBar
	if !opts.quiet {
		bar = newProgressBar(int64(raytracer.TotalPixels()), errOut)
		raytracer.SetProgressFunc(func(pixels int) { _ = bar.Add(pixels) })
	}

	fb, stats, err := raytracer.Render(ctx)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(errOut)
	}
	if err != nil {
		return err
	}

	if err := loaders.SaveImage(opts.output, fb); err != nil {
		return err
	}

	fmt.Fprintf(out, "Rendered %dx%d in %.2fs (%.0f pixels/s, %.0f samples/pixel, average luminance %.3f)\n",
		fb.Width, fb.Height, stats.Duration.Seconds(), stats.PixelsPerSecond,
		stats.AverageSamples(), renderer.CalculateAverageLuminance(fb))
	fmt.Fprintf(out, "Render saved as %s\n", opts.output)

	return nil
}

func newProgressBar(total int64, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("px"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionFullWidth(),
	)
}

// createScene resolves a built-in scene name, a scene file path, or the name of a file in scenesDir
func createScene(name string, seed int64) (*scene.Scene, error) {
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return loaders.LoadScene(name)
	}

	s, err := scene.NewBuiltinScene(name, seed)
	if err == nil {
		return s, nil
	}

	if path, ok := findSceneFile(name); ok {
		return loaders.LoadScene(path)
	}

	return nil, err
}

// findSceneFile returns the path of scenesDir/<name>.json if it exists
func findSceneFile(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	path := filepath.Join(scenesDir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// createOutputDir makes sure the directory of the output file exists
func createOutputDir(output string) error {
	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	return nil
}

func listScenes(out io.Writer) error {
	fmt.Fprintln(out, "Built-in scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(out, "  %-10s %s\n", info.ID, info.Description)
	}

	files, err := scene.ListSceneFiles(scenesDir)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		fmt.Fprintf(out, "\nScene files in %s/:\n", scenesDir)
		for _, info := range files {
			fmt.Fprintf(out, "  %-10s %s\n", info.ID, info.DisplayName)
		}
	}
	return nil
}
