package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	flags.SetOutput(stderr)

	sceneType := flags.String("scene", "default", "Scene: built-in name, JSON scene name in scenes/, or path to a .json file")
	width := flags.Int("width", 0, "Image width in pixels (0 = scene default)")
	height := flags.Int("height", 0, "Image height in pixels (0 = scene default)")
	spp := flags.Int("spp", 0, "Samples per pixel (0 = scene default)")
	depth := flags.Int("depth", 0, "Maximum ray bounce depth (0 = scene default)")
	workers := flags.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	seed := flags.Int64("seed", 42, "Random seed")
	out := flags.String("out", "", "Output file (.png or .ppm); default output/<scene>/render_<timestamp>.png")
	toStdout := flags.Bool("stdout", false, "Write a plain-text PPM to stdout instead of a file")
	help := flags.Bool("help", false, "Show help information")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	logger := log.New(stderr, "", 0)

	if *help {
		printHelp(stdout, flags)
		return 0
	}

	selectedScene, err := createScene(*sceneType)
	if err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}

	config := renderConfig(selectedScene.SamplingConfig, *width, *height, *spp, *depth)
	config.NumWorkers = *workers
	config.Seed = *seed
	selectedScene.CameraConfig.AspectRatio = float64(config.Width) / float64(config.Height)

	logger.Printf("Scene %q: %d primitives, %d materials", *sceneType, selectedScene.GetPrimitiveCount(), selectedScene.Materials.Len())

	raytracer := renderer.NewRaytracer(selectedScene.GetCamera(), selectedScene, config, logger)
	fb, stats, err := raytracer.Render(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Printf("Render interrupted after %d tiles", stats.Tiles)
		} else {
			logger.Printf("Error rendering: %v", err)
		}
		return 1
	}

	if *toStdout {
		if err := imageio.WritePPM(stdout, fb); err != nil {
			logger.Printf("Error writing PPM: %v", err)
			return 1
		}
		return 0
	}

	filename := *out
	if filename == "" {
		outputDir := createOutputDir(*sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			logger.Printf("Error creating output directory: %v", err)
			return 1
		}
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	}

	if err := imageio.Save(filename, fb); err != nil {
		logger.Printf("Error saving image: %v", err)
		return 1
	}

	logger.Printf("Render saved as %s", filename)
	return 0
}

// createScene resolves a scene name the way the -scene flag accepts it
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}
	return scene.Create(sceneType)
}

// renderConfig combines the scene's preferred settings with flag overrides
func renderConfig(sampling scene.SamplingConfig, width, height, spp, depth int) renderer.Config {
	config := renderer.DefaultConfig()
	config.Width = sampling.Width
	config.Height = sampling.Height
	config.SamplesPerPixel = sampling.SamplesPerPixel
	config.MaxDepth = sampling.MaxDepth

	if width > 0 {
		config.Width = width
	}
	if height > 0 {
		config.Height = height
	}
	if spp > 0 {
		config.SamplesPerPixel = spp
	}
	if depth > 0 {
		config.MaxDepth = depth
	}
	return config
}

// createOutputDir returns the output directory for a scene: output/<name>,
// where scene files contribute their base name
func createOutputDir(sceneType string) string {
	name := sceneType
	if strings.HasSuffix(name, ".json") {
		name = strings.TrimSuffix(filepath.Base(name), ".json")
	}
	return filepath.Join("output", name)
}

func printHelp(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(w, "Monte Carlo Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flags.SetOutput(w)
	flags.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	if scenes, err := scene.ListScenes(); err == nil {
		for _, s := range scenes {
			fmt.Fprintf(w, "  %-12s - %s\n", s.ID, s.Description)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.png")
}
