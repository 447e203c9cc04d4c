package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/framebuffer"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Edge length of a tile, <= 0 uses DefaultTileSize
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed; tile i uses Seed+i
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        DefaultTileSize,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Raytracer renders a scene through a camera into a framebuffer
type Raytracer struct {
	camera     *Camera
	scene      integrator.Scene
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
	newSampler func(*rand.Rand) core.Sampler
}

// NewRaytracer creates a new raytracer using path tracing. A nil logger discards progress output.
func NewRaytracer(camera *Camera, scene integrator.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		scene:      scene,
		integrator: integrator.NewPathTracingIntegrator(),
		config:     config,
		logger:     logger,
		newSampler: func(random *rand.Rand) core.Sampler { return core.NewRandomSampler(random) },
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Render renders all tiles in parallel. When ctx is done no further tiles are
// started and the partially rendered framebuffer is returned with ctx's error.
func (rt *Raytracer) Render(ctx context.Context) (*framebuffer.Framebuffer, RenderStats, error) {
	cfg := rt.config
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image dimensions %dx%d", cfg.Width, cfg.Height)
	}

	startTime := time.Now()
	fb := framebuffer.New(cfg.Width, cfg.Height)
	tiles := NewTileGrid(cfg.Width, cfg.Height, cfg.TileSize, cfg.Seed)

	tr := NewTileRenderer(rt.camera, rt.scene, rt.integrator, cfg.Width, cfg.Height, cfg.SamplesPerPixel, cfg.MaxDepth)
	pool := NewWorkerPool(tr, fb, rt.newSampler, cfg.NumWorkers)
	pool.Start(ctx)

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel, depth %d (%d tiles, %d workers)...\n",
		cfg.Width, cfg.Height, tr.samplesPerPixel, cfg.MaxDepth, len(tiles), pool.GetNumWorkers())

	// Submit from a separate goroutine so results can be drained concurrently
	go func() {
		defer pool.Stop()
		for i, tile := range tiles {
			if err := pool.SubmitTask(ctx, TileTask{Tile: tile, TaskID: i}); err != nil {
				rt.logger.Printf("Rendering cancelled after %d of %d tiles were queued\n", i, len(tiles))
				return
			}
		}
	}()

	var stats RenderStats
	var renderErr error
	progressStep := max(1, len(tiles)/10)
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			renderErr = result.Error
			continue
		}
		stats.Merge(result.Stats)
		if stats.Tiles%progressStep == 0 || stats.Tiles == len(tiles) {
			rt.logger.Printf("%d/%d tiles (%v)\n", stats.Tiles, len(tiles), time.Since(startTime).Round(time.Millisecond))
		}
	}
	stats.Elapsed = time.Since(startTime)

	if renderErr == nil && stats.Tiles < len(tiles) {
		renderErr = ctx.Err()
	}
	if renderErr != nil {
		return fb, stats, renderErr
	}

	rt.logger.Printf("Render completed in %v (%.0f samples/pixel)\n", stats.Elapsed, stats.AverageSamples())
	return fb, stats, nil
}

// Render is the one-call driver: it traces the scene through camera at the
// given resolution and returns the linear framebuffer.
func Render(camera *Camera, scene integrator.Scene, width, height, samplesPerPixel, maxDepth int) *framebuffer.Framebuffer {
	config := DefaultConfig()
	config.Width = width
	config.Height = height
	config.SamplesPerPixel = samplesPerPixel
	config.MaxDepth = maxDepth

	fb, _, err := NewRaytracer(camera, scene, config, nil).Render(context.Background())
	if err != nil {
		// Only invalid dimensions fail without a cancellable context
		return framebuffer.New(width, height)
	}
	return fb
}
