package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/framebuffer"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	camera          *Camera
	scene           integrator.Scene
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
	maxDepth        int
}

// NewTileRenderer creates a new tile renderer for a width x height image
func NewTileRenderer(camera *Camera, scene integrator.Scene, integratorInst integrator.Integrator, width, height, samplesPerPixel, maxDepth int) *TileRenderer {
	return &TileRenderer{
		camera:          camera,
		scene:           scene,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: max(samplesPerPixel, 1),
		maxDepth:        maxDepth,
	}
}

// RenderTileBounds renders pixels within bounds into fb, storing the mean of
// the pixel's samples. Tiles never overlap, so concurrent calls on disjoint
// bounds are safe.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, fb *framebuffer.Framebuffer, sampler core.Sampler) RenderStats {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			fb.Set(x, y, tr.samplePixel(x, y, sampler))
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:  pixels,
		TotalSamples: pixels * tr.samplesPerPixel,
		Tiles:        1,
	}
}

// samplePixel averages jittered camera rays through pixel (x, y); row 0 is the
// top of the image while t grows upwards, hence the flip.
func (tr *TileRenderer) samplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	row := tr.height - 1 - y

	for sample := 0; sample < tr.samplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / float64(tr.width)
		t := (float64(row) + jitter.Y) / float64(tr.height)

		ray := tr.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.scene, sampler, tr.maxDepth))
	}

	return colorAccum.Multiply(1.0 / float64(tr.samplesPerPixel))
}
