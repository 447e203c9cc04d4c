package framebuffer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds linear radiance values for a width x height image.
// Pixels are stored row-major with row 0 at the top of the image.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// New creates a black framebuffer. Negative dimensions are treated as zero.
func New(width, height int) *Framebuffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Bounds returns the pixel rectangle covered by the framebuffer
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

func (fb *Framebuffer) index(x, y int) int {
	return y*fb.Width + x
}

// Set stores the linear color at (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[fb.index(x, y)] = c
}

// At returns the linear color at (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[fb.index(x, y)]
}

// Add accumulates c into the pixel at (x, y)
func (fb *Framebuffer) Add(x, y int, c core.Vec3) {
	i := fb.index(x, y)
	fb.Pixels[i] = fb.Pixels[i].Add(c)
}

// Scale multiplies every pixel by s, e.g. to turn sample sums into means
func (fb *Framebuffer) Scale(s float64) {
	for i := range fb.Pixels {
		fb.Pixels[i] = fb.Pixels[i].Multiply(s)
	}
}

// GammaCorrected returns the gamma-2 encoded color at (x, y)
func (fb *Framebuffer) GammaCorrected(x, y int) core.Vec3 {
	return fb.At(x, y).GammaCorrect(2.0)
}

// RGB8 returns the 8-bit display values for the pixel at (x, y)
func (fb *Framebuffer) RGB8(x, y int) (r, g, b uint8) {
	c := fb.At(x, y)
	return Quantize(c.X), Quantize(c.Y), Quantize(c.Z)
}

// Quantize maps a linear channel value to a gamma-2 encoded byte.
// The upper clamp of 0.999 keeps 256*v below 256.
func Quantize(v float64) uint8 {
	if !(v > 0) {
		// negatives and NaN
		return 0
	}
	s := math.Sqrt(v)
	if s > 0.999 {
		s = 0.999
	}
	return uint8(256 * s)
}

// ToRGBA converts the framebuffer to an opaque 8-bit image
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.RGB8(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
