package imageio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-pathtracer/pkg/framebuffer"
)

// WritePPM writes fb as a plain-text P3 pixel map: a header followed by one
// "r g b" line per pixel, row-major from the top row down.
func WritePPM(w io.Writer, fb *framebuffer.Framebuffer) error {
	if fb.Width < 0 || fb.Height < 0 || len(fb.Pixels) != fb.Width*fb.Height {
		return fmt.Errorf("framebuffer holds %d pixels, want %dx%d", len(fb.Pixels), fb.Width, fb.Height)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height)

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.RGB8(x, y)
			fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
		}
	}

	// bufio keeps the first write error and reports it here
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM data: %w", err)
	}
	return nil
}
