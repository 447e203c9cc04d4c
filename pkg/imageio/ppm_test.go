package imageio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/framebuffer"
)

func TestWritePPM_Format(t *testing.T) {
	fb := framebuffer.New(2, 2)
	fb.Set(0, 0, core.NewVec3(1, 0.25, 0))
	fb.Set(1, 0, core.NewVec3(0, 0, 0.0625))
	fb.Set(0, 1, core.NewVec3(0.25, 0.25, 0.25))

	var buf bytes.Buffer
	if err := WritePPM(&buf, fb); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := strings.Join([]string{
		"P3",
		"2 2",
		"255",
		"255 128 0",
		"0 0 64",
		"128 128 128",
		"0 0 0",
	}, "\n") + "\n"

	if got := buf.String(); got != expected {
		t.Errorf("Unexpected PPM output:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestWritePPM_OneLinePerPixel(t *testing.T) {
	fb := framebuffer.New(5, 3)

	var buf bytes.Buffer
	if err := WritePPM(&buf, fb); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3+15 {
		t.Errorf("Expected 3 header lines and 15 pixel lines, got %d lines", len(lines))
	}
}

func TestWritePPM_WriterFailure(t *testing.T) {
	if err := WritePPM(failingWriter{}, framebuffer.New(2, 2)); !errors.Is(err, errDiskFull) {
		t.Errorf("Expected wrapped write error, got %v", err)
	}
}

func TestWritePPM_MismatchedPixelCount(t *testing.T) {
	var buf bytes.Buffer
	fb := &framebuffer.Framebuffer{Width: 2, Height: 2, Pixels: make([]core.Vec3, 3)}
	if err := WritePPM(&buf, fb); err == nil {
		t.Error("Expected an error for a short pixel slice")
	}
	if buf.Len() != 0 {
		t.Errorf("Nothing should be written, got %q", buf.String())
	}
}
