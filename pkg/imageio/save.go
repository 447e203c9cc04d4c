package imageio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/framebuffer"
)

// ErrUnsupportedFormat is returned by Save for file extensions it cannot write
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Save writes fb to path, choosing PNG or PPM from the file extension.
// Failures are returned to the caller; fb is left untouched either way.
func Save(path string, fb *framebuffer.Framebuffer) (err error) {
	var write func(*os.File) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		write = func(f *os.File) error { return Encode(f, fb) }
	case ".ppm":
		write = func(f *os.File) error { return WritePPM(f, fb) }
	default:
		return fmt.Errorf("cannot save %q: %w", path, ErrUnsupportedFormat)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	if err := write(file); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
