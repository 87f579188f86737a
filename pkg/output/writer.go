package output

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/renderer"
)

// Format is an image file format
type Format string

const (
	FormatPPM      Format = "ppm"       // Binary portable pixmap (P6)
	FormatPPMASCII Format = "ppm-ascii" // Plain-text portable pixmap (P3)
	FormatPNG      Format = "png"
)

// ParseFormat validates a format name; an empty name yields an empty format
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "", FormatPPM, FormatPPMASCII, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q: %w", name, core.ErrInvalidConfig)
	}
}

// DetectFormat picks a format from a file extension, defaulting to binary PPM
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	default:
		return FormatPPM
	}
}

// EncodePNG writes img as an 8-bit PNG
func EncodePNG(w io.Writer, img *renderer.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	switch format {
	case FormatPNG:
		return EncodePNG(w, img)
	case FormatPPMASCII:
		return EncodePPM(w, img, false)
	case FormatPPM, "":
		return EncodePPM(w, img, true)
	default:
		return fmt.Errorf("unknown output format %q: %w", format, core.ErrInvalidConfig)
	}
}

// Write saves img to path, creating parent directories as needed.
// An empty format is detected from the file extension.
func Write(path string, img *renderer.Image, format Format) (err error) {
	if format == "" {
		format = DetectFormat(path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
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

	return Encode(file, img, format)
}
