package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/stjomd/raytracer/pkg/renderer"
)

// EncodePPM writes img as a portable pixmap with a maximum channel value of 255.
// binary selects the raw P6 form; otherwise P3 is written with one "r g b" line per pixel.
// Rows are written top to bottom.
func EncodePPM(w io.Writer, img *renderer.Image, binary bool) error {
	bw := bufio.NewWriter(w)

	magic := "P3"
	if binary {
		magic = "P6"
	}
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, img.Width(), img.Height()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			r, g, b := img.RGB8(x, y)
			var err error
			if binary {
				_, err = bw.Write([]byte{r, g, b})
			} else {
				_, err = fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
			}
			if err != nil {
				return fmt.Errorf("failed to write pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}
