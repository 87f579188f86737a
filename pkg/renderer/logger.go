package renderer

import (
	"fmt"
	"io"

	"github.com/stjomd/raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to an io.Writer
type DefaultLogger struct {
	w io.Writer
}

// Printf formats a message to the underlying writer
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.w, format, args...)
}

// NewDefaultLogger creates a logger writing to w
func NewDefaultLogger(w io.Writer) core.Logger {
	return &DefaultLogger{w: w}
}

// NewDiscardLogger creates a logger that drops every message
func NewDiscardLogger() core.Logger {
	return &DefaultLogger{w: io.Discard}
}
