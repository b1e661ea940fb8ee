// Package display provides the pixel sinks a field is drawn onto.
//
// Every sink accepts brightness in 0..255 and maps it to its native range.
// Frames are double buffered where the hardware allows: BeginFrame selects the
// hidden buffer, Present makes it visible.
package display

import (
	"errors"

	"github.com/pthm-cable/petals/renderer"
)

var (
	// ErrUnavailable is returned by Present when the device did not accept a frame.
	// The loop skips the frame and keeps ticking.
	ErrUnavailable = errors.New("display unavailable")

	// ErrClosed is returned by Present once the user closed the sink.
	ErrClosed = errors.New("display closed")
)

// Sink is a pixel grid that frames are drawn onto.
type Sink interface {
	renderer.Canvas

	// BeginFrame selects the buffer the next frame is drawn into.
	BeginFrame()
	// Clear sets every pixel of the current buffer to 0.
	Clear()
	// Present makes the current buffer visible.
	Present() error
	Close() error
}

// Texter is implemented by sinks that can show a short message over the field.
type Texter interface {
	DrawText(text string, brightness int)
}

func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
