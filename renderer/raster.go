// Package renderer projects particle positions onto a pixel grid.
package renderer

import (
	"math"

	"github.com/pthm-cable/petals/components"
)

// Canvas is the write side of a pixel sink.
type Canvas interface {
	Size() (width, height int)
	SetPixel(col, row, brightness int)
}

// Rasterizer draws one particle at a continuous or integer position.
// Overlapping particles are not blended: the last write to a pixel wins.
type Rasterizer interface {
	// Draw writes a particle of the given brightness (0..255) at (x, y).
	// It reports false, without writing, when the position is off the canvas.
	Draw(c Canvas, x, y float64, brightness int) bool
	Name() string
}

// Exact places each particle on exactly one pixel.
type Exact struct{}

// Draw writes the pixel containing (x, y).
func (Exact) Draw(c Canvas, x, y float64, brightness int) bool {
	w, h := c.Size()
	col, row := int(math.Floor(x)), int(math.Floor(y))
	if col < 0 || col >= w || row < 0 || row >= h {
		return false
	}
	c.SetPixel(col, row, clampLevel(brightness))
	return true
}

// Name returns "exact".
func (Exact) Name() string { return "exact" }

// Bilinear splats each particle over up to four pixels with fractional weights.
type Bilinear struct{}

// Draw writes floor(brightness*weight) to each splat pixel with a non-zero weight.
// Positions wrap around the canvas, so it always reports true.
func (Bilinear) Draw(c Canvas, x, y float64, brightness int) bool {
	w, h := c.Size()
	level := clampLevel(brightness)
	for _, p := range components.Splat(x, y, w, h) {
		if p.Weight <= 0 {
			continue
		}
		c.SetPixel(p.Col, p.Row, int(math.Floor(float64(level)*p.Weight)))
	}
	return true
}

// Name returns "bilinear".
func (Bilinear) Name() string { return "bilinear" }

// ByName returns the rasterizer registered under name, defaulting to Exact.
func ByName(name string) Rasterizer {
	if name == "bilinear" {
		return Bilinear{}
	}
	return Exact{}
}

// Scale maps a 0..255 brightness through a 0..255 global scale.
func Scale(brightness, scale int) int {
	return clampLevel(brightness) * clampLevel(scale) / 255
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
