package components

import (
	"fmt"
	"strings"
)

// Side identifies the grid edge petals fall from.
type Side uint8

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// ParseSide converts a config name to a Side.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(name) {
	case "top":
		return SideTop, nil
	case "bottom":
		return SideBottom, nil
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	}
	return 0, fmt.Errorf("unknown edge %q", name)
}

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// Range is an inclusive integer interval.
type Range struct {
	Min, Max int
}

// Edge binds a Side to the grid it spawns onto.
// It has no mutable state; one Edge is shared by every layer of a field.
type Edge struct {
	Side          Side
	Width, Height int
}

// NewEdge creates an edge for a width x height grid.
func NewEdge(side Side, width, height int) Edge {
	return Edge{Side: side, Width: width, Height: height}
}

// SpawnBounds returns the inclusive x and y ranges new petals are drawn from.
// One axis is pinned to the boundary, the other spans the full grid.
//
//   - top:    x = [0, w-1], y = [0, 0]
//   - bottom: x = [0, w-1], y = [h-1, h-1]
//   - left:   x = [0, 0],   y = [0, h-1]
//   - right:  x = [w-1, w-1], y = [0, h-1]
func (e Edge) SpawnBounds() (x, y Range) {
	w, h := e.Width-1, e.Height-1
	switch e.Side {
	case SideTop:
		return Range{0, w}, Range{0, 0}
	case SideBottom:
		return Range{0, w}, Range{h, h}
	case SideLeft:
		return Range{0, 0}, Range{0, h}
	case SideRight:
		return Range{w, w}, Range{0, h}
	}
	panic(fmt.Sprintf("components: invalid side %d", e.Side))
}

// Gravity returns the unit displacement of one fall step, pointing away from the edge.
func (e Edge) Gravity() (dx, dy int) {
	switch e.Side {
	case SideTop:
		return 0, 1
	case SideBottom:
		return 0, -1
	case SideLeft:
		return 1, 0
	case SideRight:
		return -1, 0
	}
	panic(fmt.Sprintf("components: invalid side %d", e.Side))
}

// Horizontal reports whether petals fall vertically, so that wind and
// wraparound act on the x axis.
func (e Edge) Horizontal() bool {
	switch e.Side {
	case SideTop, SideBottom:
		return true
	case SideLeft, SideRight:
		return false
	}
	panic(fmt.Sprintf("components: invalid side %d", e.Side))
}

// Perpendicular returns (amount, 0) or (0, amount) along the axis across the fall direction.
func (e Edge) Perpendicular(amount int) (dx, dy int) {
	if e.Horizontal() {
		return amount, 0
	}
	return 0, amount
}

// wrap returns v modulo n in [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
