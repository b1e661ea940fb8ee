package components

import "math"

// SplatPoint is one weighted pixel of a bilinear splat.
type SplatPoint struct {
	Col, Row int
	Weight   float64
}

// Splat distributes a continuous position over the four pixels around it.
// Neighbors wrap around the grid and the weights sum to 1: a point on a grid
// line lights one pixel fully, a point at a cell center lights four at 25%.
func Splat(x, y float64, width, height int) [4]SplatPoint {
	ixf, fx := math.Modf(x)
	iyf, fy := math.Modf(y)
	if fx < 0 {
		fx++
		ixf--
	}
	if fy < 0 {
		fy++
		iyf--
	}
	ix, iy := int(ixf), int(iyf)

	c0, c1 := wrap(ix, width), wrap(ix+1, width)
	r0, r1 := wrap(iy, height), wrap(iy+1, height)

	return [4]SplatPoint{
		{Col: c0, Row: r0, Weight: (1 - fx) * (1 - fy)},
		{Col: c1, Row: r0, Weight: fx * (1 - fy)},
		{Col: c0, Row: r1, Weight: (1 - fx) * fy},
		{Col: c1, Row: r1, Weight: fx * fy},
	}
}

// wrapf returns v modulo n in [0, n).
func wrapf(v float64, n int) float64 {
	m := math.Mod(v, float64(n))
	if m < 0 {
		m += float64(n)
	}
	// -tiny + n can round to n
	if m >= float64(n) {
		m = 0
	}
	return m
}
