package systems

import (
	"errors"
	"fmt"
)

// ErrInvalidBands is returned when a brightness range cannot be split into layers.
var ErrInvalidBands = errors.New("invalid brightness bands")

// Band is an inclusive brightness sub-range owned by one layer.
type Band struct {
	Min, Max int
}

// Contains reports whether b lies in the band.
func (b Band) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

// NewBands splits [min, max] into n contiguous, non-overlapping bands covering the
// whole range. Band edges sit at min + floor(i*(max-min)/n), so 10..200 in three
// layers gives [10,73] [74,136] [137,200].
func NewBands(min, max, n int) ([]Band, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one layer, got %d", ErrInvalidBands, n)
	}
	if min < 0 || max > 255 {
		return nil, fmt.Errorf("%w: range [%d, %d] outside [0, 255]", ErrInvalidBands, min, max)
	}
	if min > max {
		return nil, fmt.Errorf("%w: min %d > max %d", ErrInvalidBands, min, max)
	}
	if max-min+1 < n {
		return nil, fmt.Errorf("%w: %d values cannot fill %d layers", ErrInvalidBands, max-min+1, n)
	}

	span := max - min
	edges := make([]int, n+1)
	for i := range edges {
		edges[i] = min + i*span/n
	}

	bands := make([]Band, n)
	for i := range bands {
		lo := edges[i]
		if i > 0 {
			lo++
		}
		bands[i] = Band{Min: lo, Max: edges[i+1]}
	}
	return bands, nil
}
