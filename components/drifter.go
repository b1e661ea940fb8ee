package components

import "math/rand"

// Drifter is a continuous particle moved by pre-generated motion queues.
// Both axes wrap, so a drifter never leaves the grid.
type Drifter struct {
	X, Y             float64
	Width, Height    int
	StepsPerInterval int

	DropX, DropY  int     // Unit fall direction
	DropIncrement float64 // Fall distance per tick, fixed at creation

	xSteps, ySteps []float64
	xDrops, yDrops []float64
}

// NewDrifter creates a drifter at (x, y) on a width x height grid that falls
// along the edge's gravity when dropped.
func NewDrifter(x, y float64, e Edge, stepsPerInterval int, rng *rand.Rand) Drifter {
	if stepsPerInterval < 1 {
		stepsPerInterval = 1
	}
	dx, dy := e.Gravity()
	return Drifter{
		X:                wrapf(x, e.Width),
		Y:                wrapf(y, e.Height),
		Width:            e.Width,
		Height:           e.Height,
		StepsPerInterval: stepsPerInterval,
		DropX:            dx,
		DropY:            dy,
		DropIncrement:    rng.Float64() / float64(stepsPerInterval),
	}
}

// Advance moves the drifter by (dx, dy) with wraparound on both axes.
func (d *Drifter) Advance(dx, dy float64) {
	d.X = wrapf(d.X+dx, d.Width)
	d.Y = wrapf(d.Y+dy, d.Height)
}

// Splat returns the four weighted pixels covering the drifter.
func (d *Drifter) Splat() [4]SplatPoint {
	return Splat(d.X, d.Y, d.Width, d.Height)
}

// StepSize samples a signed step in [-1.0, 1.0) in tenths, scaled to one tick of an interval.
func (d *Drifter) StepSize(rng *rand.Rand) float64 {
	step := float64(rng.Intn(20)-10) / 10
	return step / float64(d.StepsPerInterval)
}

// Walk takes one step of a random walk. Each axis repeats one sampled step for
// a whole interval, giving a constant-velocity micro drift instead of jitter.
func (d *Drifter) Walk(rng *rand.Rand) (x, y float64) {
	if len(d.xSteps) == 0 {
		d.xSteps = repeat(d.xSteps, d.StepSize(rng), d.StepsPerInterval)
	}
	if len(d.ySteps) == 0 {
		d.ySteps = repeat(d.ySteps, d.StepSize(rng), d.StepsPerInterval)
	}

	var dx, dy float64
	dx, d.xSteps = pop(d.xSteps)
	dy, d.ySteps = pop(d.ySteps)
	d.Advance(dx, dy)
	return d.X, d.Y
}

// Drop takes one step of a constant fall. When a batch is refilled, with
// probability driftChance a short sideways drift of up to driftFramesMax-1
// ticks is queued ahead of the fall.
func (d *Drifter) Drop(rng *rand.Rand, driftChance float64, driftFramesMax int) (x, y float64) {
	refilled := false
	if len(d.xDrops) == 0 {
		d.xDrops = repeat(d.xDrops, float64(d.DropX)*d.DropIncrement, d.StepsPerInterval)
		refilled = true
	}
	if len(d.yDrops) == 0 {
		d.yDrops = repeat(d.yDrops, float64(d.DropY)*d.DropIncrement, d.StepsPerInterval)
		refilled = true
	}

	if refilled && driftFramesMax > 0 && rng.Float64() < driftChance {
		frames := rng.Intn(driftFramesMax)
		if frames > 0 {
			step := d.StepSize(rng)
			if d.DropY != 0 {
				d.xDrops = prepend(d.xDrops, step, frames)
				d.yDrops = prepend(d.yDrops, 0, frames)
			} else {
				d.xDrops = prepend(d.xDrops, 0, frames)
				d.yDrops = prepend(d.yDrops, step, frames)
			}
		}
	}

	var dx, dy float64
	dx, d.xDrops = pop(d.xDrops)
	dy, d.yDrops = pop(d.yDrops)
	d.Advance(dx, dy)
	return d.X, d.Y
}

// Queued returns the number of pending walk and drop steps per axis.
func (d *Drifter) Queued() (walkX, walkY, dropX, dropY int) {
	return len(d.xSteps), len(d.ySteps), len(d.xDrops), len(d.yDrops)
}

func repeat(q []float64, v float64, n int) []float64 {
	q = q[:0]
	for i := 0; i < n; i++ {
		q = append(q, v)
	}
	return q
}

func prepend(q []float64, v float64, n int) []float64 {
	out := make([]float64, 0, n+len(q))
	for i := 0; i < n; i++ {
		out = append(out, v)
	}
	return append(out, q...)
}

// pop removes the head of a FIFO queue.
func pop(q []float64) (float64, []float64) {
	return q[0], q[1:]
}
