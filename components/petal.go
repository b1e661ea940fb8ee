// Package components holds the particle data model shared by the simulation systems.
package components

// Petal is a discrete particle that occupies exactly one pixel.
type Petal struct {
	X, Y       int
	Brightness int // 0..255, never increases after creation
	DecayRate  int // Subtracted from Brightness on each decay event
	Dead       bool
}

// NewPetal creates a live petal.
func NewPetal(x, y, brightness, decayRate int) Petal {
	if brightness < 0 {
		brightness = 0
	}
	if decayRate < 0 {
		decayRate = 0
	}
	return Petal{X: x, Y: y, Brightness: brightness, DecayRate: decayRate, Dead: brightness == 0}
}

// Decay fades the petal by its decay rate and returns the new brightness.
func (p *Petal) Decay() int {
	p.Brightness -= p.DecayRate
	if p.Brightness <= 0 {
		p.Brightness = 0
		p.Dead = true
	}
	return p.Brightness
}

// Advance moves the petal by (dx, dy). The axis across the fall direction wraps
// around the grid; leaving the grid along the fall axis kills the petal.
func (p *Petal) Advance(dx, dy int, e Edge) {
	p.X += dx
	p.Y += dy
	if e.Horizontal() {
		p.X = wrap(p.X, e.Width)
		if p.Y < 0 || p.Y >= e.Height {
			p.Dead = true
		}
	} else {
		p.Y = wrap(p.Y, e.Height)
		if p.X < 0 || p.X >= e.Width {
			p.Dead = true
		}
	}
}

// Alive reports whether the petal should still be drawn.
func (p *Petal) Alive() bool {
	return !p.Dead && p.Brightness > 0
}
