package input

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// GPIO reads active-low push buttons wired to ground with internal pull-ups.
// host.Init must have been called before NewGPIO.
type GPIO struct {
	pins map[Button]gpio.PinIn
}

// NewGPIO opens the named pins. Buttons with an empty pin name are skipped.
func NewGPIO(names map[Button]string) (*GPIO, error) {
	g := &GPIO{pins: make(map[Button]gpio.PinIn, len(names))}
	for b, name := range names {
		if name == "" {
			continue
		}
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, fmt.Errorf("gpio: %s button: pin %q not found", b, name)
		}
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("gpio: %s button: %w", b, err)
		}
		g.pins[b] = pin
	}
	return g, nil
}

func (g *GPIO) Poll() State {
	var s State
	for b, pin := range g.pins {
		if pin.Read() == gpio.Low {
			s = s.With(b)
		}
	}
	return s
}

// Len returns the number of configured buttons.
func (g *GPIO) Len() int { return len(g.pins) }
