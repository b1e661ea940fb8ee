// Package input provides the button sources that adjust a running display.
package input

import "strings"

// Button is a logical control button.
type Button uint8

const (
	Brighter Button = iota
	Dimmer
	Add
	Remove
	numButtons
)

var buttonNames = [numButtons]string{"brighter", "dimmer", "add", "remove"}

func (b Button) String() string {
	if b < numButtons {
		return buttonNames[b]
	}
	return "unknown"
}

// Buttons lists every logical button.
func Buttons() []Button {
	return []Button{Brighter, Dimmer, Add, Remove}
}

// State is the set of buttons held during one tick.
type State uint8

// Held reports whether b is held.
func (s State) Held(b Button) bool { return s&(1<<b) != 0 }

// With returns s with b held.
func (s State) With(b Button) State { return s | 1<<b }

func (s State) String() string {
	var held []string
	for _, b := range Buttons() {
		if s.Held(b) {
			held = append(held, b.String())
		}
	}
	return strings.Join(held, "+")
}

// Of returns the state with exactly the given buttons held.
func Of(buttons ...Button) State {
	var s State
	for _, b := range buttons {
		s = s.With(b)
	}
	return s
}

// Source is polled once at the start of every tick.
type Source interface {
	Poll() State
}

// None is a source with no buttons.
type None struct{}

func (None) Poll() State { return 0 }

// Multi merges several sources; a button is held if any source holds it.
type Multi []Source

func (m Multi) Poll() State {
	var s State
	for _, src := range m {
		s |= src.Poll()
	}
	return s
}
