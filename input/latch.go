package input

// Latch hands button presses from one producer goroutine to the loop.
//
// Terminals report key presses and auto-repeats but never releases, so a
// button counts as held for Hold polls after its most recent press.
type Latch struct {
	presses chan Button
	hold    int
	polls   int
	last    [numButtons]int
}

// NewLatch creates a latch buffering up to size presses between polls.
func NewLatch(size, hold int) *Latch {
	if size < 1 {
		size = 1
	}
	if hold < 1 {
		hold = 1
	}
	return &Latch{presses: make(chan Button, size), hold: hold}
}

// Press records a press without blocking. It reports false if the buffer is full.
func (l *Latch) Press(b Button) bool {
	select {
	case l.presses <- b:
		return true
	default:
		return false
	}
}

// Poll drains pending presses and returns the buttons held this tick.
// It must only be called from the consuming goroutine.
func (l *Latch) Poll() State {
	l.polls++
	for drained := false; !drained; {
		select {
		case b := <-l.presses:
			if b < numButtons {
				l.last[b] = l.polls
			}
		default:
			drained = true
		}
	}

	var s State
	for b := range l.last {
		if l.last[b] > 0 && l.polls-l.last[b] < l.hold {
			s = s.With(Button(b))
		}
	}
	return s
}
